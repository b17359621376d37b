package models

import (
	"time"
)

const (
	// SourceUser tags landmarks submitted through the API. Every persisted
	// row carries it; externally fetched landmarks are never written.
	SourceUser = "user"
	// SourceWikipedia tags transient landmarks fetched from the
	// encyclopedia service.
	SourceWikipedia = "wikipedia"
)

// AnonymousAuthor is the display name used when a landmark has no owner.
const AnonymousAuthor = "Anonymous"

type Landmark struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Latitude    float64   `gorm:"not null" json:"latitude"`
	Longitude   float64   `gorm:"not null" json:"longitude"`
	Description string    `gorm:"type:text" json:"description"`
	Category    *string   `gorm:"type:varchar(100)" json:"category"`
	Photo       *string   `gorm:"type:varchar(255)" json:"photo"`
	Source      string    `gorm:"type:varchar(50);not null;default:user" json:"source"`
	UserID      *uint     `gorm:"index" json:"-"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Landmark) TableName() string {
	return "landmarks"
}

// WikiLandmark is a point of interest fetched from the encyclopedia
// service. It lives only for the duration of a request.
type WikiLandmark struct {
	Title       string
	Lat         float64
	Lng         float64
	Description string
}

// WikiLandmarkView is the response shape for an externally fetched landmark.
type WikiLandmarkView struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	Source      string  `json:"source"`
}

// UserLandmarkView is the response shape for a persisted landmark. Category
// and photo stay nullable so absent values render as JSON null.
type UserLandmarkView struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	Category    *string `json:"category"`
	Photo       *string `json:"photo"`
	Source      string  `json:"source"`
	AddedBy     string  `json:"added_by"`
}

// BookmarkEntry is one row inside a bookmark grouping bucket.
type BookmarkEntry struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	AddedBy   string  `json:"added_by"`
}

// BookmarkGroups is the three-way partition returned by the bookmarks
// endpoint. ByUser and ByLocation are part of the contract but are not
// populated yet; they serialize as empty objects.
type BookmarkGroups struct {
	ByCategory map[string][]BookmarkEntry `json:"by_category"`
	ByUser     map[string][]BookmarkEntry `json:"by_user"`
	ByLocation map[string][]BookmarkEntry `json:"by_location"`
}
