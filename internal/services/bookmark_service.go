package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"landmark-map/internal/logger"
	"landmark-map/internal/models"
	"landmark-map/internal/repository"
)

// BookmarkService partitions every stored landmark into summary buckets.
// The by-user and by-location groupings are part of the response contract
// but are not populated yet; they stay empty until the product side settles
// what should key them.
type BookmarkService interface {
	GroupBookmarks(ctx context.Context) (*models.BookmarkGroups, error)
}

type bookmarkService struct {
	landmarkRepo repository.LandmarkRepository
	userRepo     repository.UserRepository
}

func NewBookmarkService(landmarkRepo repository.LandmarkRepository, userRepo repository.UserRepository) BookmarkService {
	return &bookmarkService{
		landmarkRepo: landmarkRepo,
		userRepo:     userRepo,
	}
}

func (s *bookmarkService) GroupBookmarks(ctx context.Context) (*models.BookmarkGroups, error) {
	landmarks, err := s.landmarkRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	groups := &models.BookmarkGroups{
		ByCategory: make(map[string][]models.BookmarkEntry),
		ByUser:     make(map[string][]models.BookmarkEntry),
		ByLocation: make(map[string][]models.BookmarkEntry),
	}

	usernames := make(map[uint]string)
	for _, l := range landmarks {
		category := ""
		if l.Category != nil {
			category = *l.Category
		}

		groups.ByCategory[category] = append(groups.ByCategory[category], models.BookmarkEntry{
			Name:      l.Name,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
			AddedBy:   resolveAuthor(ctx, s.userRepo, usernames, l.UserID),
		})
	}

	logger.LogEvent(logrus.DebugLevel, "Grouped bookmarks", logrus.Fields{
		"landmarks": landmarks,
		"grouping":  groups,
	})

	return groups, nil
}
