package services

import (
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"

	"landmark-map/internal/logger"
	"landmark-map/internal/models"
	apperrors "landmark-map/internal/pkg/errors"
	"landmark-map/internal/repository"
)

// IngestInput is one user submission. Coordinates arrive already parsed;
// the handler owns the string-to-float conversion and its failure mode.
type IngestInput struct {
	Name        string
	Latitude    float64
	Longitude   float64
	Description string
	Category    string
	UserID      uint
	Photo       *multipart.FileHeader
}

type LandmarkService interface {
	// ListNearby merges encyclopedia results around the coordinate pair
	// with every stored user landmark. Stored landmarks are not filtered
	// by distance; the coordinates only scope the encyclopedia query.
	ListNearby(ctx context.Context, lat, lng float64) ([]interface{}, error)
	Ingest(ctx context.Context, input IngestInput) (*models.Landmark, error)
}

type landmarkService struct {
	landmarkRepo repository.LandmarkRepository
	userRepo     repository.UserRepository
	wikipedia    WikipediaService
	uploads      UploadService
}

func NewLandmarkService(
	landmarkRepo repository.LandmarkRepository,
	userRepo repository.UserRepository,
	wikipedia WikipediaService,
	uploads UploadService,
) LandmarkService {
	return &landmarkService{
		landmarkRepo: landmarkRepo,
		userRepo:     userRepo,
		wikipedia:    wikipedia,
		uploads:      uploads,
	}
}

func (s *landmarkService) ListNearby(ctx context.Context, lat, lng float64) ([]interface{}, error) {
	wikiLandmarks, err := s.wikipedia.Nearby(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	userLandmarks, err := s.landmarkRepo.FindBySource(ctx, models.SourceUser)
	if err != nil {
		return nil, err
	}

	result := make([]interface{}, 0, len(wikiLandmarks)+len(userLandmarks))
	for _, l := range wikiLandmarks {
		result = append(result, models.WikiLandmarkView{
			Name:        l.Title,
			Latitude:    l.Lat,
			Longitude:   l.Lng,
			Description: l.Description,
			Source:      models.SourceWikipedia,
		})
	}

	usernames := make(map[uint]string)
	for _, l := range userLandmarks {
		result = append(result, models.UserLandmarkView{
			Name:        l.Name,
			Latitude:    l.Latitude,
			Longitude:   l.Longitude,
			Description: l.Description,
			Category:    l.Category,
			Photo:       l.Photo,
			Source:      models.SourceUser,
			AddedBy:     s.resolveAuthor(ctx, usernames, l.UserID),
		})
	}

	return result, nil
}

func (s *landmarkService) Ingest(ctx context.Context, input IngestInput) (*models.Landmark, error) {
	if input.Name == "" {
		return nil, apperrors.ErrInvalidInput
	}

	userID := input.UserID
	landmark := &models.Landmark{
		Name:        input.Name,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Description: input.Description,
		Source:      models.SourceUser,
		UserID:      &userID,
	}
	if input.Category != "" {
		category := input.Category
		landmark.Category = &category
	}

	if input.Photo != nil {
		stored, err := s.uploads.SavePhoto(input.UserID, input.Photo)
		if err != nil {
			return nil, err
		}
		if stored != "" {
			landmark.Photo = &stored
		}
	}

	if err := s.landmarkRepo.Create(ctx, landmark); err != nil {
		return nil, err
	}

	logger.LogEvent(logrus.InfoLevel, "Landmark created", logrus.Fields{
		"landmark_id": landmark.ID,
		"user_id":     input.UserID,
		"name":        landmark.Name,
	})

	return landmark, nil
}

// resolveAuthor maps a landmark's owner to a display name, caching lookups
// across one request. Missing owners render as Anonymous.
func (s *landmarkService) resolveAuthor(ctx context.Context, cache map[uint]string, userID *uint) string {
	return resolveAuthor(ctx, s.userRepo, cache, userID)
}

func resolveAuthor(ctx context.Context, userRepo repository.UserRepository, cache map[uint]string, userID *uint) string {
	if userID == nil {
		return models.AnonymousAuthor
	}
	if name, ok := cache[*userID]; ok {
		return name
	}

	name := models.AnonymousAuthor
	user, err := userRepo.GetByID(ctx, *userID)
	if err == nil && user != nil {
		name = user.Username
	}
	cache[*userID] = name
	return name
}
