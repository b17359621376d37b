package repository

import (
	"context"

	"gorm.io/gorm"

	"landmark-map/internal/models"
)

type LandmarkRepository interface {
	Create(ctx context.Context, landmark *models.Landmark) error
	FindAll(ctx context.Context) ([]models.Landmark, error)
	FindBySource(ctx context.Context, source string) ([]models.Landmark, error)
}

type landmarkRepository struct {
	db *gorm.DB
}

func NewLandmarkRepository(db *gorm.DB) LandmarkRepository {
	return &landmarkRepository{db: db}
}

// Create persists a landmark inside its own transaction. Ingestion is
// all-or-nothing per call; any error rolls the row back.
func (r *landmarkRepository) Create(ctx context.Context, landmark *models.Landmark) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(landmark).Error
	})
}

func (r *landmarkRepository) FindAll(ctx context.Context) ([]models.Landmark, error) {
	var landmarks []models.Landmark

	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&landmarks).Error
	return landmarks, err
}

func (r *landmarkRepository) FindBySource(ctx context.Context, source string) ([]models.Landmark, error) {
	var landmarks []models.Landmark

	err := r.db.WithContext(ctx).
		Where("source = ?", source).
		Order("created_at ASC").
		Find(&landmarks).Error
	return landmarks, err
}
