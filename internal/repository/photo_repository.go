package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sharebite/sharebite-backend/internal/model"
	"gorm.io/gorm"
)

type PhotoRepository interface {
	SaveAll(ctx context.Context, donationID string, imageURIs []string) error
	ListByDonation(ctx context.Context, donationID string) ([]string, error)
	SetDB(db *gorm.DB)
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) SaveAll(ctx context.Context, donationID string, imageURIs []string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	if len(imageURIs) == 0 {
		return nil
	}
	rows := make([]model.Photo, 0, len(imageURIs))
	for _, uri := range imageURIs {
		rows = append(rows, model.Photo{
			PhotoID:    uuid.NewString(),
			DonationID: donationID,
			ImageURI:   uri,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListByDonation returns the recorded URIs in upload order; no rows is an
// empty slice, not an error.
func (r *photoRepository) ListByDonation(ctx context.Context, donationID string) ([]string, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []model.Photo
	if err := r.db.WithContext(ctx).
		Where("donation_id = ?", donationID).
		Order("created_on asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	uris := make([]string, 0, len(rows))
	for _, p := range rows {
		uris = append(uris, p.ImageURI)
	}
	return uris, nil
}

func (r *photoRepository) SetDB(db *gorm.DB) {
	r.db = db
}
