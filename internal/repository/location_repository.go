package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sharebite/sharebite-backend/internal/model"
	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) error
	FindByDonation(ctx context.Context, donationID string) (*model.Location, error)
	SoftDeleteByDonation(ctx context.Context, donationID string) error
	Update(ctx context.Context, loc *model.Location) error
	SetDB(db *gorm.DB)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, loc *model.Location) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	loc.LocationID = uuid.NewString()
	return r.db.WithContext(ctx).Create(loc).Error
}

// FindByDonation returns the first row matching the foreign key. Writers
// keep at most one live location per donation; when that invariant is
// broken the result is an arbitrary match, and the deletion flag is not
// consulted here.
func (r *locationRepository) FindByDonation(ctx context.Context, donationID string) (*model.Location, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var loc model.Location
	if err := r.db.WithContext(ctx).
		Where("donation_id = ?", donationID).
		First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepository) SoftDeleteByDonation(ctx context.Context, donationID string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	loc, err := r.FindByDonation(ctx, donationID)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.Location{}).
		Where("location_id = ?", loc.LocationID).
		Update("location_deleted", true).Error
}

func (r *locationRepository) Update(ctx context.Context, loc *model.Location) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	if loc.LocationID == "" {
		return ErrMissingID
	}
	return r.db.WithContext(ctx).
		Model(&model.Location{}).
		Where("location_id = ?", loc.LocationID).
		Updates(map[string]interface{}{
			"address":    loc.Address,
			"latitude":   loc.Latitude,
			"longitude":  loc.Longitude,
			"updated_on": time.Now(),
		}).Error
}

func (r *locationRepository) SetDB(db *gorm.DB) {
	r.db = db
}
