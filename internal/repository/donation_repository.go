package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sharebite/sharebite-backend/internal/model"
	"gorm.io/gorm"
)

type DonationRepository interface {
	Create(ctx context.Context, d *model.Donation) error
	FindByID(ctx context.Context, donationID string) (*model.Donation, error)
	ListByOwner(ctx context.Context, userID string) ([]model.Donation, error)
	ListAvailableForOthers(ctx context.Context, userID string, now time.Time) ([]model.Donation, error)
	ListByOwnerAndStatus(ctx context.Context, userID string, status model.FoodStatus) ([]model.Donation, error)
	ListAllByOwner(ctx context.Context, userID string) ([]model.Donation, error)
	UpdateStatus(ctx context.Context, donationID string, status model.FoodStatus) error
	UpdateFields(ctx context.Context, d *model.Donation) error
	SoftDelete(ctx context.Context, donationID string) error
	SetDB(db *gorm.DB)
}

type donationRepository struct {
	db *gorm.DB
}

var ErrDBNotReady = errors.New("database not initialized")

// ErrMissingID is returned by merge updates called before a create assigned
// the record its identifier.
var ErrMissingID = errors.New("identifier is missing")

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, d *model.Donation) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	d.DonationID = uuid.NewString()
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *donationRepository) FindByID(ctx context.Context, donationID string) (*model.Donation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var d model.Donation
	if err := r.db.WithContext(ctx).
		Where("donation_id = ?", donationID).
		First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *donationRepository) ListByOwner(ctx context.Context, userID string) ([]model.Donation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Donation
	if err := r.db.WithContext(ctx).
		Where("donated_by = ? AND food_deleted = ?", userID, false).
		Order("created_on desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListAvailableForOthers filters owner, status and the deletion flag in the
// store; the best-before cutoff is applied here because the date is stored
// as a plain string.
func (r *donationRepository) ListAvailableForOthers(ctx context.Context, userID string, now time.Time) ([]model.Donation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Donation
	if err := r.db.WithContext(ctx).
		Where("donated_by <> ? AND status = ? AND food_deleted = ?", userID, model.FoodStatusAvailable, false).
		Order("created_on desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	fresh := make([]model.Donation, 0, len(list))
	for _, d := range list {
		if !d.Expired(now) {
			fresh = append(fresh, d)
		}
	}
	return fresh, nil
}

func (r *donationRepository) ListByOwnerAndStatus(ctx context.Context, userID string, status model.FoodStatus) ([]model.Donation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Donation
	if err := r.db.WithContext(ctx).
		Where("donated_by = ? AND status = ? AND food_deleted = ?", userID, status, false).
		Order("created_on desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListAllByOwner is a plain owner-equality scan with no deletion filter;
// the report path filters client side.
func (r *donationRepository) ListAllByOwner(ctx context.Context, userID string) ([]model.Donation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Donation
	if err := r.db.WithContext(ctx).
		Where("donated_by = ?", userID).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *donationRepository) UpdateStatus(ctx context.Context, donationID string, status model.FoodStatus) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Donation{}).
		Where("donation_id = ?", donationID).
		Update("status", status).Error
}

// UpdateFields merge-updates the editable columns only; the rest of the row
// is left untouched.
func (r *donationRepository) UpdateFields(ctx context.Context, d *model.Donation) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	if d.DonationID == "" {
		return ErrMissingID
	}
	return r.db.WithContext(ctx).
		Model(&model.Donation{}).
		Where("donation_id = ?", d.DonationID).
		Updates(map[string]interface{}{
			"title":       d.Title,
			"description": d.Description,
			"quantity":    d.Quantity,
			"best_before": d.BestBefore,
			"updated_on":  time.Now(),
		}).Error
}

func (r *donationRepository) SoftDelete(ctx context.Context, donationID string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Donation{}).
		Where("donation_id = ?", donationID).
		Update("food_deleted", true).Error
}

func (r *donationRepository) SetDB(db *gorm.DB) {
	r.db = db
}
