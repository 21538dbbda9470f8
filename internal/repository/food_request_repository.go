package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sharebite/sharebite-backend/internal/model"
	"gorm.io/gorm"
)

type FoodRequestRepository interface {
	Create(ctx context.Context, req *model.FoodRequest) error
	CancelActive(ctx context.Context, donationID, userID string) error
	// FindActiveByDonation returns the requester uid of the live request
	// for the donation, or "" when nobody has requested it.
	FindActiveByDonation(ctx context.Context, donationID string) (string, error)
	ListDonationIDsByUser(ctx context.Context, userID string) ([]string, error)
	SetDB(db *gorm.DB)
}

type foodRequestRepository struct {
	db *gorm.DB
}

func NewFoodRequestRepository(db *gorm.DB) FoodRequestRepository {
	return &foodRequestRepository{db: db}
}

func (r *foodRequestRepository) Create(ctx context.Context, req *model.FoodRequest) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	req.RequestID = uuid.NewString()
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *foodRequestRepository) CancelActive(ctx context.Context, donationID, userID string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Model(&model.FoodRequest{}).
		Where("donation_id = ? AND requested_by = ? AND cancelled = ?", donationID, userID, false).
		Update("cancelled", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *foodRequestRepository) FindActiveByDonation(ctx context.Context, donationID string) (string, error) {
	if r.db == nil {
		return "", ErrDBNotReady
	}
	var req model.FoodRequest
	err := r.db.WithContext(ctx).
		Where("donation_id = ? AND cancelled = ?", donationID, false).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return req.RequestedBy, nil
}

func (r *foodRequestRepository) ListDonationIDsByUser(ctx context.Context, userID string) ([]string, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []model.FoodRequest
	if err := r.db.WithContext(ctx).
		Where("requested_by = ? AND cancelled = ?", userID, false).
		Order("created_on desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, req := range rows {
		ids = append(ids, req.DonationID)
	}
	return ids, nil
}

func (r *foodRequestRepository) SetDB(db *gorm.DB) {
	r.db = db
}
