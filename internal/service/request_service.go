package service

import (
	"context"
	"errors"
	"time"

	"github.com/sharebite/sharebite-backend/internal/model"
	"github.com/sharebite/sharebite-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrAlreadyRequested = errors.New("already requested")

type RequestService interface {
	// Request reserves an available donation for the user and moves it to
	// the requested status.
	Request(ctx context.Context, userID, donationID string) error
	// Cancel withdraws the user's active request and puts the donation
	// back to available.
	Cancel(ctx context.Context, userID, donationID string) error
}

type requestService struct {
	requests  repository.FoodRequestRepository
	donations repository.DonationRepository
}

func NewRequestService(requests repository.FoodRequestRepository, donations repository.DonationRepository) RequestService {
	return &requestService{requests: requests, donations: donations}
}

func (s *requestService) Request(ctx context.Context, userID, donationID string) error {
	if userID == "" {
		return ErrForbidden
	}
	d, err := s.donations.FindByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if d.FoodDeleted || d.Expired(time.Now()) {
		return ErrNotFound
	}
	if d.DonatedBy == userID {
		return ErrForbidden
	}
	if !d.CanTransition(model.FoodStatusRequested) {
		return ErrAlreadyRequested
	}
	if requester, err := s.requests.FindActiveByDonation(ctx, donationID); err != nil {
		return err
	} else if requester != "" {
		return ErrAlreadyRequested
	}
	req := model.FoodRequest{DonationID: donationID, RequestedBy: userID}
	if err := s.requests.Create(ctx, &req); err != nil {
		return err
	}
	return s.donations.UpdateStatus(ctx, donationID, model.FoodStatusRequested)
}

func (s *requestService) Cancel(ctx context.Context, userID, donationID string) error {
	if err := s.requests.CancelActive(ctx, donationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	d, err := s.donations.FindByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if d.CanTransition(model.FoodStatusAvailable) {
		return s.donations.UpdateStatus(ctx, donationID, model.FoodStatusAvailable)
	}
	return nil
}
