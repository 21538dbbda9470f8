package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sharebite/sharebite-backend/internal/model"
	"github.com/sharebite/sharebite-backend/internal/repository"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RequestDirectory is the slice of the request-food collaborator the
// aggregation layer depends on.
type RequestDirectory interface {
	ListDonationIDsByUser(ctx context.Context, userID string) ([]string, error)
	FindActiveByDonation(ctx context.Context, donationID string) (string, error)
}

type DonationService interface {
	Publish(ctx context.Context, userID string, d model.Donation, images [][]byte) (*model.Donation, error)
	GetDetail(ctx context.Context, donationID string) (*model.Donation, error)
	ListForOwner(ctx context.Context, userID string) ([]model.Donation, error)
	ListAvailable(ctx context.Context, userID string) ([]model.Donation, error)
	ListRequestedForOwner(ctx context.Context, userID string) ([]model.Donation, error)
	ListRequestedByUser(ctx context.Context, userID string) ([]model.Donation, error)
	UpdateStatus(ctx context.Context, userID, donationID string, status model.FoodStatus) error
	UpdateFields(ctx context.Context, userID string, d model.Donation) error
	SoftDelete(ctx context.Context, userID, donationID string) error
	BuildReport(ctx context.Context, userID string) (*model.Report, error)
}

type donationService struct {
	donations repository.DonationRepository
	locations repository.LocationRepository
	photos    PhotoService
	requests  RequestDirectory
	timeout   time.Duration
	fanLimit  int
}

func NewDonationService(donations repository.DonationRepository, locations repository.LocationRepository, photos PhotoService, requests RequestDirectory, timeout time.Duration, fanLimit int) DonationService {
	if fanLimit <= 0 {
		fanLimit = 8
	}
	return &donationService{
		donations: donations,
		locations: locations,
		photos:    photos,
		requests:  requests,
		timeout:   timeout,
		fanLimit:  fanLimit,
	}
}

func (s *donationService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Publish creates the donation row, then its location, then uploads any
// images, in that order. Later steps failing do not roll back earlier
// ones; the caller gets a *PartialPublishError carrying the new id.
func (s *donationService) Publish(ctx context.Context, userID string, d model.Donation, images [][]byte) (*model.Donation, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrValidation)
	}
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" || len(d.Title) > 120 {
		return nil, fmt.Errorf("%w: invalid title", ErrValidation)
	}
	if d.Location == nil || strings.TrimSpace(d.Location.Address) == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}
	if _, err := time.ParseInLocation(model.BestBeforeLayout, d.BestBefore, time.Local); err != nil {
		return nil, fmt.Errorf("%w: bestBefore must be %s", ErrValidation, model.BestBeforeLayout)
	}

	pickup := *d.Location
	d.DonatedBy = userID
	d.Status = model.FoodStatusAvailable
	d.FoodDeleted = false
	d.Location = nil
	d.ImageURIs = nil
	d.RequestedBy = ""

	if err := s.donations.Create(ctx, &d); err != nil {
		return nil, err
	}

	pickup.DonationID = d.DonationID
	pickup.LocationDeleted = false
	if err := s.locations.Create(ctx, &pickup); err != nil {
		return nil, &PartialPublishError{DonationID: d.DonationID, Stage: "location", Err: err}
	}

	uris, err := s.photos.Upload(ctx, d.DonationID, images)
	if err != nil {
		return nil, &PartialPublishError{DonationID: d.DonationID, Stage: "photos", Err: err}
	}

	out := d
	out.Location = &pickup
	out.ImageURIs = uris
	return &out, nil
}

// GetDetail hydrates one donation. The photo and location lookups run
// concurrently and each failure leaves that part empty; the requester
// lookup afterwards is best effort. Only a missing base record is an
// error. Soft-deleted donations remain readable here.
func (s *donationService) GetDetail(ctx context.Context, donationID string) (*model.Donation, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	d, err := s.donations.FindByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	out := *d
	var (
		uris []string
		loc  *model.Location
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.photos.ListByDonation(gctx, donationID)
		if err != nil {
			log.Printf("fetch photos for donation %s: %v", donationID, err)
			return nil
		}
		uris = res
		return nil
	})
	g.Go(func() error {
		res, err := s.locations.FindByDonation(gctx, donationID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("fetch location for donation %s: %v", donationID, err)
			}
			return nil
		}
		loc = res
		return nil
	})
	_ = g.Wait()
	out.ImageURIs = uris
	out.Location = loc

	if requester, err := s.requests.FindActiveByDonation(ctx, donationID); err == nil {
		out.RequestedBy = requester
	} else {
		log.Printf("check request for donation %s: %v", donationID, err)
	}
	return &out, nil
}

// attachPhotos joins one photo lookup per record. Every task writes its own
// slot, the join waits for all of them, and a failed lookup keeps the
// record with no photos rather than failing the call.
func (s *donationService) attachPhotos(ctx context.Context, list []model.Donation) []model.Donation {
	if len(list) == 0 {
		return []model.Donation{}
	}
	out := make([]model.Donation, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanLimit)
	for i, d := range list {
		g.Go(func() error {
			uris, err := s.photos.ListByDonation(gctx, d.DonationID)
			if err != nil {
				log.Printf("fetch photos for donation %s: %v", d.DonationID, err)
			} else {
				d.ImageURIs = uris
			}
			out[i] = d
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *donationService) ListForOwner(ctx context.Context, userID string) ([]model.Donation, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	list, err := s.donations.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachPhotos(ctx, list), nil
}

func (s *donationService) ListAvailable(ctx context.Context, userID string) ([]model.Donation, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	list, err := s.donations.ListAvailableForOthers(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return s.attachPhotos(ctx, list), nil
}

func (s *donationService) ListRequestedForOwner(ctx context.Context, userID string) ([]model.Donation, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	list, err := s.donations.ListByOwnerAndStatus(ctx, userID, model.FoodStatusRequested)
	if err != nil {
		return nil, err
	}
	return s.attachPhotos(ctx, list), nil
}

// ListRequestedByUser resolves the ids the user has requested and hydrates
// each donation with photos and location. Records whose hydration fails
// are dropped, so result order is unspecified.
func (s *donationService) ListRequestedByUser(ctx context.Context, userID string) ([]model.Donation, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	ids, err := s.requests.ListDonationIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Donation{}, nil
	}

	var (
		mu  sync.Mutex
		out []model.Donation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanLimit)
	for _, id := range ids {
		g.Go(func() error {
			d, err := s.requestDetail(gctx, id)
			if err != nil {
				log.Printf("fetch requested donation %s: %v", id, err)
				return nil
			}
			mu.Lock()
			out = append(out, *d)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	if out == nil {
		out = []model.Donation{}
	}
	return out, nil
}

func (s *donationService) requestDetail(ctx context.Context, donationID string) (*model.Donation, error) {
	d, err := s.donations.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	out := *d
	uris, err := s.photos.ListByDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	out.ImageURIs = uris
	loc, err := s.locations.FindByDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	out.Location = loc
	return &out, nil
}

func (s *donationService) UpdateStatus(ctx context.Context, userID, donationID string, status model.FoodStatus) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	d, err := s.donations.FindByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if d.DonatedBy != userID {
		return ErrForbidden
	}
	if !d.CanTransition(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, status)
	}
	return s.donations.UpdateStatus(ctx, donationID, status)
}

func (s *donationService) UpdateFields(ctx context.Context, userID string, d model.Donation) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if d.DonationID == "" {
		return repository.ErrMissingID
	}
	current, err := s.donations.FindByID(ctx, d.DonationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if current.DonatedBy != userID {
		return ErrForbidden
	}
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" || len(d.Title) > 120 {
		return fmt.Errorf("%w: invalid title", ErrValidation)
	}
	if _, err := time.ParseInLocation(model.BestBeforeLayout, d.BestBefore, time.Local); err != nil {
		return fmt.Errorf("%w: bestBefore must be %s", ErrValidation, model.BestBeforeLayout)
	}
	return s.donations.UpdateFields(ctx, &d)
}

// SoftDelete flags the donation and its location; photos stay recorded.
// A missing location is tolerated since publish may have stopped before
// writing one.
func (s *donationService) SoftDelete(ctx context.Context, userID, donationID string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	d, err := s.donations.FindByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if d.DonatedBy != userID {
		return ErrForbidden
	}
	if err := s.donations.SoftDelete(ctx, donationID); err != nil {
		return err
	}
	if err := s.locations.SoftDeleteByDonation(ctx, donationID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// BuildReport counts the user's completed donations and active requests.
// The donation count query is an owner-equality scan filtered here; its
// failure degrades the count to zero, and only a directory failure fails
// the call.
func (s *donationService) BuildReport(ctx context.Context, userID string) (*model.Report, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	donated := 0
	list, err := s.donations.ListAllByOwner(ctx, userID)
	if err != nil {
		log.Printf("count donations for %s: %v", userID, err)
	} else {
		for _, d := range list {
			if d.Status == model.FoodStatusDonated && !d.FoodDeleted {
				donated++
			}
		}
	}

	ids, err := s.requests.ListDonationIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.Report{Donations: donated, Collections: len(ids)}, nil
}
