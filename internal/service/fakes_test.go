package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sharebite/sharebite-backend/internal/model"
	"github.com/sharebite/sharebite-backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repositories, mirroring their contracts.

type fakeDonationRepo struct {
	mu         sync.Mutex
	seq        int
	rows       map[string]model.Donation
	listAllErr error
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{rows: map[string]model.Donation{}}
}

func (f *fakeDonationRepo) Create(ctx context.Context, d *model.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	d.DonationID = fmt.Sprintf("don-%d", f.seq)
	d.CreatedOn = time.Now()
	d.UpdatedOn = d.CreatedOn
	f.rows[d.DonationID] = *d
	return nil
}

func (f *fakeDonationRepo) FindByID(ctx context.Context, id string) (*model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := d
	return &out, nil
}

func (f *fakeDonationRepo) ListByOwner(ctx context.Context, userID string) ([]model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []model.Donation
	for _, d := range f.rows {
		if d.DonatedBy == userID && !d.FoodDeleted {
			list = append(list, d)
		}
	}
	return list, nil
}

func (f *fakeDonationRepo) ListAvailableForOthers(ctx context.Context, userID string, now time.Time) ([]model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []model.Donation
	for _, d := range f.rows {
		if d.DonatedBy != userID && d.Status == model.FoodStatusAvailable && !d.FoodDeleted && !d.Expired(now) {
			list = append(list, d)
		}
	}
	return list, nil
}

func (f *fakeDonationRepo) ListByOwnerAndStatus(ctx context.Context, userID string, status model.FoodStatus) ([]model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []model.Donation
	for _, d := range f.rows {
		if d.DonatedBy == userID && d.Status == status && !d.FoodDeleted {
			list = append(list, d)
		}
	}
	return list, nil
}

func (f *fakeDonationRepo) ListAllByOwner(ctx context.Context, userID string) ([]model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listAllErr != nil {
		return nil, f.listAllErr
	}
	var list []model.Donation
	for _, d := range f.rows {
		if d.DonatedBy == userID {
			list = append(list, d)
		}
	}
	return list, nil
}

func (f *fakeDonationRepo) UpdateStatus(ctx context.Context, id string, status model.FoodStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Status = status
	f.rows[id] = d
	return nil
}

func (f *fakeDonationRepo) UpdateFields(ctx context.Context, d *model.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d.DonationID == "" {
		return repository.ErrMissingID
	}
	row, ok := f.rows[d.DonationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Title = d.Title
	row.Description = d.Description
	row.Quantity = d.Quantity
	row.BestBefore = d.BestBefore
	row.UpdatedOn = time.Now()
	f.rows[d.DonationID] = row
	return nil
}

func (f *fakeDonationRepo) SoftDelete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.FoodDeleted = true
	f.rows[id] = d
	return nil
}

func (f *fakeDonationRepo) SetDB(db *gorm.DB) {}

type fakeLocationRepo struct {
	mu        sync.Mutex
	rows      map[string]model.Location // keyed by donation id
	createErr error
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{rows: map[string]model.Location{}}
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc *model.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	loc.LocationID = "loc-" + loc.DonationID
	f.rows[loc.DonationID] = *loc
	return nil
}

func (f *fakeLocationRepo) FindByDonation(ctx context.Context, donationID string) (*model.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loc, ok := f.rows[donationID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := loc
	return &out, nil
}

func (f *fakeLocationRepo) SoftDeleteByDonation(ctx context.Context, donationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	loc, ok := f.rows[donationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	loc.LocationDeleted = true
	f.rows[donationID] = loc
	return nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, loc *model.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if loc.LocationID == "" {
		return repository.ErrMissingID
	}
	f.rows[loc.DonationID] = *loc
	return nil
}

func (f *fakeLocationRepo) SetDB(db *gorm.DB) {}

type fakePhotos struct {
	mu        sync.Mutex
	uploads   map[string][]string
	uploadErr error
	listErr   map[string]error
}

func newFakePhotos() *fakePhotos {
	return &fakePhotos{uploads: map[string][]string{}, listErr: map[string]error{}}
}

func (f *fakePhotos) Upload(ctx context.Context, donationID string, images [][]byte) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if len(images) == 0 {
		return nil, nil
	}
	uris := make([]string, 0, len(images))
	for i := range images {
		uris = append(uris, fmt.Sprintf("https://img/%s/%d", donationID, i))
	}
	f.uploads[donationID] = uris
	return uris, nil
}

func (f *fakePhotos) ListByDonation(ctx context.Context, donationID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[donationID]; err != nil {
		return nil, err
	}
	return f.uploads[donationID], nil
}

type fakeRequestRepo struct {
	mu      sync.Mutex
	seq     int
	rows    []model.FoodRequest
	idsErr  error
	findErr error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{}
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *model.FoodRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	req.RequestID = fmt.Sprintf("req-%d", f.seq)
	f.rows = append(f.rows, *req)
	return nil
}

func (f *fakeRequestRepo) CancelActive(ctx context.Context, donationID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rows {
		if r.DonationID == donationID && r.RequestedBy == userID && !r.Cancelled {
			f.rows[i].Cancelled = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRequestRepo) FindActiveByDonation(ctx context.Context, donationID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return "", f.findErr
	}
	for _, r := range f.rows {
		if r.DonationID == donationID && !r.Cancelled {
			return r.RequestedBy, nil
		}
	}
	return "", nil
}

func (f *fakeRequestRepo) ListDonationIDsByUser(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idsErr != nil {
		return nil, f.idsErr
	}
	var ids []string
	for _, r := range f.rows {
		if r.RequestedBy == userID && !r.Cancelled {
			ids = append(ids, r.DonationID)
		}
	}
	return ids, nil
}

func (f *fakeRequestRepo) SetDB(db *gorm.DB) {}
