package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/sharebite/sharebite-backend/internal/model"
	"gorm.io/gorm"
)

func TestLocationCreateAndFindByDonation(t *testing.T) {
	repo := NewLocationRepository(newTestDB(t))
	ctx := context.Background()

	loc := model.Location{
		DonationID: "don-1",
		Address:    "12 Queen St W",
		Latitude:   43.65,
		Longitude:  -79.38,
	}
	if err := repo.Create(ctx, &loc); err != nil {
		t.Fatalf("create: %v", err)
	}
	if loc.LocationID == "" {
		t.Fatal("id not written back")
	}

	got, err := repo.FindByDonation(ctx, "don-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.LocationID != loc.LocationID || got.Address != "12 Queen St W" {
		t.Fatalf("mismatch: %+v", got)
	}
}

func TestLocationFindByDonationMissing(t *testing.T) {
	repo := NewLocationRepository(newTestDB(t))
	_, err := repo.FindByDonation(context.Background(), "nope")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want record-not-found, got %v", err)
	}
}

func TestLocationSoftDeleteByDonation(t *testing.T) {
	repo := NewLocationRepository(newTestDB(t))
	ctx := context.Background()

	loc := model.Location{DonationID: "don-1", Address: "somewhere"}
	if err := repo.Create(ctx, &loc); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.SoftDeleteByDonation(ctx, "don-1"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	got, err := repo.FindByDonation(ctx, "don-1")
	if err != nil {
		t.Fatalf("find after delete: %v", err)
	}
	if !got.LocationDeleted {
		t.Fatal("deletion flag not set")
	}

	if err := repo.SoftDeleteByDonation(ctx, "absent"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want record-not-found for absent donation, got %v", err)
	}
}

func TestLocationUpdate(t *testing.T) {
	repo := NewLocationRepository(newTestDB(t))
	ctx := context.Background()

	loc := model.Location{DonationID: "don-1", Address: "old"}
	if err := repo.Create(ctx, &loc); err != nil {
		t.Fatalf("create: %v", err)
	}
	loc.Address = "new"
	loc.Latitude = 1.5
	if err := repo.Update(ctx, &loc); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.FindByDonation(ctx, "don-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Address != "new" || got.Latitude != 1.5 {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := repo.Update(ctx, &model.Location{Address: "x"}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("want ErrMissingID, got %v", err)
	}
}
