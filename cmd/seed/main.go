package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sharebite/sharebite-backend/internal/config"
	"github.com/sharebite/sharebite-backend/internal/db"
	"github.com/sharebite/sharebite-backend/internal/model"
	"github.com/sharebite/sharebite-backend/internal/repository"
)

// Seeds a handful of demo donations for local development.
func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

type sample struct {
	title    string
	quantity string
	address  string
	lat, lng float64
}

func run() error {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Donation{}, &model.Location{}, &model.Photo{}, &model.FoodRequest{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	donationRepo := repository.NewDonationRepository(gdb)
	locationRepo := repository.NewLocationRepository(gdb)

	bestBefore := time.Now().AddDate(0, 0, 7).Format(model.BestBeforeLayout)
	samples := []sample{
		{"Sourdough loaves", "4 loaves", "12 Queen St W", 43.6526, -79.3832},
		{"Vegetable box", "1 crate", "88 College Ave", 43.6629, -79.3957},
		{"Canned soup", "10 cans", "5 Dundas Sq", 43.6561, -79.3803},
	}

	inserted := 0
	for _, s := range samples {
		existing, err := donationRepo.ListByOwner(ctx, "seed-user")
		if err != nil {
			return fmt.Errorf("list existing: %w", err)
		}
		if hasTitle(existing, s.title) {
			continue
		}
		d := model.Donation{
			DonatedBy:  "seed-user",
			Title:      s.title,
			Quantity:   s.quantity,
			BestBefore: bestBefore,
			Status:     model.FoodStatusAvailable,
		}
		if err := donationRepo.Create(ctx, &d); err != nil {
			return fmt.Errorf("create donation %q: %w", s.title, err)
		}
		loc := model.Location{
			DonationID: d.DonationID,
			Address:    s.address,
			Latitude:   s.lat,
			Longitude:  s.lng,
		}
		if err := locationRepo.Create(ctx, &loc); err != nil {
			return fmt.Errorf("create location for %q: %w", s.title, err)
		}
		inserted++
	}

	log.Printf("seed done: %d inserted", inserted)
	return nil
}

func hasTitle(list []model.Donation, title string) bool {
	for _, d := range list {
		if d.Title == title {
			return true
		}
	}
	return false
}
