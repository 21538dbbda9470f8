package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/sharebite/sharebite-backend/internal/config"
	"github.com/sharebite/sharebite-backend/internal/db"
	"github.com/sharebite/sharebite-backend/internal/model"
	"github.com/sharebite/sharebite-backend/internal/server"
	"github.com/sharebite/sharebite-backend/internal/storage"
)

// Set via -ldflags at build time.
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		log.Printf("config load error: %v", cfgErr)
		cfg = &config.Config{Port: "8080", OpTimeoutSeconds: 15, FanOutLimit: 8}
	}

	srv := server.New(nil, cfg, gitSHA, buildTime)
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// Bind the port first; the database and blob store come up behind it.
	go func() {
		if cfgErr != nil {
			return
		}
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		srv.SetDB(conn)
		if err := conn.AutoMigrate(
			&model.Donation{},
			&model.Location{},
			&model.Photo{},
			&model.FoodRequest{},
		); err != nil {
			log.Printf("auto migrate error: %v", err)
		}

		store, err := storage.NewGCSStore(context.Background(), cfg.StorageBucket, cfg.CredentialsFile)
		if err != nil {
			log.Printf("storage init error: %v", err)
			return
		}
		srv.SetObjectStore(store)
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
