package server

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sharebite/sharebite-backend/internal/config"
	"github.com/sharebite/sharebite-backend/internal/handler"
	appmw "github.com/sharebite/sharebite-backend/internal/middleware"
	"github.com/sharebite/sharebite-backend/internal/repository"
	"github.com/sharebite/sharebite-backend/internal/service"
	"github.com/sharebite/sharebite-backend/internal/storage"
	"gorm.io/gorm"
)

type Server struct {
	e            *echo.Echo
	donationRepo repository.DonationRepository
	locationRepo repository.LocationRepository
	photoRepo    repository.PhotoRepository
	requestRepo  repository.FoodRequestRepository
	blobs        *storage.Lazy
	sha          string
	build        string
}

func New(db *gorm.DB, cfg *config.Config, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "sharebite.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	blobs := &storage.Lazy{}

	donationRepo := repository.NewDonationRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	requestRepo := repository.NewFoodRequestRepository(db)

	photoSvc := service.NewPhotoService(photoRepo, blobs, cfg.FanOutLimit)
	donationSvc := service.NewDonationService(donationRepo, locationRepo, photoSvc, requestRepo, cfg.OpTimeout(), cfg.FanOutLimit)
	requestSvc := service.NewRequestService(requestRepo, donationRepo)

	donationHandler := handler.NewDonationHandler(donationSvc)
	requestHandler := handler.NewRequestHandler(requestSvc)

	var authMw *appmw.AuthMiddleware
	if projectID := os.Getenv("FIREBASE_PROJECT_ID"); projectID != "" {
		mw, err := appmw.NewAuthMiddleware(context.Background(), projectID)
		if err != nil {
			e.Logger.Fatalf("failed to init firebase auth: %v", err)
		}
		authMw = mw
	} else {
		log.Printf("FIREBASE_PROJECT_ID not set; running without auth")
	}
	var userHandler *handler.UserHandler
	if authMw != nil && authMw.Client() != nil {
		userHandler = handler.NewUserHandler(authMw.Client())
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")
	if authMw != nil {
		api.POST("/donations", donationHandler.Publish, authMw.RequireAuth)
		api.GET("/donations", donationHandler.ListAvailable, authMw.RequireAuth)
		api.GET("/donations/:id", donationHandler.Get, authMw.RequireAuth)
		api.PATCH("/donations/:id", donationHandler.Update, authMw.RequireAuth)
		api.POST("/donations/:id/status", donationHandler.UpdateStatus, authMw.RequireAuth)
		api.DELETE("/donations/:id", donationHandler.Delete, authMw.RequireAuth)
		api.POST("/donations/:id/request", requestHandler.Request, authMw.RequireAuth)
		api.DELETE("/donations/:id/request", requestHandler.Cancel, authMw.RequireAuth)
		api.GET("/me/donations", donationHandler.ListMine, authMw.RequireAuth)
		api.GET("/me/donations/requested", donationHandler.ListMineRequested, authMw.RequireAuth)
		api.GET("/me/requests", donationHandler.ListMyRequests, authMw.RequireAuth)
		api.GET("/me/report", donationHandler.Report, authMw.RequireAuth)
	} else {
		api.POST("/donations", donationHandler.Publish)
		api.GET("/donations", donationHandler.ListAvailable)
		api.GET("/donations/:id", donationHandler.Get)
		api.PATCH("/donations/:id", donationHandler.Update)
		api.POST("/donations/:id/status", donationHandler.UpdateStatus)
		api.DELETE("/donations/:id", donationHandler.Delete)
		api.POST("/donations/:id/request", requestHandler.Request)
		api.DELETE("/donations/:id/request", requestHandler.Cancel)
		api.GET("/me/donations", donationHandler.ListMine)
		api.GET("/me/donations/requested", donationHandler.ListMineRequested)
		api.GET("/me/requests", donationHandler.ListMyRequests)
		api.GET("/me/report", donationHandler.Report)
	}
	if userHandler != nil {
		api.GET("/users/:uid/public", userHandler.GetPublic)
	}

	return &Server{
		e:            e,
		donationRepo: donationRepo,
		locationRepo: locationRepo,
		photoRepo:    photoRepo,
		requestRepo:  requestRepo,
		blobs:        blobs,
		sha:          sha,
		build:        buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) SetDB(db *gorm.DB) {
	s.donationRepo.SetDB(db)
	s.locationRepo.SetDB(db)
	s.photoRepo.SetDB(db)
	s.requestRepo.SetDB(db)
}

func (s *Server) SetObjectStore(store storage.ObjectStore) {
	s.blobs.Set(store)
}
