package service

import (
	"context"
	"sync"

	"github.com/sharebite/sharebite-backend/internal/repository"
	"github.com/sharebite/sharebite-backend/internal/storage"
	"golang.org/x/sync/errgroup"
)

type PhotoService interface {
	// Upload pushes every image to the blob store concurrently and records
	// the resulting URIs. Any single failure fails the whole call with a
	// *PartialUploadError; URIs that did make it are recorded regardless.
	Upload(ctx context.Context, donationID string, images [][]byte) ([]string, error)
	ListByDonation(ctx context.Context, donationID string) ([]string, error)
}

type photoService struct {
	repo     repository.PhotoRepository
	blobs    storage.ObjectStore
	fanLimit int
}

func NewPhotoService(repo repository.PhotoRepository, blobs storage.ObjectStore, fanLimit int) PhotoService {
	if fanLimit <= 0 {
		fanLimit = 4
	}
	return &photoService{repo: repo, blobs: blobs, fanLimit: fanLimit}
}

func (s *photoService) Upload(ctx context.Context, donationID string, images [][]byte) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}

	uris := make([]string, len(images))
	var (
		mu       sync.Mutex
		failed   int
		firstErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanLimit)
	for i, img := range images {
		g.Go(func() error {
			uri, err := s.blobs.Upload(gctx, storage.ObjectPath(donationID), img, "image/jpeg")
			if err != nil {
				mu.Lock()
				failed++
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return nil
			}
			uris[i] = uri
			return nil
		})
	}
	_ = g.Wait()

	uploaded := make([]string, 0, len(uris))
	for _, uri := range uris {
		if uri != "" {
			uploaded = append(uploaded, uri)
		}
	}
	if err := s.repo.SaveAll(ctx, donationID, uploaded); err != nil {
		return nil, err
	}
	if failed > 0 {
		return uploaded, &PartialUploadError{
			DonationID: donationID,
			Uploaded:   uploaded,
			Failed:     failed,
			Err:        firstErr,
		}
	}
	return uploaded, nil
}

func (s *photoService) ListByDonation(ctx context.Context, donationID string) ([]string, error) {
	return s.repo.ListByDonation(ctx, donationID)
}
