package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"gorm.io/gorm"
)

type fakeBlobStore struct {
	mu  sync.Mutex
	seq int
}

func (f *fakeBlobStore) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if bytes.Equal(data, []byte("bad")) {
		return "", errors.New("object rejected")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("https://blob/%d", f.seq), nil
}

type fakePhotoRepo struct {
	mu   sync.Mutex
	rows map[string][]string
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{rows: map[string][]string{}}
}

func (f *fakePhotoRepo) SaveAll(ctx context.Context, donationID string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[donationID] = append(f.rows[donationID], uris...)
	return nil
}

func (f *fakePhotoRepo) ListByDonation(ctx context.Context, donationID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[donationID], nil
}

func (f *fakePhotoRepo) SetDB(db *gorm.DB) {}

func TestPhotoUpload(t *testing.T) {
	repo := newFakePhotoRepo()
	svc := NewPhotoService(repo, &fakeBlobStore{}, 2)

	uris, err := svc.Upload(context.Background(), "don-1", [][]byte{[]byte("a"), []byte("b"), []byte("c")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(uris) != 3 {
		t.Fatalf("got %d uris, want 3", len(uris))
	}
	stored, _ := repo.ListByDonation(context.Background(), "don-1")
	if len(stored) != 3 {
		t.Fatalf("recorded %d uris, want 3", len(stored))
	}
}

func TestPhotoUploadNoImages(t *testing.T) {
	svc := NewPhotoService(newFakePhotoRepo(), &fakeBlobStore{}, 2)
	uris, err := svc.Upload(context.Background(), "don-1", nil)
	if err != nil || uris != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", uris, err)
	}
}

func TestPhotoUploadPartialFailure(t *testing.T) {
	repo := newFakePhotoRepo()
	svc := NewPhotoService(repo, &fakeBlobStore{}, 2)

	uris, err := svc.Upload(context.Background(), "don-1", [][]byte{[]byte("a"), []byte("bad"), []byte("c")})
	var partial *PartialUploadError
	if !errors.As(err, &partial) {
		t.Fatalf("want PartialUploadError, got %v", err)
	}
	if partial.DonationID != "don-1" || partial.Failed != 1 {
		t.Fatalf("unexpected partial error: %+v", partial)
	}
	if len(uris) != 2 || len(partial.Uploaded) != 2 {
		t.Fatalf("got %d/%d uris, want 2 successes", len(uris), len(partial.Uploaded))
	}
	// The successes are still on record.
	stored, _ := repo.ListByDonation(context.Background(), "don-1")
	if len(stored) != 2 {
		t.Fatalf("recorded %d uris, want 2", len(stored))
	}
}
