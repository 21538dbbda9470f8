package service

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("forbidden")
var ErrValidation = errors.New("validation failed")
var ErrInvalidTransition = errors.New("illegal status transition")

// PartialUploadError reports a multi-image upload where at least one image
// failed. URIs of the uploads that succeeded are still recorded against
// the donation and listed here so the caller can retry just the rest.
type PartialUploadError struct {
	DonationID string
	Uploaded   []string
	Failed     int
	Err        error
}

func (e *PartialUploadError) Error() string {
	return fmt.Sprintf("upload for donation %s: %d image(s) failed, %d uploaded: %v",
		e.DonationID, e.Failed, len(e.Uploaded), e.Err)
}

func (e *PartialUploadError) Unwrap() error { return e.Err }

// PartialPublishError is returned when the donation row was written but a
// later publish step failed. There is no compensating rollback; the id is
// handed back so the caller can retry the missing piece or clean up.
type PartialPublishError struct {
	DonationID string
	Stage      string
	Err        error
}

func (e *PartialPublishError) Error() string {
	return fmt.Sprintf("publish of donation %s failed at %s: %v", e.DonationID, e.Stage, e.Err)
}

func (e *PartialPublishError) Unwrap() error { return e.Err }
