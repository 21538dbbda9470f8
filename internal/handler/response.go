package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sharebite/sharebite-backend/internal/repository"
	"github.com/sharebite/sharebite-backend/internal/service"
)

type errorPayload struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	DonationID string `json:"donationId,omitempty"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// writeServiceError translates service errors to HTTP responses. Partial
// publish failures carry the persisted donation id so clients can retry
// the missing step.
func writeServiceError(c echo.Context, err error) error {
	var partial *service.PartialPublishError
	if errors.As(err, &partial) {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: errorPayload{
			Code:       "partial_publish",
			Message:    partial.Error(),
			DonationID: partial.DonationID,
		}})
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "donation not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case errors.Is(err, service.ErrValidation), errors.Is(err, repository.ErrMissingID):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrAlreadyRequested):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "request failed"))
	}
}

func uidFrom(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
