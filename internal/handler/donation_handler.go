package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sharebite/sharebite-backend/internal/model"
	"github.com/sharebite/sharebite-backend/internal/service"
)

type DonationHandler struct {
	svc service.DonationService
}

func NewDonationHandler(svc service.DonationService) *DonationHandler {
	return &DonationHandler{svc: svc}
}

type LocationPayload struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PublishDonationRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Quantity    string           `json:"quantity"`
	BestBefore  string           `json:"bestBefore"`
	Location    *LocationPayload `json:"location"`
	// Images are base64-encoded bytes, optionally with a data-URI prefix.
	Images []string `json:"images"`
}

type UpdateDonationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	BestBefore  string `json:"bestBefore"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type DonationResponse struct {
	DonationID  string           `json:"donationId"`
	DonatedBy   string           `json:"donatedBy"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Quantity    string           `json:"quantity"`
	BestBefore  string           `json:"bestBefore"`
	Status      string           `json:"status"`
	FoodDeleted bool             `json:"foodDeleted"`
	Location    *LocationPayload `json:"location,omitempty"`
	ImageURIs   []string         `json:"imageUris"`
	RequestedBy string           `json:"requestedBy,omitempty"`
	CreatedOn   string           `json:"createdOn"`
	UpdatedOn   string           `json:"updatedOn"`
}

type DonationListResponse struct {
	Donations []DonationResponse `json:"donations"`
}

func (h *DonationHandler) Publish(c echo.Context) error {
	var req PublishDonationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	images, err := decodeImages(req.Images)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "images must be base64 encoded"))
	}
	d := model.Donation{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		BestBefore:  req.BestBefore,
	}
	if req.Location != nil {
		d.Location = &model.Location{
			Address:   req.Location.Address,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}
	out, err := h.svc.Publish(c.Request().Context(), uidFrom(c), d, images)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toDonationResponse(out))
}

func (h *DonationHandler) Get(c echo.Context) error {
	d, err := h.svc.GetDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toDonationResponse(d))
}

func (h *DonationHandler) ListAvailable(c echo.Context) error {
	return h.writeList(c, h.svc.ListAvailable)
}

func (h *DonationHandler) ListMine(c echo.Context) error {
	return h.writeList(c, h.svc.ListForOwner)
}

func (h *DonationHandler) ListMineRequested(c echo.Context) error {
	return h.writeList(c, h.svc.ListRequestedForOwner)
}

func (h *DonationHandler) ListMyRequests(c echo.Context) error {
	return h.writeList(c, h.svc.ListRequestedByUser)
}

func (h *DonationHandler) writeList(c echo.Context, list func(ctx context.Context, userID string) ([]model.Donation, error)) error {
	donations, err := list(c.Request().Context(), uidFrom(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := DonationListResponse{Donations: make([]DonationResponse, 0, len(donations))}
	for i := range donations {
		resp.Donations = append(resp.Donations, toDonationResponse(&donations[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *DonationHandler) Update(c echo.Context) error {
	var req UpdateDonationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	d := model.Donation{
		DonationID:  c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		BestBefore:  req.BestBefore,
	}
	if err := h.svc.UpdateFields(c.Request().Context(), uidFrom(c), d); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DonationHandler) UpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	status := model.FoodStatus(req.Status)
	switch status {
	case model.FoodStatusAvailable, model.FoodStatusRequested, model.FoodStatusDonated:
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unknown status"))
	}
	if err := h.svc.UpdateStatus(c.Request().Context(), uidFrom(c), c.Param("id"), status); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DonationHandler) Delete(c echo.Context) error {
	if err := h.svc.SoftDelete(c.Request().Context(), uidFrom(c), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DonationHandler) Report(c echo.Context) error {
	report, err := h.svc.BuildReport(c.Request().Context(), uidFrom(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func toDonationResponse(d *model.Donation) DonationResponse {
	resp := DonationResponse{
		DonationID:  d.DonationID,
		DonatedBy:   d.DonatedBy,
		Title:       d.Title,
		Description: d.Description,
		Quantity:    d.Quantity,
		BestBefore:  d.BestBefore,
		Status:      string(d.Status),
		FoodDeleted: d.FoodDeleted,
		ImageURIs:   d.ImageURIs,
		RequestedBy: d.RequestedBy,
		CreatedOn:   d.CreatedOn.Format(time.RFC3339),
		UpdatedOn:   d.UpdatedOn.Format(time.RFC3339),
	}
	if resp.ImageURIs == nil {
		resp.ImageURIs = []string{}
	}
	if d.Location != nil {
		resp.Location = &LocationPayload{
			Address:   d.Location.Address,
			Latitude:  d.Location.Latitude,
			Longitude: d.Location.Longitude,
		}
	}
	return resp
}

func decodeImages(encoded []string) ([][]byte, error) {
	images := make([][]byte, 0, len(encoded))
	for _, src := range encoded {
		if idx := strings.Index(src, ";base64,"); idx >= 0 {
			src = src[idx+len(";base64,"):]
		}
		data, err := base64.StdEncoding.DecodeString(src)
		if err != nil {
			return nil, err
		}
		images = append(images, data)
	}
	return images, nil
}
