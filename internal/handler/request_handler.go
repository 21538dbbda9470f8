package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sharebite/sharebite-backend/internal/service"
)

type RequestHandler struct {
	svc service.RequestService
}

func NewRequestHandler(svc service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

func (h *RequestHandler) Request(c echo.Context) error {
	if err := h.svc.Request(c.Request().Context(), uidFrom(c), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *RequestHandler) Cancel(c echo.Context) error {
	if err := h.svc.Cancel(c.Request().Context(), uidFrom(c), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
