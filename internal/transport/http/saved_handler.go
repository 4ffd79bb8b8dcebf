package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/contract"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/service"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"
)

type SavedDestinationHandler struct {
	saved *service.SavedDestinationService
}

func RegisterSavedDestinations(e *echo.Echo, auth *service.AuthService, saved *service.SavedDestinationService) {
	handler := &SavedDestinationHandler{saved: saved}

	group := e.Group("/api/v1/saved-destinations", RequireAuth(auth))
	group.GET("", handler.list)
	group.POST("", handler.save)
	group.DELETE("/:destinationID", handler.remove)
}

func (h *SavedDestinationHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	limit, offset := parsePagination(c, 20, 0)

	page, err := h.saved.List(c.Request().Context(), user, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list saved destinations"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"saved_destinations": page.Items,
		"meta":               pageMeta(page.Total, page.Limit, page.Offset, len(page.Items)),
	})
}

func (h *SavedDestinationHandler) save(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		DestinationID string `json:"destination_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	destinationID, err := uuid.Parse(strings.TrimSpace(req.DestinationID))
	if err != nil {
		return writeValidationErrors(c, destinationRefError(contract.CodeInvalidFormat, "must be a valid UUID"))
	}

	saved, err := h.saved.Save(c.Request().Context(), user, destinationID)
	if err != nil {
		return h.writeSaveError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{"saved_destination": saved})
}

// writeSaveError maps save failures to the contract's field-keyed taxonomy.
// The destination reference is the one body-borne field, so a dangling
// reference is a 400 on destination_id rather than a route-level 404.
func (h *SavedDestinationHandler) writeSaveError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrDestinationNotFound):
		return writeValidationErrors(c, destinationRefError(contract.CodeReferenceNotFound, "destination does not exist"))
	case errors.Is(err, service.ErrAlreadySaved):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, util.Error("unable to save destination"))
}

func destinationRefError(code contract.Code, message string) contract.ValidationErrors {
	verrs := contract.ValidationErrors{}
	verrs.Add("destination_id", code, message)
	return verrs
}

func (h *SavedDestinationHandler) remove(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	destinationID, err := parseUUIDParam(c, "destinationID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	if err := h.saved.Remove(c.Request().Context(), user, destinationID); err != nil {
		if errors.Is(err, service.ErrSavedNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to remove saved destination"))
	}
	return c.NoContent(http.StatusNoContent)
}
