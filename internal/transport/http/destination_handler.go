package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/access"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/contract"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/media"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/service"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"
)

type DestinationHandler struct {
	destinations *service.DestinationService
	images       *service.ImageService
}

func RegisterDestinations(e *echo.Echo, auth *service.AuthService, destinations *service.DestinationService, images *service.ImageService) {
	handler := &DestinationHandler{destinations: destinations, images: images}

	public := e.Group("/api/v1/destinations")
	public.GET("", handler.list)
	public.GET("/:id", handler.get)
	public.GET("/slug/:slug", handler.getBySlug)

	authed := e.Group("/api/v1/destinations", RequireAuth(auth))
	authed.POST("", handler.create)
	authed.PUT("/:id", handler.update)
	authed.DELETE("/:id", handler.delete)
	authed.POST("/:id/images", handler.uploadImage)
}

func (h *DestinationHandler) list(c echo.Context) error {
	page, err := h.destinations.List(c.Request().Context(), parseDestinationFilter(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list destinations"))
	}

	payload := make([]contract.DestinationView, 0, len(page.Items))
	for _, d := range page.Items {
		payload = append(payload, contract.NewDestinationView(d))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destinations": payload,
		"meta":         pageMeta(page.Total, page.Limit, page.Offset, len(payload)),
	})
}

// parseDestinationFilter reads the list query surface: category, region,
// featured and the free-text q parameter, plus paging.
func parseDestinationFilter(c echo.Context) domain.DestinationFilter {
	limit, offset := parsePagination(c, 20, 0)
	filter := domain.DestinationFilter{
		Query:  strings.TrimSpace(c.QueryParam("q")),
		Limit:  limit,
		Offset: offset,
	}
	if v := strings.TrimSpace(c.QueryParam("category")); v != "" {
		filter.Category = &v
	}
	if v := strings.TrimSpace(c.QueryParam("region")); v != "" {
		filter.Region = &v
	}
	switch strings.ToLower(strings.TrimSpace(c.QueryParam("featured"))) {
	case "true":
		t := true
		filter.Featured = &t
	case "false":
		f := false
		filter.Featured = &f
	}
	return filter
}

func (h *DestinationHandler) get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	dest, reviews, err := h.destinations.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": contract.NewDestinationDetailView(*dest, reviews),
	})
}

func (h *DestinationHandler) getBySlug(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return c.JSON(http.StatusBadRequest, util.Error("slug required"))
	}

	dest, reviews, err := h.destinations.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return h.writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": contract.NewDestinationDetailView(*dest, reviews),
	})
}

func (h *DestinationHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var input contract.DestinationInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	dest, err := h.destinations.Create(c.Request().Context(), user, input)
	if err != nil {
		var verrs contract.ValidationErrors
		if errors.As(err, &verrs) {
			return writeValidationErrors(c, verrs)
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create destination"))
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"destination": contract.NewDestinationView(*dest),
	})
}

func (h *DestinationHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	var input contract.DestinationInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	dest, err := h.destinations.Update(c.Request().Context(), user, id, input)
	if err != nil {
		var verrs contract.ValidationErrors
		if errors.As(err, &verrs) {
			return writeValidationErrors(c, verrs)
		}
		return h.writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": contract.NewDestinationView(*dest),
	})
}

func (h *DestinationHandler) delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	if err := h.destinations.Delete(c.Request().Context(), user, id); err != nil {
		return h.writeDestinationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// uploadImage stores one image for the destination and returns its public
// URL. The client then adds the URL to the images payload on update.
func (h *DestinationHandler) uploadImage(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	dest, _, err := h.destinations.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeDestinationError(c, err)
	}
	if !access.OwnerOrReadOnly(user, http.MethodPost, dest.UserID) || dest.UserID == nil {
		return c.JSON(http.StatusForbidden, util.Error("not allowed to manage this destination"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("file upload required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}
	defer src.Close()

	url, err := h.images.UploadDestinationImage(c.Request().Context(), dest.ID, media.Upload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageTooLarge),
			errors.Is(err, service.ErrUnsupportedImage),
			errors.Is(err, service.ErrImageDecodeFailed):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to store image"))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"url": url})
}

func (h *DestinationHandler) writeDestinationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrDestinationNotFound):
		return c.JSON(http.StatusNotFound, util.Error("destination not found"))
	case errors.Is(err, service.ErrDestinationForbidden):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
}
