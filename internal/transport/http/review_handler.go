package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/contract"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/service"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func RegisterReviews(e *echo.Echo, auth *service.AuthService, reviews *service.ReviewService) {
	handler := &ReviewHandler{reviews: reviews}

	e.GET("/api/v1/destinations/:id/reviews", handler.list)
	e.POST("/api/v1/destinations/:id/reviews", handler.create, RequireAuth(auth))

	authed := e.Group("/api/v1/reviews", RequireAuth(auth))
	authed.DELETE("/:id", handler.delete)
	authed.POST("/:id/helpful", handler.markHelpful)
	authed.POST("/:id/report", handler.report)
}

func (h *ReviewHandler) list(c echo.Context) error {
	destinationID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	limit, offset := parsePagination(c, 20, 0)

	page, err := h.reviews.List(c.Request().Context(), destinationID, limit, offset)
	if err != nil {
		return h.writeReviewError(c, err)
	}

	payload := make([]contract.ReviewView, 0, len(page.Items))
	for _, review := range page.Items {
		payload = append(payload, contract.NewReviewView(review))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"reviews": payload,
		"meta":    pageMeta(page.Total, page.Limit, page.Offset, len(payload)),
	})
}

func (h *ReviewHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	destinationID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	var input contract.ReviewInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	review, err := h.reviews.Create(c.Request().Context(), user, destinationID, input)
	if err != nil {
		var verrs contract.ValidationErrors
		if errors.As(err, &verrs) {
			return writeValidationErrors(c, verrs)
		}
		return h.writeReviewError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"review": contract.NewReviewView(*review),
	})
}

func (h *ReviewHandler) delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	reviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	if err := h.reviews.Delete(c.Request().Context(), user, reviewID); err != nil {
		return h.writeReviewError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReviewHandler) markHelpful(c echo.Context) error {
	reviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	count, err := h.reviews.MarkHelpful(c.Request().Context(), reviewID)
	if err != nil {
		return h.writeReviewError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"helpful": count})
}

func (h *ReviewHandler) report(c echo.Context) error {
	reviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	if err := h.reviews.Report(c.Request().Context(), reviewID); err != nil {
		return h.writeReviewError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"message": "review reported"})
}

func (h *ReviewHandler) writeReviewError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrDestinationNotFound):
		return c.JSON(http.StatusNotFound, util.Error("destination not found"))
	case errors.Is(err, service.ErrReviewNotFound):
		return c.JSON(http.StatusNotFound, util.Error("review not found"))
	case errors.Is(err, service.ErrReviewForbidden):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
}
