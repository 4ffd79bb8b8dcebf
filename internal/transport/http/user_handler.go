package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/contract"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/service"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"
)

type UserHandler struct {
	users *service.UserService
}

func RegisterUsers(e *echo.Echo, auth *service.AuthService, users *service.UserService) {
	handler := &UserHandler{users: users}

	me := e.Group("/api/v1/users/me", RequireAuth(auth))
	me.GET("", handler.me)
	me.PUT("", handler.updateProfile)
	me.PUT("/preferences", handler.setPreferences)
	me.GET("/landing", handler.landing)

	admin := e.Group("/api/v1/admin/users", RequireAuth(auth), RequireAdmin())
	admin.GET("", handler.list)
	admin.POST("", handler.create)
	admin.GET("/:id", handler.get)
	admin.PUT("/:id", handler.adminUpdate)
	admin.DELETE("/:id", handler.delete)
	admin.POST("/:id/toggle-active", handler.toggleActive)
	admin.POST("/:id/toggle-staff", handler.toggleStaff)
}

func (h *UserHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": buildAccountResponse(user)})
}

func (h *UserHandler) updateProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		Username  *string `json:"username"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user.ID, service.UpdateProfileInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update profile"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": buildAccountResponse(updated)})
}

func (h *UserHandler) setPreferences(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		Interests []string `json:"interests"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.users.SetPreferences(c.Request().Context(), user.ID, req.Interests); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to save preferences"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"message": "preferences saved"})
}

func (h *UserHandler) landing(c echo.Context) error {
	user, _ := CurrentUser(c)

	content, err := h.users.LandingContent(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load landing content"))
	}

	featured := make([]contract.DestinationView, 0, len(content.Featured))
	for _, d := range content.Featured {
		featured = append(featured, contract.NewDestinationView(d))
	}
	recommended := make([]contract.DestinationView, 0, len(content.Recommended))
	for _, d := range content.Recommended {
		recommended = append(recommended, contract.NewDestinationView(d))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"featured":    featured,
		"recommended": recommended,
	})
}

func (h *UserHandler) list(c echo.Context) error {
	limit, offset := parsePagination(c, 20, 0)

	page, err := h.users.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list users"))
	}

	payload := make([]util.Envelope, 0, len(page.Items))
	for i := range page.Items {
		payload = append(payload, buildAccountResponse(&page.Items[i]))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"users": payload,
		"meta":  pageMeta(page.Total, page.Limit, page.Offset, len(payload)),
	})
}

func (h *UserHandler) create(c echo.Context) error {
	var req struct {
		Email     string  `json:"email"`
		Password  string  `json:"password"`
		Username  *string `json:"username"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Role      string  `json:"role"`
		IsStaff   bool    `json:"is_staff"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	user, err := h.users.CreateUser(c.Request().Context(), service.AdminCreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.UserRole(req.Role),
		IsStaff:   req.IsStaff,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create user"))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"user": buildAccountResponse(user)})
}

func (h *UserHandler) get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load user"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": buildAccountResponse(user)})
}

func (h *UserHandler) adminUpdate(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	var req struct {
		Username  *string `json:"username"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), id, service.UpdateProfileInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update user"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": buildAccountResponse(updated)})
}

func (h *UserHandler) delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete user"))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) toggleActive(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	active, err := h.users.ToggleActive(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update user"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"is_active": active})
}

func (h *UserHandler) toggleStaff(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	staff, err := h.users.ToggleStaff(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update user"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"is_staff": staff})
}

// buildAccountResponse is the owner/admin-facing account projection; it
// carries more than the public contract.UserView.
func buildAccountResponse(user *domain.User) util.Envelope {
	resp := util.Envelope{
		"id":             user.ID,
		"email":          user.Email,
		"role":           user.Role,
		"interests":      user.Interests,
		"is_active":      user.IsActive,
		"is_staff":       user.IsStaff,
		"email_verified": user.EmailVerified,
		"created_at":     user.CreatedAt,
		"updated_at":     user.UpdatedAt,
	}
	if user.Username != nil {
		resp["username"] = *user.Username
	}
	if user.FirstName != nil {
		resp["first_name"] = *user.FirstName
	}
	if user.LastName != nil {
		resp["last_name"] = *user.LastName
	}
	if user.AvatarURL != nil {
		resp["avatar_url"] = *user.AvatarURL
	}
	return resp
}
