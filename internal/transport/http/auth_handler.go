package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/contract"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/service"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, ratePerMinute int) {
	handler := &AuthHandler{auth: auth}

	group := e.Group("/api/v1/auth", RateLimit(ratePerMinute))
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.POST("/google", handler.loginWithGoogle)
	group.POST("/verify-email", handler.verifyEmail)
	group.POST("/resend-verification", handler.resendVerification)
	group.POST("/forgot-password", handler.forgotPassword)
	group.POST("/reset-password", handler.resetPassword)

	authed := e.Group("/api/v1/auth", RequireAuth(auth))
	authed.POST("/logout", handler.logout)
	authed.POST("/change-password", handler.changePassword)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req struct {
		Email     string   `json:"email"`
		Password  string   `json:"password"`
		Username  *string  `json:"username"`
		FirstName *string  `json:"first_name"`
		LastName  *string  `json:"last_name"`
		Role      string   `json:"role"`
		Interests []string `json:"interests"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	user, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.UserRole(req.Role),
		Interests: req.Interests,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to register"))
	}

	return c.JSON(http.StatusCreated, util.Envelope{
		"user":    contract.NewUserView(*user),
		"message": "verification code sent",
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	user, token, expiresAt, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.writeLoginError(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse(user, token, expiresAt))
}

func (h *AuthHandler) loginWithGoogle(c echo.Context) error {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	user, token, expiresAt, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		return h.writeLoginError(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse(user, token, expiresAt))
}

func (h *AuthHandler) logout(c echo.Context) error {
	token, ok := currentToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	if err := h.auth.Logout(c.Request().Context(), token); err != nil && !errors.Is(err, service.ErrInvalidToken) {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log out"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"message": "logged out"})
}

func (h *AuthHandler) verifyEmail(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.VerifyEmail(c.Request().Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrInvalidOTP):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to verify email"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"message": "email verified"})
}

func (h *AuthHandler) resendVerification(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.ResendVerification(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to send verification code"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"message": "verification code sent"})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to send reset code"))
	}
	// Same response whether or not the address exists.
	return c.JSON(http.StatusOK, util.Envelope{"message": "if the address exists, a reset code was sent"})
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrInvalidOTP), errors.Is(err, service.ErrWeakPassword):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to reset password"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"message": "password updated"})
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.ChangePassword(c.Request().Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusForbidden, util.Error(err.Error()))
		case errors.Is(err, service.ErrWeakPassword):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to change password"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"message": "password updated"})
}

func (h *AuthHandler) writeLoginError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrAccountDisabled):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, util.Error("unable to sign in"))
}

func loginResponse(user *domain.User, token string, expiresAt time.Time) util.Envelope {
	return util.Envelope{
		"user":       contract.NewUserView(*user),
		"token":      token,
		"expires_at": expiresAt,
	}
}
