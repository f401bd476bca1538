// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"arena/internal/delivery/http/middleware"
	"arena/internal/delivery/http/response"
	"arena/internal/errors"
	"arena/internal/usecase"

	"github.com/labstack/echo/v4"
)

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc     usecase.CredentialUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.CredentialUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// userResponse is the client-facing account shape. The password hash never
// leaves the service.
type userResponse struct {
	Username           string   `json:"username"`
	Level              int      `json:"level"`
	UnlockedCharacters []string `json:"unlocked_characters"`
}

// loginResponse carries the issued bearer token.
type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, userResponse{
		Username:           output.User.Username,
		Level:              output.User.Level,
		UnlockedCharacters: output.User.UnlockedCharacters,
	}, "User registered successfully")
}

// Login handles the login request and returns the bearer token.
func (h *UserHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{AccessToken: output.AccessToken}, "Login successful")
}

// GetProfile returns the authenticated player's game profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	username, ok := c.Get(middleware.UsernameContextKey).(string)
	if !ok || username == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Username missing from token")
	}

	output, err := h.uc.Profile(c.Request().Context(), username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, userResponse{
		Username:           output.User.Username,
		Level:              output.User.Level,
		UnlockedCharacters: output.User.UnlockedCharacters,
	}, "Profile retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
