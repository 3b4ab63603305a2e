package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/credkit/webauth/internal/api/metrics"
	"github.com/credkit/webauth/internal/api/middleware"
	"github.com/credkit/webauth/internal/core/domain"
	"github.com/credkit/webauth/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string             `json:"message"`
	User    *domain.Projection `json:"user,omitempty"`
}

// RegisterPage answers probes and clients that GET the register entry point.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"page": "register"})
}

// LoginPage answers probes and clients that GET the login entry point.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"page": "login"})
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidEmail):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: "registration successful, you can now log in",
		User:    user.Project(),
	})
}

// Login verifies credentials and establishes the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrInvalidInput) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	if sess := middleware.SessionData(c); sess != nil {
		sess.UserID = user.ID
		sess.UserName = user.Name
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Message: "welcome, " + user.Name,
		User:    user.Project(),
	})
}

// Logout tears the session down and always redirects to the login entry
// point, whatever state the session was in.
//
// @Summary      Logout
// @Tags         auth
// @Success      302
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess := middleware.SessionData(c); sess != nil && sess.LoggedIn() {
		_ = h.authService.Logout(c.Request().Context(), sess.UserID)
	}
	middleware.DestroySession(c)
	return c.Redirect(http.StatusFound, "/login")
}
