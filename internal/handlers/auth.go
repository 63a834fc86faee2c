package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/night-walker/backend/internal/auth"
	"github.com/anonto42/night-walker/backend/internal/middleware"
	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(authenticator Authenticator) *AuthHandler {
	return &AuthHandler{auth: authenticator}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/auth/signup", h.Signup)
	g.POST("/auth/login", h.Login)
	g.POST("/auth/logout", h.Logout, requireAuth)
	g.POST("/auth/firebase-login", h.FirebaseLogin)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	token, user, err := h.auth.Signup(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, newAuthResponse(token, user))
}

// Login handles local user authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, newAuthResponse(token, user))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.CurrentToken(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin exchanges a Firebase ID token for a local session
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	token, user, err := h.auth.FederatedLogin(c.Request().Context(), req.IDToken)
	if errors.Is(err, auth.ErrFederationDisabled) {
		return echo.NewHTTPError(http.StatusNotImplemented, "Firebase login is not configured")
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, newAuthResponse(token, user))
}

func newAuthResponse(token string, user models.User) models.AuthResponse {
	return models.AuthResponse{AccessToken: token, TokenType: "bearer", User: user}
}
