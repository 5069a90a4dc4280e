package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/manav1337/Task-manager/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register performs user credentials validation and creation and returns the public user summary.
	//
	// "req" parameter contains username, email and password.
	//
	// If the input is invalid, or such user already exists, or some other error occurs, the error will be returned together with "nil" value.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserSummary, error)
	// Method Login performs a user credentials validation and returns the public user summary together with an access token.
	//
	// "req" parameter contains username and password.
	//
	// If the credentials are wrong (unknown username or wrong password alike), apperrors.ErrInvalidCredentials will be returned.
	Login(ctx context.Context, req *models.LoginRequest) (*models.UserSummary, string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Register a new user with username, email and password. The new account always gets the USER role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.UserSummary "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid input or user already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("registration rejected", zap.String("username", req.Username), zap.Error(err))
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, user)
}

// LoginResponse is the successful login payload
type LoginResponse struct {
	Token string              `json:"token"`
	Type  string              `json:"type"`
	User  *models.UserSummary `json:"user"`
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate with username and password. Returns a bearer token in the body and as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("login rejected", zap.String("username", req.Username), zap.Error(err))
		h.RespondServiceError(w, r, err)
		return
	}

	// Also set the token as an HTTP-only cookie for browser clients
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		MaxAge:   86400, // 24 hours
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	h.RespondJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		Type:  "Bearer",
		User:  user,
	})
}
