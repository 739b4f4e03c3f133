package handler

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/middleware"
	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

type AuthHandler struct {
	jwtSecret string
	store     repository.Storage
}

func NewAuthHandler(jwtSecret string, store repository.Storage) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret, store: store}
}

// Register creates an account. A token is included when signing is configured.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err, "failed to register")
		return
	}

	username := strings.TrimSpace(req.Username)
	existing, err := h.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		writeFailure(w, r, err, "failed to register")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "username already exists")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeFailure(w, r, err, "failed to hash password")
		return
	}

	user, err := h.store.CreateUser(r.Context(), domain.NewUser{
		Username: username,
		Password: string(passwordHash),
		Name:     req.Name,
		Email:    strings.TrimSpace(strings.ToLower(req.Email)),
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			writeError(w, http.StatusConflict, "username already exists")
			return
		}
		writeFailure(w, r, err, "failed to register")
		return
	}

	resp := domain.TokenResponse{User: user}
	if h.jwtSecret != "" {
		resp.Token, err = middleware.GenerateToken(user.ID, user.Username, h.jwtSecret)
		if err != nil {
			writeFailure(w, r, err, "failed to generate token")
			return
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.jwtSecret == "" {
		writeError(w, http.StatusServiceUnavailable, "token signing is not configured")
		return
	}

	var req domain.TokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err, "failed to login")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		writeFailure(w, r, err, "failed to login")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.jwtSecret)
	if err != nil {
		writeFailure(w, r, err, "failed to generate token")
		return
	}
	writeJSON(w, http.StatusOK, domain.TokenResponse{Token: token, User: user})
}

// Me returns the caller's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.Context(), callerID(r))
	if err != nil {
		writeFailure(w, r, err, "failed to fetch user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
