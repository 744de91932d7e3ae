package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/LeviOP/wealthwise/internal/http/respond"
	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/models/dto"
	"github.com/LeviOP/wealthwise/internal/service"
)

// AuthHandler owns the JSON register/login endpoints.
type AuthHandler struct {
	svc *service.Service
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *service.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	res, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrConflict):
			respond.Error(w, http.StatusConflict, err.Error())
		default:
			log.FromContext(r.Context()).ErrorContext(r.Context(), "register failed", log.FieldError, err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}
	respond.JSON(w, http.StatusCreated, "user created successfully", dto.AuthResponse{Token: res.Token, User: res.User})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			respond.Error(w, http.StatusUnauthorized, err.Error())
		default:
			log.FromContext(r.Context()).ErrorContext(r.Context(), "login failed", log.FieldError, err)
			respond.Error(w, http.StatusInternalServerError, "failed to log in")
		}
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.AuthResponse{Token: res.Token, User: res.User})
}
