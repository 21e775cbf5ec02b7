package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"babysimple/internal/api/v1/dto"
	"babysimple/internal/middleware"
	"babysimple/internal/model"
	"babysimple/internal/repository"
	"babysimple/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler serves profile, usage, and sign-out routes.
type UserHandler struct {
	userSvc *service.UserService
	logger  zerolog.Logger
}

func NewUserHandler(userSvc *service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
		logger:  logger.With().Str("handler", "UserHandler").Logger(),
	}
}

// RegisterRoutes mounts v1 user routes.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/users/me", authMw(http.HandlerFunc(h.handleUsers)))
	mux.Handle("/users/me/usage", authMw(http.HandlerFunc(h.getUsage)))
	mux.Handle("/auth/signout", authMw(http.HandlerFunc(h.signOut)))
}

func (h *UserHandler) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createProfile(w, r)
	case http.MethodGet:
		h.getProfile(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *UserHandler) createProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}
	email, _ := r.Context().Value(middleware.EmailContextKey).(string)

	if err := h.userSvc.EnsureProfile(r.Context(), userID, email); err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "Failed to create profile: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	user, err := h.userSvc.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, service.ErrStoreUnavailable) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := dto.ProfileResponseDTO{
		UserID:    user.UserID,
		Email:     user.Email,
		Tier:      string(user.Tier),
		CreatedAt: user.CreatedAt,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) getUsage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	tier := model.TierStarter
	if profile, err := h.userSvc.GetProfile(r.Context(), userID); err == nil {
		tier = profile.Tier
	}
	limits := model.LimitsFor(tier)

	count, err := h.userSvc.UsageToday(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to read usage: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := dto.UsageResponseDTO{
		Count:     count,
		DailyCap:  limits.DailyCap,
		Unlimited: limits.Unlimited(),
		CharLimit: limits.CharLimit,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) signOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	h.userSvc.SignOut(r.Context(), sessionKeyFor(r, userID))
	w.WriteHeader(http.StatusNoContent)
}
