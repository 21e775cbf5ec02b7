package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"babysimple/internal/api/v1/dto"
	"babysimple/internal/middleware"
	"babysimple/internal/model"
	"babysimple/internal/provider"
	"babysimple/internal/service"
	"babysimple/internal/usage"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SimplifyHandler exposes the simplification orchestrator. Anonymous
// sessions are allowed; authenticated ones use the profile tier.
type SimplifyHandler struct {
	simplifySvc *service.SimplifyService
	userSvc     *service.UserService
	counter     *usage.Counter
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewSimplifyHandler(simplifySvc *service.SimplifyService, userSvc *service.UserService, counter *usage.Counter, v *validator.Validate, logger zerolog.Logger) *SimplifyHandler {
	return &SimplifyHandler{
		simplifySvc: simplifySvc,
		userSvc:     userSvc,
		counter:     counter,
		validate:    v,
		logger:      logger.With().Str("handler", "SimplifyHandler").Logger(),
	}
}

// RegisterRoutes mounts v1 simplify routes.
func (h *SimplifyHandler) RegisterRoutes(mux *http.ServeMux, optionalAuthMw func(http.Handler) http.Handler) {
	mux.Handle("/simplify", optionalAuthMw(http.HandlerFunc(h.simplify)))
}

func (h *SimplifyHandler) simplify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.SimplifyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	userID, _ := r.Context().Value(middleware.UserContextKey).(string)
	sessionKey := sessionKeyFor(r, userID)
	tier := h.resolveTier(r.Context(), userID, req.Tier)

	result, err := h.simplifySvc.Simplify(r.Context(), model.SimplificationRequest{
		Text:           req.Text,
		Tone:           req.Tone,
		Niche:          req.Niche,
		TargetLanguage: req.TargetLanguage,
	}, tier, sessionKey, userID)
	if err != nil {
		writeSimplifyError(w, err)
		return
	}

	count, err := h.counter.CurrentCount(r.Context(), sessionKey)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to read usage count")
	}

	resp := dto.SimplifyResponseDTO{
		Text:       result.Text,
		ModelUsed:  result.ModelUsed,
		UsageCount: count,
	}
	for _, a := range result.Attempts {
		resp.Attempts = append(resp.Attempts, dto.AttemptDTO{Provider: a.Provider, Model: a.Model, Error: a.Err})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// resolveTier prefers the profile tier for authenticated users and falls
// back to the request's claimed tier for anonymous sessions.
func (h *SimplifyHandler) resolveTier(ctx context.Context, userID, claimed string) model.Tier {
	if userID != "" {
		if profile, err := h.userSvc.GetProfile(ctx, userID); err == nil {
			return profile.Tier
		}
	}
	if claimed != "" {
		return model.NormalizeTier(claimed)
	}
	return model.TierStarter
}

// writeSimplifyError translates the error taxonomy onto HTTP statuses. Any
// unrecognized error becomes the generic simplification failure.
func writeSimplifyError(w http.ResponseWriter, err error) {
	var limitErr *service.LimitExceededError
	var authErr *provider.AuthError
	var failedErr *service.AllProvidersFailedError

	switch {
	case errors.Is(err, service.ErrEmptyInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &limitErr):
		http.Error(w, limitErr.Error()+". Please trim your text or upgrade.", http.StatusTooManyRequests)
	case errors.Is(err, service.ErrNoCredentials):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.As(err, &authErr):
		http.Error(w, authErr.Error(), http.StatusBadGateway)
	case errors.As(err, &failedErr):
		http.Error(w, failedErr.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "Simplification failed: "+err.Error(), http.StatusInternalServerError)
	}
}

// sessionKeyFor scopes local usage and history. Authenticated sessions key
// by user id; anonymous ones by the client-provided session header.
func sessionKeyFor(r *http.Request, userID string) string {
	if userID != "" {
		return userID
	}
	if key := r.Header.Get("X-Session-Key"); key != "" {
		return key
	}
	return r.RemoteAddr
}
