package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"babysimple/internal/api/v1/dto"
	"babysimple/internal/middleware"
	"babysimple/internal/model"
	"babysimple/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// TeamHandler serves the Enterprise team management routes.
type TeamHandler struct {
	teamSvc  *service.TeamService
	userSvc  *service.UserService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewTeamHandler(teamSvc *service.TeamService, userSvc *service.UserService, v *validator.Validate, logger zerolog.Logger) *TeamHandler {
	return &TeamHandler{
		teamSvc:  teamSvc,
		userSvc:  userSvc,
		validate: v,
		logger:   logger.With().Str("handler", "TeamHandler").Logger(),
	}
}

// RegisterRoutes mounts v1 team routes.
func (h *TeamHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/team/members", authMw(http.HandlerFunc(h.handleMembers)))
}

func (h *TeamHandler) handleMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.listMembers(w, r, userID)
	case http.MethodPost:
		h.inviteMember(w, r, userID)
	case http.MethodDelete:
		h.removeMember(w, r, userID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TeamHandler) listMembers(w http.ResponseWriter, r *http.Request, userID string) {
	members, err := h.teamSvc.ListMembers(r.Context(), h.adminTier(r.Context(), userID), userID)
	if err != nil {
		writeTeamError(w, err)
		return
	}

	resp := make([]dto.TeamMemberDTO, 0, len(members))
	for _, m := range members {
		resp = append(resp, dto.TeamMemberDTO{Email: m.Email, Role: m.Role})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *TeamHandler) inviteMember(w http.ResponseWriter, r *http.Request, userID string) {
	var req dto.TeamInviteDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	member, err := h.teamSvc.Invite(r.Context(), h.adminTier(r.Context(), userID), userID, req.Email)
	if err != nil {
		writeTeamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.TeamMemberDTO{Email: member.Email, Role: member.Role})
}

func (h *TeamHandler) removeMember(w http.ResponseWriter, r *http.Request, userID string) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "Missing email query parameter", http.StatusBadRequest)
		return
	}

	if err := h.teamSvc.Remove(r.Context(), h.adminTier(r.Context(), userID), userID, email); err != nil {
		writeTeamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) adminTier(ctx context.Context, userID string) model.Tier {
	if profile, err := h.userSvc.GetProfile(ctx, userID); err == nil {
		return profile.Tier
	}
	return model.TierStarter
}

func writeTeamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTeamRequiresEnterprise):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrTeamFull):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrAlreadyMember):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrMemberNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrStoreUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
