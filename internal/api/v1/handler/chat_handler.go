package handler

import (
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

// ChatHandler serves the Enterprise contextual chat route.
type ChatHandler struct {
	chatSvc  *service.ChatService
	userSvc  *service.UserService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewChatHandler(chatSvc *service.ChatService, userSvc *service.UserService, v *validator.Validate, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chatSvc:  chatSvc,
		userSvc:  userSvc,
		validate: v,
		logger:   logger.With().Str("handler", "ChatHandler").Logger(),
	}
}

// RegisterRoutes mounts v1 chat routes.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/chat", authMw(http.HandlerFunc(h.chat)))
}

func (h *ChatHandler) chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	tier := model.TierStarter
	if profile, err := h.userSvc.GetProfile(r.Context(), userID); err == nil {
		tier = profile.Tier
	}

	answer, err := h.chatSvc.Answer(r.Context(), tier, req.Context, req.Gist, req.Transcript, req.Question)
	if err != nil {
		if errors.Is(err, service.ErrChatRequiresEnterprise) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, "Chat failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.ChatResponseDTO{Answer: answer})
}
