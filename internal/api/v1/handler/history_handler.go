package handler

import (
	"encoding/json"
	"net/http"

	"babysimple/internal/api/v1/dto"
	"babysimple/internal/middleware"
	"babysimple/internal/service"

	"github.com/rs/zerolog"
)

// HistoryHandler serves past simplifications.
type HistoryHandler struct {
	historySvc *service.HistoryService
	logger     zerolog.Logger
}

func NewHistoryHandler(historySvc *service.HistoryService, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		historySvc: historySvc,
		logger:     logger.With().Str("handler", "HistoryHandler").Logger(),
	}
}

// RegisterRoutes mounts v1 history routes.
func (h *HistoryHandler) RegisterRoutes(mux *http.ServeMux, optionalAuthMw func(http.Handler) http.Handler) {
	mux.Handle("/history", optionalAuthMw(http.HandlerFunc(h.listHistory)))
}

func (h *HistoryHandler) listHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, _ := r.Context().Value(middleware.UserContextKey).(string)
	sessionKey := sessionKeyFor(r, userID)

	items, err := h.historySvc.List(r.Context(), sessionKey, userID)
	if err != nil {
		http.Error(w, "Failed to retrieve history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	itemDTOs := make([]dto.HistoryItemDTO, 0, len(items))
	for _, it := range items {
		itemDTOs = append(itemDTOs, dto.HistoryItemDTO{
			ID:        it.ID,
			CreatedAt: it.CreatedAt,
			Niche:     it.Niche,
			Input:     it.Input,
			Output:    it.Output,
			Model:     it.Model,
			Tone:      it.Tone,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(itemDTOs)
}
