package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"babysimple/internal/api/v1/dto"
	"babysimple/internal/middleware"
	"babysimple/internal/model"
	"babysimple/internal/service"

	"github.com/rs/zerolog"
)

// maxUploadMemory bounds the multipart form buffer, not the file itself;
// per-tier file limits are enforced by the document service.
const maxUploadMemory = 32 << 20

// UploadHandler accepts a file upload and returns its extracted text.
type UploadHandler struct {
	docSvc  *service.DocumentService
	userSvc *service.UserService
	logger  zerolog.Logger
}

func NewUploadHandler(docSvc *service.DocumentService, userSvc *service.UserService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		docSvc:  docSvc,
		userSvc: userSvc,
		logger:  logger.With().Str("handler", "UploadHandler").Logger(),
	}
}

// RegisterRoutes mounts v1 upload routes.
func (h *UploadHandler) RegisterRoutes(mux *http.ServeMux, optionalAuthMw func(http.Handler) http.Handler) {
	mux.Handle("/upload", optionalAuthMw(http.HandlerFunc(h.upload)))
}

func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "Invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	userID, _ := r.Context().Value(middleware.UserContextKey).(string)

	tier := model.TierStarter
	if userID != "" {
		if profile, err := h.userSvc.GetProfile(r.Context(), userID); err == nil {
			tier = profile.Tier
		}
	} else if claimed := r.FormValue("tier"); claimed != "" {
		tier = model.NormalizeTier(claimed)
	}

	text, err := h.docSvc.ExtractText(r.Context(), tier, userID, header.Filename, data)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.UploadResponseDTO{Filename: header.Filename, Text: text})
}

func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, service.ErrLegacyDoc):
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
	case errors.Is(err, service.ErrDocumentRequiresPro),
		errors.Is(err, service.ErrImageRequiresEnterprise):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrParse):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "Upload failed: "+err.Error(), http.StatusInternalServerError)
	}
}
