package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iconidentify/splitdash/internal/domain"
	"github.com/iconidentify/splitdash/internal/service"
)

// Error messages returned by the split API.
const (
	msgSplitNotFound  = "Split non trouvé"
	msgDuplicateSplit = "Un split avec ce nom existe déjà."
	msgInvalidBody    = "Corps de requête invalide"
	msgSplitDeleted   = "Split supprimé avec succès"
)

// SplitHandler handles split HTTP requests.
type SplitHandler struct {
	svc    *service.SplitService
	logger *slog.Logger
}

// NewSplitHandler creates a new split handler.
func NewSplitHandler(svc *service.SplitService, logger *slog.Logger) *SplitHandler {
	return &SplitHandler{
		svc:    svc,
		logger: logger,
	}
}

// SplitRequest is the JSON request body for split creation and update.
type SplitRequest struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Name  string `json:"name,omitempty"`
}

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body of a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// List returns all splits ordered by label.
func (h *SplitHandler) List(w http.ResponseWriter, r *http.Request) {
	splits, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list splits", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list splits")
		return
	}
	if splits == nil {
		splits = []domain.Split{}
	}

	writeJSON(w, http.StatusOK, splits)
}

// Get retrieves a single split.
func (h *SplitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	split, err := h.svc.Get(r.Context(), domain.SplitID(id))
	if err != nil {
		h.writeServiceError(w, "get", id, err)
		return
	}

	writeJSON(w, http.StatusOK, split)
}

// Create adds a new split.
func (h *SplitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	split, err := h.svc.Create(r.Context(), service.SplitInput{
		Label: req.Label,
		URL:   req.URL,
		Name:  req.Name,
	})
	if err != nil {
		h.writeServiceError(w, "create", "", err)
		return
	}

	writeJSON(w, http.StatusCreated, split)
}

// Update replaces the fields of a split, keeping its ID.
func (h *SplitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	split, err := h.svc.Update(r.Context(), domain.SplitID(id), service.SplitInput{
		Label: req.Label,
		URL:   req.URL,
		Name:  req.Name,
	})
	if err != nil {
		h.writeServiceError(w, "update", id, err)
		return
	}

	writeJSON(w, http.StatusOK, split)
}

// Delete removes a split.
func (h *SplitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), domain.SplitID(id)); err != nil {
		h.writeServiceError(w, "delete", id, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: msgSplitDeleted})
}

func (h *SplitHandler) writeServiceError(w http.ResponseWriter, op, id string, err error) {
	switch {
	case errors.Is(err, domain.ErrSplitNotFound):
		writeError(w, http.StatusNotFound, msgSplitNotFound)
	case errors.Is(err, domain.ErrDuplicateSplit):
		writeError(w, http.StatusConflict, msgDuplicateSplit)
	case errors.Is(err, domain.ErrEmptyLabel),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyURL),
		errors.Is(err, domain.ErrInvalidURL):
		var se *domain.SplitError
		msg := err.Error()
		if errors.As(err, &se) {
			msg = se.Err.Error()
		}
		writeError(w, http.StatusBadRequest, msg)
	default:
		h.logger.Error("split operation failed", "op", op, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
