package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"simwarga/internal/keluarga"
	"simwarga/pkg/domainerr"
)

// KeluargaService defines the interface for keluarga operations.
type KeluargaService interface {
	List(ctx context.Context) ([]keluarga.Enriched, error)
	GetByID(ctx context.Context, id int64) (*keluarga.Enriched, error)
	Create(ctx context.Context, in keluarga.CreateInput) (*keluarga.Keluarga, error)
	Update(ctx context.Context, id int64, in keluarga.UpdateInput) (*keluarga.Keluarga, error)
	Delete(ctx context.Context, id int64) error
}

// KeluargaHandler handles keluarga endpoints.
type KeluargaHandler struct {
	service KeluargaService
	logger  *slog.Logger
}

func NewKeluargaHandler(service KeluargaService, logger *slog.Logger) *KeluargaHandler {
	return &KeluargaHandler{service: service, logger: logger}
}

func keluargaID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domainerr.New(domainerr.CodeBadRequest, "id must be a number")
	}
	return id, nil
}

func (h *KeluargaHandler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Keluarga retrieved successfully", records)
}

func (h *KeluargaHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := keluargaID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	record, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Keluarga retrieved successfully", record)
}

func (h *KeluargaHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in keluarga.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, h.logger, r, domainerr.New(domainerr.CodeBadRequest, "invalid request body"))
		return
	}

	record, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Keluarga created successfully", record)
}

func (h *KeluargaHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := keluargaID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var in keluarga.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, h.logger, r, domainerr.New(domainerr.CodeBadRequest, "invalid request body"))
		return
	}

	record, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Keluarga updated successfully", record)
}

func (h *KeluargaHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := keluargaID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Keluarga deleted successfully", nil)
}
