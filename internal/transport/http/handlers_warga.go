package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"simwarga/internal/warga"
	"simwarga/pkg/domainerr"
)

// WargaService defines the interface for warga operations.
type WargaService interface {
	List(ctx context.Context) ([]warga.Warga, error)
	GetByNIK(ctx context.Context, nik string) (*warga.Warga, error)
	Create(ctx context.Context, in warga.CreateInput) (*warga.Warga, error)
	Update(ctx context.Context, nik string, in warga.UpdateInput) (*warga.Warga, error)
	Delete(ctx context.Context, nik string) error
}

// WargaHandler handles warga endpoints.
type WargaHandler struct {
	service WargaService
	logger  *slog.Logger
}

func NewWargaHandler(service WargaService, logger *slog.Logger) *WargaHandler {
	return &WargaHandler{service: service, logger: logger}
}

func (h *WargaHandler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Warga retrieved successfully", records)
}

func (h *WargaHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	nik := chi.URLParam(r, "nik")
	record, err := h.service.GetByNIK(r.Context(), nik)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Warga retrieved successfully", record)
}

func (h *WargaHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in warga.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, h.logger, r, domainerr.New(domainerr.CodeBadRequest, "invalid request body"))
		return
	}

	record, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Warga created successfully", record)
}

func (h *WargaHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	nik := chi.URLParam(r, "nik")

	var in warga.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, h.logger, r, domainerr.New(domainerr.CodeBadRequest, "invalid request body"))
		return
	}

	record, err := h.service.Update(r.Context(), nik, in)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Warga updated successfully", record)
}

func (h *WargaHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	nik := chi.URLParam(r, "nik")
	if err := h.service.Delete(r.Context(), nik); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Warga deleted successfully", nil)
}
