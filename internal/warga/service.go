package warga

import (
	"context"
	"errors"

	"github.com/asaskevich/govalidator"

	"simwarga/internal/audit"
	"simwarga/internal/platform/metrics"
	"simwarga/pkg/domainerr"
	"simwarga/pkg/platform/sentinel"
)

// Service validates and normalizes warga records. It holds no state of its
// own; every request is self-contained against the store.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
}

func NewService(store Store, auditor *audit.Publisher, m *metrics.Metrics) *Service {
	return &Service{store: store, auditor: auditor, metrics: m}
}

// List returns every warga record as stored, without enrichment.
func (s *Service) List(ctx context.Context) ([]Warga, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}
	return records, nil
}

// GetByNIK returns the warga for the given NIK. The key is used verbatim; no
// format validation happens on reads.
func (s *Service) GetByNIK(ctx context.Context, nik string) (*Warga, error) {
	w, err := s.store.FindByNIK(ctx, nik)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domainerr.New(domainerr.CodeNotFound, "Warga not found")
		}
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}
	return w, nil
}

// Create validates the input, rejects duplicate NIKs, and persists the
// record. The keluarga reference is stored only when the caller supplied a
// non-zero value.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Warga, error) {
	if in.NIK == "" || in.NamaWarga == "" || in.JenisKelamin == "" || in.StatusDomisili == "" || in.StatusHidup == "" {
		return nil, domainerr.New(domainerr.CodeBadRequest,
			"nik, namaWarga, jenisKelamin, statusDomisili, and statusHidup are required")
	}
	if len(in.NIK) != 16 || !govalidator.IsNumeric(in.NIK) {
		return nil, domainerr.New(domainerr.CodeBadRequest, "nik must be 16 digits")
	}
	if in.JenisKelamin != JenisKelaminLakiLaki && in.JenisKelamin != JenisKelaminPerempuan {
		return nil, domainerr.New(domainerr.CodeBadRequest,
			"jenisKelamin must be either Laki-laki or Perempuan")
	}

	// Uniqueness pre-check. Racy under concurrent creates; the primary key on
	// nik in the store is the final arbiter and also maps to a conflict.
	if _, err := s.store.FindByNIK(ctx, in.NIK); err == nil {
		return nil, domainerr.New(domainerr.CodeConflict, "NIK already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	record := Warga{
		NIK:            in.NIK,
		NamaWarga:      in.NamaWarga,
		JenisKelamin:   in.JenisKelamin,
		StatusDomisili: in.StatusDomisili,
		StatusHidup:    in.StatusHidup,
	}
	if id, ok := in.KeluargaID.Get(); ok && id != 0 {
		record.KeluargaID = &id
	}

	if err := s.store.Insert(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, domainerr.New(domainerr.CodeConflict, "NIK already exists")
		}
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	if s.metrics != nil {
		s.metrics.WargaCreated.Inc()
	}
	s.auditor.Record(ctx, audit.ActionWargaCreated, record.NIK, record.NamaWarga)

	return &record, nil
}

// Update applies a partial update. Only fields present in the input change;
// validation completes before any write, so an invalid jenisKelamin aborts
// the whole update.
func (s *Service) Update(ctx context.Context, nik string, in UpdateInput) (*Warga, error) {
	existing, err := s.store.FindByNIK(ctx, nik)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domainerr.New(domainerr.CodeNotFound, "Warga not found")
		}
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	record := *existing
	if v, ok := in.NamaWarga.Get(); ok && v != "" {
		record.NamaWarga = v
	}
	if v, ok := in.JenisKelamin.Get(); ok && v != "" {
		if v != JenisKelaminLakiLaki && v != JenisKelaminPerempuan {
			return nil, domainerr.New(domainerr.CodeBadRequest,
				"jenisKelamin must be either Laki-laki or Perempuan")
		}
		record.JenisKelamin = v
	}
	if v, ok := in.StatusDomisili.Get(); ok && v != "" {
		record.StatusDomisili = v
	}
	if v, ok := in.StatusHidup.Get(); ok && v != "" {
		record.StatusHidup = v
	}
	if in.KeluargaID.Present() {
		// Explicit null or zero detaches the resident from their household;
		// an absent key leaves the reference untouched.
		if id, ok := in.KeluargaID.Get(); ok && id != 0 {
			record.KeluargaID = &id
		} else {
			record.KeluargaID = nil
		}
	}

	if err := s.store.Update(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domainerr.New(domainerr.CodeNotFound, "Warga not found")
		}
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	s.auditor.Record(ctx, audit.ActionWargaUpdated, record.NIK, record.NamaWarga)

	return &record, nil
}

// Delete removes the record for the given NIK.
func (s *Service) Delete(ctx context.Context, nik string) error {
	if err := s.store.Delete(ctx, nik); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domainerr.New(domainerr.CodeNotFound, "Warga not found")
		}
		return domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	s.auditor.Record(ctx, audit.ActionWargaDeleted, nik, "")

	return nil
}
