package keluarga

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"golang.org/x/sync/errgroup"

	"simwarga/internal/audit"
	"simwarga/internal/platform/metrics"
	"simwarga/internal/warga"
	"simwarga/pkg/domainerr"
	"simwarga/pkg/optional"
	"simwarga/pkg/platform/sentinel"
)

// Service validates keluarga records and performs read-time enrichment:
// resolving the head-of-household reference and the member list via the
// warga directory.
type Service struct {
	store       Store
	wargaDir    WargaDirectory
	auditor     *audit.Publisher
	metrics     *metrics.Metrics
	enrichLimit int
}

func NewService(store Store, wargaDir WargaDirectory, auditor *audit.Publisher, m *metrics.Metrics, enrichLimit int) *Service {
	if enrichLimit < 1 {
		enrichLimit = 8
	}
	return &Service{
		store:       store,
		wargaDir:    wargaDir,
		auditor:     auditor,
		metrics:     m,
		enrichLimit: enrichLimit,
	}
}

// List returns every keluarga, each enriched with its head and member
// residents. Enrichments across households run concurrently, bounded by the
// configured limit.
func (s *Service) List(ctx context.Context) ([]Enriched, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	enriched := make([]Enriched, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.enrichLimit)
	for i, record := range records {
		g.Go(func() error {
			e, err := s.enrich(gctx, record)
			if err != nil {
				return err
			}
			enriched[i] = *e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	return enriched, nil
}

// GetByID returns a single keluarga, enriched the same way as List.
func (s *Service) GetByID(ctx context.Context, id int64) (*Enriched, error) {
	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domainerr.New(domainerr.CodeNotFound, "Keluarga not found")
		}
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	enriched, err := s.enrich(ctx, *record)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}
	return enriched, nil
}

// enrich resolves the head and member list for one keluarga. The two lookups
// are independent reads keyed by value, so they run concurrently. A head
// reference that resolves to nothing yields a null head, not an error.
func (s *Service) enrich(ctx context.Context, record Keluarga) (*Enriched, error) {
	enriched := Enriched{Keluarga: record, Anggota: []warga.Ref{}}

	g, gctx := errgroup.WithContext(ctx)

	if record.KepalaKeluargaID != nil && *record.KepalaKeluargaID != "" {
		nik := *record.KepalaKeluargaID
		g.Go(func() error {
			if s.metrics != nil {
				s.metrics.EnrichmentLookups.Inc()
			}
			ref, err := s.wargaDir.FindRef(gctx, nik)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					return nil
				}
				return err
			}
			enriched.KepalaKeluarga = ref
			return nil
		})
	}

	g.Go(func() error {
		if s.metrics != nil {
			s.metrics.EnrichmentLookups.Inc()
		}
		refs, err := s.wargaDir.ListRefsByKeluarga(gctx, record.ID)
		if err != nil {
			return err
		}
		if refs != nil {
			enriched.Anggota = refs
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &enriched, nil
}

// Create validates the input and persists a new keluarga. The response is
// unenriched; the assigned id comes back from the store.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Keluarga, error) {
	if in.NamaKeluarga == "" || !in.JumlahAnggota.Present() {
		return nil, domainerr.New(domainerr.CodeBadRequest, "namaKeluarga and jumlahAnggota are required")
	}
	jumlah, err := parseJumlahAnggota(in.JumlahAnggota)
	if err != nil {
		return nil, err
	}

	record := Keluarga{
		NamaKeluarga:  in.NamaKeluarga,
		JumlahAnggota: jumlah,
	}
	if id, ok := in.RumahID.Get(); ok && id != 0 {
		record.RumahID = &id
	}
	if nik, ok := in.KepalaKeluargaID.Get(); ok && nik != "" {
		record.KepalaKeluargaID = &nik
	}

	created, err := s.store.Insert(ctx, record)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	if s.metrics != nil {
		s.metrics.KeluargaCreated.Inc()
	}
	s.auditor.Record(ctx, audit.ActionKeluargaCreated, strconv.FormatInt(created.ID, 10), created.NamaKeluarga)

	return created, nil
}

// Update applies a partial update. jumlahAnggota, when supplied, is
// revalidated before anything is written.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Keluarga, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domainerr.New(domainerr.CodeNotFound, "Keluarga not found")
		}
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	record := *existing
	if v, ok := in.NamaKeluarga.Get(); ok && v != "" {
		record.NamaKeluarga = v
	}
	if in.JumlahAnggota.Present() {
		jumlah, err := parseJumlahAnggota(in.JumlahAnggota)
		if err != nil {
			return nil, err
		}
		record.JumlahAnggota = jumlah
	}
	if in.RumahID.Present() {
		if v, ok := in.RumahID.Get(); ok && v != 0 {
			record.RumahID = &v
		} else {
			record.RumahID = nil
		}
	}
	if in.KepalaKeluargaID.Present() {
		if v, ok := in.KepalaKeluargaID.Get(); ok && v != "" {
			record.KepalaKeluargaID = &v
		} else {
			record.KepalaKeluargaID = nil
		}
	}

	if err := s.store.Update(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domainerr.New(domainerr.CodeNotFound, "Keluarga not found")
		}
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	s.auditor.Record(ctx, audit.ActionKeluargaUpdated, strconv.FormatInt(record.ID, 10), record.NamaKeluarga)

	return &record, nil
}

// Delete removes the keluarga. Member residents are not touched; their
// keluarga references become dangling, matching the system's long-standing
// behavior.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domainerr.New(domainerr.CodeNotFound, "Keluarga not found")
		}
		return domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	s.auditor.Record(ctx, audit.ActionKeluargaDeleted, strconv.FormatInt(id, 10), "")

	return nil
}

func parseJumlahAnggota(field optional.Optional[json.Number]) (int, error) {
	num, ok := field.Get()
	if !ok {
		return 0, domainerr.New(domainerr.CodeBadRequest, "jumlahAnggota must be a positive number")
	}
	n, err := num.Int64()
	if err != nil || n < 1 {
		return 0, domainerr.New(domainerr.CodeBadRequest, "jumlahAnggota must be a positive number")
	}
	return int(n), nil
}
