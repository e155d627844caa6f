package keluarga

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simwarga/internal/audit"
	"simwarga/internal/warga"
	"simwarga/pkg/domainerr"
	"simwarga/pkg/optional"
)

func newTestService(t *testing.T) (*Service, *InMemoryStore, *warga.InMemoryStore) {
	t.Helper()
	store := NewInMemoryStore()
	wargaStore := warga.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditor := audit.NewPublisher(audit.NewInMemoryStore(), logger)
	return NewService(store, wargaStore, auditor, nil, 4), store, wargaStore
}

func addWarga(t *testing.T, store *warga.InMemoryStore, nik, nama string, keluargaID *int64) {
	t.Helper()
	require.NoError(t, store.Insert(context.Background(), warga.Warga{
		NIK:            nik,
		NamaWarga:      nama,
		JenisKelamin:   warga.JenisKelaminPerempuan,
		StatusDomisili: "Tetap",
		StatusHidup:    "Hidup",
		KeluargaID:     keluargaID,
	}))
}

func TestCreate_RequiredFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{JumlahAnggota: optional.Of(json.Number("3"))})
	require.Error(t, err)
	assert.True(t, domainerr.Is(err, domainerr.CodeBadRequest))

	_, err = svc.Create(ctx, CreateInput{NamaKeluarga: "Keluarga Ani"})
	require.Error(t, err)
	assert.Equal(t, "namaKeluarga and jumlahAnggota are required", err.Error())
}

func TestCreate_JumlahAnggotaValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, raw := range []string{"0", "-1", "abc"} {
		t.Run(raw, func(t *testing.T) {
			_, err := svc.Create(ctx, CreateInput{
				NamaKeluarga:  "Keluarga Ani",
				JumlahAnggota: optional.Of(json.Number(raw)),
			})
			require.Error(t, err)
			assert.True(t, domainerr.Is(err, domainerr.CodeBadRequest))
			assert.Equal(t, "jumlahAnggota must be a positive number", err.Error())
		})
	}

	// Numeric strings are accepted, as the API always has.
	created, err := svc.Create(ctx, CreateInput{
		NamaKeluarga:  "Keluarga Ani",
		JumlahAnggota: optional.Of(json.Number("3")),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.JumlahAnggota)
	assert.NotZero(t, created.ID)
	assert.Nil(t, created.RumahID)
	assert.Nil(t, created.KepalaKeluargaID)
}

func TestCreate_OptionalReferences(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		NamaKeluarga:     "Keluarga Budi",
		JumlahAnggota:    optional.Of(json.Number("2")),
		RumahID:          optional.Of[int64](11),
		KepalaKeluargaID: optional.Of("1234567890123456"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.RumahID)
	assert.Equal(t, int64(11), *created.RumahID)
	require.NotNil(t, created.KepalaKeluargaID)
	assert.Equal(t, "1234567890123456", *created.KepalaKeluargaID)
}

func TestUpdate_RevalidatesJumlahAnggota(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		NamaKeluarga:  "Keluarga Ani",
		JumlahAnggota: optional.Of(json.Number("3")),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, UpdateInput{
		JumlahAnggota: optional.Of(json.Number("0")),
	})
	require.Error(t, err)
	assert.True(t, domainerr.Is(err, domainerr.CodeBadRequest))

	// Original value unchanged.
	got, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.JumlahAnggota)
}

func TestUpdate_ClearsReferencesOnExplicitNull(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		NamaKeluarga:     "Keluarga Ani",
		JumlahAnggota:    optional.Of(json.Number("3")),
		RumahID:          optional.Of[int64](11),
		KepalaKeluargaID: optional.Of("1234567890123456"),
	})
	require.NoError(t, err)

	// Absent fields leave both references untouched.
	updated, err := svc.Update(ctx, created.ID, UpdateInput{
		NamaKeluarga: optional.Of("Keluarga Ani Baru"),
	})
	require.NoError(t, err)
	assert.NotNil(t, updated.RumahID)
	assert.NotNil(t, updated.KepalaKeluargaID)

	updated, err = svc.Update(ctx, created.ID, UpdateInput{
		RumahID:          optional.Null[int64](),
		KepalaKeluargaID: optional.Null[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.RumahID)
	assert.Nil(t, updated.KepalaKeluargaID)
	assert.Equal(t, "Keluarga Ani Baru", updated.NamaKeluarga)
}

func TestOperations_UnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 404)
	assert.True(t, domainerr.Is(err, domainerr.CodeNotFound))

	_, err = svc.Update(ctx, 404, UpdateInput{NamaKeluarga: optional.Of("x")})
	assert.True(t, domainerr.Is(err, domainerr.CodeNotFound))

	err = svc.Delete(ctx, 404)
	assert.True(t, domainerr.Is(err, domainerr.CodeNotFound))
}

func TestEnrichment_NoHeadNoMembers(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		NamaKeluarga:  "Keluarga Kosong",
		JumlahAnggota: optional.Of(json.Number("1")),
	})
	require.NoError(t, err)

	enriched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, enriched.KepalaKeluarga)
	assert.NotNil(t, enriched.Anggota)
	assert.Empty(t, enriched.Anggota)
}

func TestEnrichment_DanglingHeadYieldsNull(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		NamaKeluarga:     "Keluarga Ani",
		JumlahAnggota:    optional.Of(json.Number("1")),
		KepalaKeluargaID: optional.Of("9999999999999999"),
	})
	require.NoError(t, err)

	enriched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, enriched.KepalaKeluarga, "unresolvable head is null, not an error")
}

func TestEnrichment_HeadAndMembersResolved(t *testing.T) {
	svc, _, wargaStore := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		NamaKeluarga:     "Keluarga Ani",
		JumlahAnggota:    optional.Of(json.Number("3")),
		KepalaKeluargaID: optional.Of("1111111111111111"),
	})
	require.NoError(t, err)

	addWarga(t, wargaStore, "1111111111111111", "Ani", &created.ID)
	addWarga(t, wargaStore, "2222222222222222", "Budi", &created.ID)
	addWarga(t, wargaStore, "3333333333333333", "Citra", nil)

	enriched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)

	require.NotNil(t, enriched.KepalaKeluarga)
	assert.Equal(t, "Ani", enriched.KepalaKeluarga.NamaWarga)

	require.Len(t, enriched.Anggota, 2)
	niks := []string{enriched.Anggota[0].NIK, enriched.Anggota[1].NIK}
	assert.ElementsMatch(t, []string{"1111111111111111", "2222222222222222"}, niks)
}

func TestList_EnrichesEveryHousehold(t *testing.T) {
	svc, _, wargaStore := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateInput{
		NamaKeluarga:     "Keluarga Ani",
		JumlahAnggota:    optional.Of(json.Number("2")),
		KepalaKeluargaID: optional.Of("1111111111111111"),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{
		NamaKeluarga:  "Keluarga Budi",
		JumlahAnggota: optional.Of(json.Number("1")),
	})
	require.NoError(t, err)

	addWarga(t, wargaStore, "1111111111111111", "Ani", &first.ID)

	enriched, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, enriched, 2)

	assert.NotNil(t, enriched[0].KepalaKeluarga)
	assert.Len(t, enriched[0].Anggota, 1)
	assert.Nil(t, enriched[1].KepalaKeluarga)
	assert.Empty(t, enriched[1].Anggota)
}

func TestDelete_DoesNotCascadeToResidents(t *testing.T) {
	svc, _, wargaStore := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		NamaKeluarga:  "Keluarga Ani",
		JumlahAnggota: optional.Of(json.Number("1")),
	})
	require.NoError(t, err)
	addWarga(t, wargaStore, "1111111111111111", "Ani", &created.ID)

	require.NoError(t, svc.Delete(ctx, created.ID))

	// The resident keeps its now-dangling reference.
	got, err := wargaStore.FindByNIK(ctx, "1111111111111111")
	require.NoError(t, err)
	require.NotNil(t, got.KeluargaID)
	assert.Equal(t, created.ID, *got.KeluargaID)
}
