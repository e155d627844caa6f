//go:build integration

package warga_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"simwarga/internal/platform/postgres"
	"simwarga/internal/warga"
	"simwarga/pkg/platform/sentinel"
	"simwarga/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *warga.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.Migrate(context.Background(), s.postgres.DB))
	s.store = warga.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	_ = s.postgres.DB.Close()
	_ = s.postgres.Container.Terminate(context.Background())
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "warga", "keluarga"))
}

func testWarga(nik string) warga.Warga {
	return warga.Warga{
		NIK:            nik,
		NamaWarga:      "Ani",
		JenisKelamin:   warga.JenisKelaminPerempuan,
		StatusDomisili: "Tetap",
		StatusHidup:    "Hidup",
	}
}

func (s *PostgresStoreSuite) TestInsertAndFind() {
	ctx := context.Background()

	s.Require().NoError(s.store.Insert(ctx, testWarga("1234567890123456")))

	got, err := s.store.FindByNIK(ctx, "1234567890123456")
	s.Require().NoError(err)
	s.Equal("Ani", got.NamaWarga)
	s.Nil(got.KeluargaID)
}

func (s *PostgresStoreSuite) TestDuplicateNIKIsConflict() {
	ctx := context.Background()

	s.Require().NoError(s.store.Insert(ctx, testWarga("1234567890123456")))
	err := s.store.Insert(ctx, testWarga("1234567890123456"))
	s.True(errors.Is(err, sentinel.ErrConflict))
}

func (s *PostgresStoreSuite) TestUpdateAndDelete() {
	ctx := context.Background()

	record := testWarga("1234567890123456")
	s.Require().NoError(s.store.Insert(ctx, record))

	record.NamaWarga = "Ani Baru"
	s.Require().NoError(s.store.Update(ctx, record))

	got, err := s.store.FindByNIK(ctx, record.NIK)
	s.Require().NoError(err)
	s.Equal("Ani Baru", got.NamaWarga)

	s.Require().NoError(s.store.Delete(ctx, record.NIK))
	_, err = s.store.FindByNIK(ctx, record.NIK)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *PostgresStoreSuite) TestUnknownNIKIsNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByNIK(ctx, "0000000000000000")
	s.True(errors.Is(err, sentinel.ErrNotFound))

	s.True(errors.Is(s.store.Update(ctx, testWarga("0000000000000000")), sentinel.ErrNotFound))
	s.True(errors.Is(s.store.Delete(ctx, "0000000000000000"), sentinel.ErrNotFound))
}

func (s *PostgresStoreSuite) TestRefLookups() {
	ctx := context.Background()

	keluargaID := int64(1)
	member := testWarga("1111111111111111")
	member.KeluargaID = &keluargaID
	s.Require().NoError(s.store.Insert(ctx, member))

	other := testWarga("2222222222222222")
	other.NamaWarga = "Budi"
	s.Require().NoError(s.store.Insert(ctx, other))

	ref, err := s.store.FindRef(ctx, "1111111111111111")
	s.Require().NoError(err)
	s.Equal("Ani", ref.NamaWarga)

	refs, err := s.store.ListRefsByKeluarga(ctx, keluargaID)
	s.Require().NoError(err)
	s.Require().Len(refs, 1)
	s.Equal("1111111111111111", refs[0].NIK)
}
