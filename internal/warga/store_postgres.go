package warga

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"simwarga/pkg/platform/sentinel"
)

// PostgresStore persists warga records in the warga table. Column names use
// the storage convention (nama_warga, keluarga_id); the API-facing camelCase
// names exist only on the model's JSON tags.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const wargaColumns = `nik, nama_warga, jenis_kelamin, status_domisili, status_hidup, keluarga_id`

func scanWarga(row interface{ Scan(...any) error }) (*Warga, error) {
	var w Warga
	var keluargaID sql.NullInt64
	if err := row.Scan(&w.NIK, &w.NamaWarga, &w.JenisKelamin, &w.StatusDomisili, &w.StatusHidup, &keluargaID); err != nil {
		return nil, err
	}
	if keluargaID.Valid {
		w.KeluargaID = &keluargaID.Int64
	}
	return &w, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Warga, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+wargaColumns+` FROM warga ORDER BY nik`)
	if err != nil {
		return nil, fmt.Errorf("list warga: %w", err)
	}
	defer rows.Close()

	out := make([]Warga, 0)
	for rows.Next() {
		w, err := scanWarga(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warga: %w", err)
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warga: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindByNIK(ctx context.Context, nik string) (*Warga, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wargaColumns+` FROM warga WHERE nik = $1`, nik)
	w, err := scanWarga(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find warga: %w", err)
	}
	return w, nil
}

func (s *PostgresStore) Insert(ctx context.Context, w Warga) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO warga (`+wargaColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		w.NIK, w.NamaWarga, w.JenisKelamin, w.StatusDomisili, w.StatusHidup, nullableID(w.KeluargaID),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert warga: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, w Warga) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE warga
		 SET nama_warga = $2, jenis_kelamin = $3, status_domisili = $4, status_hidup = $5, keluarga_id = $6
		 WHERE nik = $1`,
		w.NIK, w.NamaWarga, w.JenisKelamin, w.StatusDomisili, w.StatusHidup, nullableID(w.KeluargaID),
	)
	if err != nil {
		return fmt.Errorf("update warga: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update warga: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, nik string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM warga WHERE nik = $1`, nik)
	if err != nil {
		return fmt.Errorf("delete warga: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete warga: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindRef(ctx context.Context, nik string) (*Ref, error) {
	var ref Ref
	err := s.db.QueryRowContext(ctx, `SELECT nik, nama_warga FROM warga WHERE nik = $1`, nik).
		Scan(&ref.NIK, &ref.NamaWarga)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find warga ref: %w", err)
	}
	return &ref, nil
}

func (s *PostgresStore) ListRefsByKeluarga(ctx context.Context, keluargaID int64) ([]Ref, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT nik, nama_warga FROM warga WHERE keluarga_id = $1 ORDER BY nik`, keluargaID)
	if err != nil {
		return nil, fmt.Errorf("list warga refs: %w", err)
	}
	defer rows.Close()

	refs := make([]Ref, 0)
	for rows.Next() {
		var ref Ref
		if err := rows.Scan(&ref.NIK, &ref.NamaWarga); err != nil {
			return nil, fmt.Errorf("scan warga ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warga refs: %w", err)
	}
	return refs, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
