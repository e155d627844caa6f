package keluarga

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"simwarga/pkg/platform/sentinel"
)

// PostgresStore persists keluarga records in the keluarga table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const keluargaColumns = `id, nama_keluarga, jumlah_anggota, rumah_id, kepala_keluarga_id`

func scanKeluarga(row interface{ Scan(...any) error }) (*Keluarga, error) {
	var k Keluarga
	var rumahID sql.NullInt64
	var kepalaID sql.NullString
	if err := row.Scan(&k.ID, &k.NamaKeluarga, &k.JumlahAnggota, &rumahID, &kepalaID); err != nil {
		return nil, err
	}
	if rumahID.Valid {
		k.RumahID = &rumahID.Int64
	}
	if kepalaID.Valid {
		k.KepalaKeluargaID = &kepalaID.String
	}
	return &k, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Keluarga, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+keluargaColumns+` FROM keluarga ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list keluarga: %w", err)
	}
	defer rows.Close()

	out := make([]Keluarga, 0)
	for rows.Next() {
		k, err := scanKeluarga(rows)
		if err != nil {
			return nil, fmt.Errorf("scan keluarga: %w", err)
		}
		out = append(out, *k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list keluarga: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Keluarga, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+keluargaColumns+` FROM keluarga WHERE id = $1`, id)
	k, err := scanKeluarga(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find keluarga: %w", err)
	}
	return k, nil
}

func (s *PostgresStore) Insert(ctx context.Context, k Keluarga) (*Keluarga, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO keluarga (nama_keluarga, jumlah_anggota, rumah_id, kepala_keluarga_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		k.NamaKeluarga, k.JumlahAnggota, nullableInt(k.RumahID), nullableString(k.KepalaKeluargaID),
	).Scan(&k.ID)
	if err != nil {
		return nil, fmt.Errorf("insert keluarga: %w", err)
	}
	return &k, nil
}

func (s *PostgresStore) Update(ctx context.Context, k Keluarga) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE keluarga
		 SET nama_keluarga = $2, jumlah_anggota = $3, rumah_id = $4, kepala_keluarga_id = $5
		 WHERE id = $1`,
		k.ID, k.NamaKeluarga, k.JumlahAnggota, nullableInt(k.RumahID), nullableString(k.KepalaKeluargaID),
	)
	if err != nil {
		return fmt.Errorf("update keluarga: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update keluarga: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM keluarga WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete keluarga: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete keluarga: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullableInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullableString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
