package warga

import "context"

// Store is the data-access gateway for warga records. It translates between
// API field names and storage column names, and reports absence through
// sentinel.ErrNotFound instead of driver-specific errors. Duplicate NIKs on
// insert surface as sentinel.ErrConflict.
type Store interface {
	List(ctx context.Context) ([]Warga, error)
	FindByNIK(ctx context.Context, nik string) (*Warga, error)
	Insert(ctx context.Context, w Warga) error
	Update(ctx context.Context, w Warga) error
	Delete(ctx context.Context, nik string) error

	// FindRef and ListRefsByKeluarga back keluarga enrichment with the
	// restricted nik+namaWarga view.
	FindRef(ctx context.Context, nik string) (*Ref, error)
	ListRefsByKeluarga(ctx context.Context, keluargaID int64) ([]Ref, error)
}
