package keluarga

import (
	"context"

	"simwarga/internal/warga"
)

// Store is the data-access gateway for keluarga records. Absence surfaces as
// sentinel.ErrNotFound. The id is generated by the store on insert.
type Store interface {
	List(ctx context.Context) ([]Keluarga, error)
	FindByID(ctx context.Context, id int64) (*Keluarga, error)
	Insert(ctx context.Context, k Keluarga) (*Keluarga, error)
	Update(ctx context.Context, k Keluarga) error
	Delete(ctx context.Context, id int64) error
}

// WargaDirectory is the read-only view of the warga store that enrichment
// needs: head resolution by NIK and member listing by household id.
type WargaDirectory interface {
	FindRef(ctx context.Context, nik string) (*warga.Ref, error)
	ListRefsByKeluarga(ctx context.Context, keluargaID int64) ([]warga.Ref, error)
}
