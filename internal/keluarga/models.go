package keluarga

import (
	"encoding/json"

	"simwarga/internal/warga"
	"simwarga/pkg/optional"
)

// Keluarga is a household record. RumahID and KepalaKeluargaID are optional
// references: a dwelling and the NIK of the resident who heads the
// household. Neither is enforced transactionally; head resolution is a
// best-effort read-time lookup.
type Keluarga struct {
	ID               int64   `json:"id"`
	NamaKeluarga     string  `json:"namaKeluarga"`
	JumlahAnggota    int     `json:"jumlahAnggota"`
	RumahID          *int64  `json:"rumahId"`
	KepalaKeluargaID *string `json:"kepalaKeluargaId"`
}

// Enriched is a keluarga with its head and member residents resolved via
// auxiliary lookups. Anggota is never nil; a household with no members
// serializes as an empty array, and an unresolvable head as null.
type Enriched struct {
	Keluarga
	KepalaKeluarga *warga.Ref  `json:"kepalaKeluarga"`
	Anggota        []warga.Ref `json:"anggota"`
}

// CreateInput is the request body for creating a keluarga. JumlahAnggota is
// a json.Number so both 3 and "3" are accepted, as the API has always done.
type CreateInput struct {
	NamaKeluarga     string                         `json:"namaKeluarga"`
	JumlahAnggota    optional.Optional[json.Number] `json:"jumlahAnggota"`
	RumahID          optional.Optional[int64]       `json:"rumahId"`
	KepalaKeluargaID optional.Optional[string]      `json:"kepalaKeluargaId"`
}

// UpdateInput is the request body for a partial update. Absent fields leave
// stored values untouched; rumahId and kepalaKeluargaId explicitly null (or
// zero/empty) clear the reference.
type UpdateInput struct {
	NamaKeluarga     optional.Optional[string]      `json:"namaKeluarga"`
	JumlahAnggota    optional.Optional[json.Number] `json:"jumlahAnggota"`
	RumahID          optional.Optional[int64]       `json:"rumahId"`
	KepalaKeluargaID optional.Optional[string]      `json:"kepalaKeluargaId"`
}
