package warga

import "simwarga/pkg/optional"

// Recognized jenisKelamin values.
const (
	JenisKelaminLakiLaki  = "Laki-laki"
	JenisKelaminPerempuan = "Perempuan"
)

// Warga is a resident record keyed by NIK, the 16-digit national identity
// number. KeluargaID is nil for residents not attached to a household.
type Warga struct {
	NIK            string `json:"nik"`
	NamaWarga      string `json:"namaWarga"`
	JenisKelamin   string `json:"jenisKelamin"`
	StatusDomisili string `json:"statusDomisili"`
	StatusHidup    string `json:"statusHidup"`
	KeluargaID     *int64 `json:"keluargaId"`
}

// Ref is the restricted view used when a warga appears inside a keluarga
// response (household head or member list).
type Ref struct {
	NIK       string `json:"nik"`
	NamaWarga string `json:"namaWarga"`
}

// CreateInput is the request body for creating a warga.
type CreateInput struct {
	NIK            string                   `json:"nik"`
	NamaWarga      string                   `json:"namaWarga"`
	JenisKelamin   string                   `json:"jenisKelamin"`
	StatusDomisili string                   `json:"statusDomisili"`
	StatusHidup    string                   `json:"statusHidup"`
	KeluargaID     optional.Optional[int64] `json:"keluargaId"`
}

// UpdateInput is the request body for a partial update. Fields absent from
// the JSON document leave the stored value untouched; keluargaId explicitly
// null (or zero) detaches the resident from their household.
type UpdateInput struct {
	NamaWarga      optional.Optional[string] `json:"namaWarga"`
	JenisKelamin   optional.Optional[string] `json:"jenisKelamin"`
	StatusDomisili optional.Optional[string] `json:"statusDomisili"`
	StatusHidup    optional.Optional[string] `json:"statusHidup"`
	KeluargaID     optional.Optional[int64]  `json:"keluargaId"`
}
