package formsession

// Form declares one form variant: its API path segment, page count, the
// anchor field that gates draft saves, and every field in declared order.
type Form struct {
	Type   string
	Pages  int
	Anchor string
	Fields []FieldSpec
}

func (f Form) Spec(key string) (FieldSpec, bool) {
	for _, fs := range f.Fields {
		if fs.Key == key {
			return fs, true
		}
	}
	return FieldSpec{}, false
}

// PageFields returns the declared fields of one page, in order.
func (f Form) PageFields(page int) []FieldSpec {
	out := make([]FieldSpec, 0, len(f.Fields))
	for _, fs := range f.Fields {
		if fs.Page == page {
			out = append(out, fs)
		}
	}
	return out
}

// RegionOptions is the app's enumerated region list. Unknown keys are still
// accepted by the lookup cache; this list only feeds the picker.
var RegionOptions = []Option{
	{Label: "Jabodetabek", Value: "jabodetabek"},
	{Label: "Jawa Barat", Value: "jawa_barat"},
	{Label: "Jawa Tengah", Value: "jawa_tengah"},
	{Label: "Jawa Timur", Value: "jawa_timur"},
	{Label: "Sumatera", Value: "sumatera"},
	{Label: "Kalimantan", Value: "kalimantan"},
	{Label: "Sulawesi", Value: "sulawesi"},
	{Label: "Indonesia Timur", Value: "indonesia_timur"},
}

var visitPurposeOptions = []Option{
	{Label: "Perkenalan produk", Value: "perkenalan_produk"},
	{Label: "Demo alat", Value: "demo_alat"},
	{Label: "Follow up penawaran", Value: "follow_up"},
	{Label: "Penagihan", Value: "penagihan"},
	{Label: "Maintenance rutin", Value: "maintenance"},
}

var workTypeOptions = []Option{
	{Label: "Instalasi", Value: "instalasi"},
	{Label: "Perbaikan", Value: "perbaikan"},
	{Label: "Kalibrasi", Value: "kalibrasi"},
	{Label: "Penggantian sparepart", Value: "ganti_sparepart"},
	{Label: "Training pengguna", Value: "training"},
}

var deviceStatusOptions = []Option{
	{Label: "Normal", Value: "normal"},
	{Label: "Perlu sparepart", Value: "perlu_sparepart"},
	{Label: "Rusak", Value: "rusak"},
}

// SalesVisit is the three-page sales visit report.
func SalesVisit() Form {
	return Form{
		Type:   "sales-visit",
		Pages:  3,
		Anchor: "nama_sales",
		Fields: []FieldSpec{
			{Key: "nama_sales", Label: "Nama Sales", Kind: KindText, Page: 1, Required: true},
			{Key: "tanggal_kunjungan", Label: "Tanggal Kunjungan", Kind: KindDate, Page: 1, Required: true},
			{Key: "region", Label: "Region", Kind: KindSingleSelect, Page: 1, Options: RegionOptions, Required: true},
			{Key: "rumah_sakit", Label: "Rumah Sakit", Kind: KindSingleSelect, Page: 1, Required: true},
			{Key: "alamat_rumah_sakit", Label: "Alamat Rumah Sakit", Kind: KindReadOnly, Page: 1},
			{Key: "koordinat_lokasi", Label: "Koordinat Lokasi", Kind: KindCoordinate, Page: 1, Required: true},

			{Key: "tujuan_kunjungan", Label: "Tujuan Kunjungan", Kind: KindMultiSelect, Page: 2, Options: visitPurposeOptions, Required: true},
			{Key: "produk_dibahas", Label: "Produk yang Dibahas", Kind: KindText, Page: 2},
			{Key: "kompetitor", Label: "Kompetitor", Kind: KindText, Page: 2},

			{Key: "hasil_kunjungan", Label: "Hasil Kunjungan", Kind: KindText, Page: 3, Required: true},
			{Key: "catatan", Label: "Catatan", Kind: KindText, Page: 3},
			{Key: "foto_kunjungan", Label: "Foto Kunjungan", Kind: KindImage, Page: 3},
		},
	}
}

// TechnicianReport is the four-page technician activity/service report.
func TechnicianReport() Form {
	return Form{
		Type:   "technician-report",
		Pages:  4,
		Anchor: "nama_teknisi",
		Fields: []FieldSpec{
			{Key: "nama_teknisi", Label: "Nama Teknisi", Kind: KindText, Page: 1, Required: true},
			{Key: "tanggal_service", Label: "Tanggal Service", Kind: KindDate, Page: 1, Required: true},
			{Key: "region", Label: "Region", Kind: KindSingleSelect, Page: 1, Options: RegionOptions, Required: true},
			{Key: "rumah_sakit", Label: "Rumah Sakit", Kind: KindSingleSelect, Page: 1, Required: true},
			{Key: "koordinat_lokasi", Label: "Koordinat Lokasi", Kind: KindCoordinate, Page: 1, Required: true},

			{Key: "serial_number", Label: "Serial Number", Kind: KindText, Page: 2, Required: true},
			{Key: "nama_produk", Label: "Nama Produk", Kind: KindText, Page: 2, Required: true},
			{Key: "tipe_produk", Label: "Tipe Produk", Kind: KindText, Page: 2},
			{Key: "merek_produk", Label: "Merek Produk", Kind: KindText, Page: 2},

			{Key: "jenis_pekerjaan", Label: "Jenis Pekerjaan", Kind: KindMultiSelect, Page: 3, Options: workTypeOptions, Required: true},
			{Key: "keluhan", Label: "Keluhan", Kind: KindText, Page: 3},
			{Key: "tindakan", Label: "Tindakan", Kind: KindText, Page: 3, Required: true},

			{Key: "status_alat", Label: "Status Alat", Kind: KindSingleSelect, Page: 4, Options: deviceStatusOptions, Required: true},
			{Key: "catatan", Label: "Catatan", Kind: KindText, Page: 4},
			{Key: "foto_sebelum", Label: "Foto Sebelum", Kind: KindImage, Page: 4},
			{Key: "foto_sesudah", Label: "Foto Sesudah", Kind: KindImage, Page: 4},
		},
	}
}
