package formsession

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type mockUploader struct {
	mu     sync.Mutex
	calls  []string
	failOn map[string]error
}

func (m *mockUploader) UploadImage(_ context.Context, img Image) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, img.Filename)
	m.mu.Unlock()

	if m.failOn != nil {
		if err, ok := m.failOn[img.Filename]; ok {
			return "", err
		}
	}
	return "stored_" + img.Filename, nil
}

type mockSubmitter struct {
	payloads []Payload
	err      error
}

func (m *mockSubmitter) SubmitForm(_ context.Context, p Payload) error {
	m.payloads = append(m.payloads, p)
	return m.err
}

type mockProducts struct {
	bySerial map[string]*Product
	err      error
	lookups  []string
}

func (m *mockProducts) ProductBySerial(_ context.Context, serial string) (*Product, error) {
	m.lookups = append(m.lookups, serial)
	if m.err != nil {
		return nil, m.err
	}
	return m.bySerial[serial], nil
}

type fakeStore map[string]string

func (f fakeStore) Get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

func newSalesSession(sub *mockSubmitter, up *mockUploader) *Session {
	return New(SalesVisit(), Deps{
		Uploader:  up,
		Submitter: sub,
		Store:     fakeStore{"user_id": "42"},
	})
}

func fillSalesRequired(s *Session) {
	s.SetField("nama_sales", Text("Budi"))
	s.SetField("tanggal_kunjungan", Date(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))
	s.SetField("region", Selection{Value: "jabodetabek", Label: "Jabodetabek"})
	s.SetField("rumah_sakit", Selection{Value: "12", Label: "RS Harapan"})
	s.SetField("koordinat_lokasi", Coordinate{Latitude: -6.2, Longitude: 106.8})
	s.SetField("tujuan_kunjungan", MultiSelect{Checked: []string{"demo_alat"}})
	s.SetField("hasil_kunjungan", Text("deal"))
}

func toLastPage(s *Session) {
	for s.Page() < s.PageCount() {
		s.GoNext()
	}
}

func TestSession_PageBounds(t *testing.T) {
	s := newSalesSession(&mockSubmitter{}, &mockUploader{})

	s.GoBack()
	if s.Page() != 1 {
		t.Fatalf("GoBack on first page must be a no-op, got page %d", s.Page())
	}

	toLastPage(s)
	if s.Page() != 3 {
		t.Fatalf("expected last page 3, got %d", s.Page())
	}

	s.GoNext()
	if s.Page() != 3 {
		t.Fatalf("GoNext on last page must be a no-op, got page %d", s.Page())
	}

	s.GoBack()
	if s.Page() != 2 {
		t.Fatalf("expected page 2, got %d", s.Page())
	}
}

func TestSession_SaveDraft_MissingAnchor(t *testing.T) {
	sub := &mockSubmitter{}
	s := newSalesSession(sub, &mockUploader{})

	err := s.SaveDraft(context.Background())

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Missing) != 1 || verr.Missing[0] != "Nama Sales" {
		t.Fatalf("unexpected missing labels: %v", verr.Missing)
	}
	if len(sub.payloads) != 0 {
		t.Fatalf("submitter must not be called on validation failure")
	}
}

func TestSession_SaveDraft_OnlyAnchorRequired(t *testing.T) {
	sub := &mockSubmitter{}
	s := newSalesSession(sub, &mockUploader{})
	s.SetField("nama_sales", Text("Budi"))

	if err := s.SaveDraft(context.Background()); err != nil {
		t.Fatalf("expected draft to save, got %v", err)
	}

	if len(sub.payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(sub.payloads))
	}
	p := sub.payloads[0]
	if p.Status != StatusDraft || p.Fields["status"] != StatusDraft {
		t.Fatalf("expected draft status, got %+v", p)
	}
	if p.Fields["user_id"] != "42" {
		t.Fatalf("expected user_id stamped from store, got %q", p.Fields["user_id"])
	}
}

func TestSession_SubmitFinal_NotLastPage(t *testing.T) {
	sub := &mockSubmitter{}
	s := newSalesSession(sub, &mockUploader{})
	fillSalesRequired(s)

	if err := s.SubmitFinal(context.Background()); !errors.Is(err, ErrNotLastPage) {
		t.Fatalf("expected ErrNotLastPage, got %v", err)
	}
	if len(sub.payloads) != 0 {
		t.Fatalf("submitter must not be called")
	}
}

func TestSession_SubmitFinal_AggregatesAllMissingFields(t *testing.T) {
	sub := &mockSubmitter{}
	s := newSalesSession(sub, &mockUploader{})
	fillSalesRequired(s)
	s.SetField("region", Selection{})
	s.SetField("tujuan_kunjungan", MultiSelect{})
	s.SetField("hasil_kunjungan", Text("   "))
	toLastPage(s)

	err := s.SubmitFinal(context.Background())

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"Region", "Tujuan Kunjungan", "Hasil Kunjungan"}
	if len(verr.Missing) != len(want) {
		t.Fatalf("expected %d missing labels, got %v", len(want), verr.Missing)
	}
	for i, label := range want {
		if verr.Missing[i] != label {
			t.Fatalf("missing[%d]=%q want %q (all: %v)", i, verr.Missing[i], label, verr.Missing)
		}
	}
	for _, label := range want {
		if !strings.Contains(verr.Error(), label) {
			t.Fatalf("error message must list %q: %s", label, verr.Error())
		}
	}
	if len(sub.payloads) != 0 {
		t.Fatalf("submitter must not be called")
	}
}

func TestSession_SubmitFinal_PayloadContents(t *testing.T) {
	sub := &mockSubmitter{}
	s := newSalesSession(sub, &mockUploader{})
	fillSalesRequired(s)
	s.SetField("tujuan_kunjungan", MultiSelect{
		Checked: []string{"follow_up", "demo_alat"},
		Other:   "  Undangan Simposium ",
	})
	s.SetField("foto_kunjungan", Image{URI: "/tmp/visit.jpg", Filename: "visit.jpg", Mime: "image/jpeg"})
	toLastPage(s)

	if err := s.SubmitFinal(context.Background()); err != nil {
		t.Fatalf("expected submit to succeed, got %v", err)
	}

	if len(sub.payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(sub.payloads))
	}
	p := sub.payloads[0]

	if p.FormType != "sales-visit" || p.Status != StatusSubmitted {
		t.Fatalf("unexpected payload header: %+v", p)
	}
	// declared order: demo_alat before follow_up, other entry last
	if got := p.Fields["tujuan_kunjungan"]; got != "demo_alat,follow_up,undangan simposium" {
		t.Fatalf("tujuan_kunjungan=%q", got)
	}
	if got := p.Fields["koordinat_lokasi"]; got != "-6.2,106.8" {
		t.Fatalf("koordinat_lokasi=%q", got)
	}
	if got := p.Fields["tanggal_kunjungan"]; got != "2025-03-14" {
		t.Fatalf("tanggal_kunjungan=%q", got)
	}
	if got := p.Fields["foto_kunjungan"]; got != "stored_visit.jpg" {
		t.Fatalf("foto_kunjungan=%q", got)
	}
}

func TestSession_Submit_UploadFailureAbortsBeforePost(t *testing.T) {
	sub := &mockSubmitter{}
	up := &mockUploader{failOn: map[string]error{"after.jpg": errors.New("disk full")}}
	s := New(TechnicianReport(), Deps{Uploader: up, Submitter: sub})
	s.SetField("nama_teknisi", Text("Andi"))
	s.SetField("foto_sebelum", Image{URI: "/tmp/before.jpg", Filename: "before.jpg", Mime: "image/jpeg"})
	s.SetField("foto_sesudah", Image{URI: "/tmp/after.jpg", Filename: "after.jpg", Mime: "image/jpeg"})

	err := s.SaveDraft(context.Background())

	var uerr *UploadError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if uerr.Key != "foto_sesudah" || uerr.Filename != "after.jpg" {
		t.Fatalf("error must identify the failed attachment, got %+v", uerr)
	}
	if len(sub.payloads) != 0 {
		t.Fatalf("submission POST must never happen when an upload fails")
	}

	// The sibling that succeeded is recorded in place and not re-uploaded on
	// the next attempt.
	v, _ := s.Field("foto_sebelum")
	img, ok := v.(Image)
	if !ok || img.Pending() || img.Stored != "stored_before.jpg" {
		t.Fatalf("successful sibling not persisted in place: %+v", v)
	}

	up.failOn = nil
	if err := s.SaveDraft(context.Background()); err != nil {
		t.Fatalf("resubmit should succeed, got %v", err)
	}

	uploadsOfBefore := 0
	for _, f := range up.calls {
		if f == "before.jpg" {
			uploadsOfBefore++
		}
	}
	if uploadsOfBefore != 1 {
		t.Fatalf("before.jpg must be uploaded exactly once, got %d", uploadsOfBefore)
	}
}

func TestSession_Submit_SubmitterErrorPropagates(t *testing.T) {
	sub := &mockSubmitter{err: fmt.Errorf("http 500")}
	s := newSalesSession(sub, &mockUploader{})
	fillSalesRequired(s)
	toLastPage(s)

	if err := s.SubmitFinal(context.Background()); err == nil {
		t.Fatalf("expected submitter error to propagate")
	}
}

func TestSession_SerialChanged_PrefillsWithoutLocking(t *testing.T) {
	products := &mockProducts{bySerial: map[string]*Product{
		"SN-001": {Name: "Ventilator X1", Type: "ICU", Brand: "Medika"},
	}}
	s := New(TechnicianReport(), Deps{Submitter: &mockSubmitter{}, Products: products})

	if err := s.SerialChanged(context.Background(), " SN-001 "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, _ := s.Field("nama_produk"); v != Text("Ventilator X1") {
		t.Fatalf("nama_produk=%v", v)
	}
	if v, _ := s.Field("tipe_produk"); v != Text("ICU") {
		t.Fatalf("tipe_produk=%v", v)
	}
	if v, _ := s.Field("merek_produk"); v != Text("Medika") {
		t.Fatalf("merek_produk=%v", v)
	}

	// advisory only: the user can still override
	s.SetField("nama_produk", Text("Ventilator X1 Pro"))
	if v, _ := s.Field("nama_produk"); v != Text("Ventilator X1 Pro") {
		t.Fatalf("prefill must not lock the field, got %v", v)
	}
}

func TestSession_SerialChanged_UnknownSerialLeavesFieldsAlone(t *testing.T) {
	products := &mockProducts{bySerial: map[string]*Product{}}
	s := New(TechnicianReport(), Deps{Submitter: &mockSubmitter{}, Products: products})
	s.SetField("nama_produk", Text("manual entry"))

	if err := s.SerialChanged(context.Background(), "SN-404"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := s.Field("nama_produk"); v != Text("manual entry") {
		t.Fatalf("unknown serial must not touch fields, got %v", v)
	}
}
