package formsession

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

const maxParallelUploads = 4

var ErrNotLastPage = errors.New("final submit is only available on the last page")

// ValidationError carries the human labels of every missing required field.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "required fields missing: " + strings.Join(e.Missing, ", ")
}

// UploadError identifies the attachment whose upload failed.
type UploadError struct {
	Key      string
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s (%s): %v", e.Key, e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Uploader pushes one pending image attachment and returns the
// server-assigned filename.
type Uploader interface {
	UploadImage(ctx context.Context, img Image) (string, error)
}

// Submitter delivers the assembled submission payload.
type Submitter interface {
	SubmitForm(ctx context.Context, p Payload) error
}

type Product struct {
	Name  string
	Type  string
	Brand string
}

// ProductLookup resolves a serial number. A nil product with a nil error
// means the serial is unknown.
type ProductLookup interface {
	ProductBySerial(ctx context.Context, serial string) (*Product, error)
}

// ValueStore is the read-only key-value store consulted at submission time
// (e.g. the persisted user_id).
type ValueStore interface {
	Get(key string) (string, bool)
}

type Deps struct {
	Uploader  Uploader
	Submitter Submitter
	Products  ProductLookup // optional; technician variant only
	Store     ValueStore    // optional
}

// Payload is the flattened submission handed to the Submitter.
type Payload struct {
	FormType string
	Status   string
	Fields   map[string]string
}

// Session drives one multi-page form: field values, page position and the
// draft/submit transitions. It belongs to a single screen instance and is
// discarded after a successful submission.
type Session struct {
	form   Form
	deps   Deps
	page   int
	values map[string]Value
}

func New(form Form, deps Deps) *Session {
	return &Session{
		form:   form,
		deps:   deps,
		page:   1,
		values: make(map[string]Value, len(form.Fields)),
	}
}

func (s *Session) Form() Form     { return s.form }
func (s *Session) Page() int      { return s.page }
func (s *Session) PageCount() int { return s.form.Pages }

// GoNext advances one page. It never validates; all required-field checks
// happen at submit.
func (s *Session) GoNext() {
	if s.page < s.form.Pages {
		s.page++
	}
}

// GoBack returns one page; a no-op on the first page.
func (s *Session) GoBack() {
	if s.page > 1 {
		s.page--
	}
}

// SetField records a value. It always succeeds; nothing is validated at
// write time.
func (s *Session) SetField(key string, v Value) {
	s.values[key] = v
}

func (s *Session) Field(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// SaveDraft submits the form with draft status from any page. Only the
// anchor field must be filled in.
func (s *Session) SaveDraft(ctx context.Context) error {
	if empty(s.values[s.form.Anchor]) {
		label := s.form.Anchor
		if spec, ok := s.form.Spec(s.form.Anchor); ok {
			label = spec.Label
		}
		return &ValidationError{Missing: []string{label}}
	}
	return s.submit(ctx, StatusDraft)
}

// SubmitFinal submits the form from the last page after checking the full
// required-field set. Every missing field is reported in one error. On a
// later POST failure any images uploaded by this attempt stay on the server;
// there is no compensating delete.
func (s *Session) SubmitFinal(ctx context.Context) error {
	if s.page != s.form.Pages {
		return ErrNotLastPage
	}

	var missing []string
	for _, f := range s.form.Fields {
		if f.Required && empty(s.values[f.Key]) {
			missing = append(missing, f.Label)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	return s.submit(ctx, StatusSubmitted)
}

// SerialChanged runs the advisory product lookup when the user leaves the
// serial-number field. A hit prefills the product fields without locking
// them.
func (s *Session) SerialChanged(ctx context.Context, serial string) error {
	serial = strings.TrimSpace(serial)
	if s.deps.Products == nil || serial == "" {
		return nil
	}

	p, err := s.deps.Products.ProductBySerial(ctx, serial)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}

	s.SetField("serial_number", Text(serial))
	s.SetField("nama_produk", Text(p.Name))
	s.SetField("tipe_produk", Text(p.Type))
	s.SetField("merek_produk", Text(p.Brand))
	return nil
}

func (s *Session) submit(ctx context.Context, status string) error {
	if err := s.uploadPendingImages(ctx); err != nil {
		return err
	}

	payload := Payload{
		FormType: s.form.Type,
		Status:   status,
		Fields:   make(map[string]string, len(s.form.Fields)+2),
	}
	if s.deps.Store != nil {
		if id, ok := s.deps.Store.Get("user_id"); ok {
			payload.Fields["user_id"] = id
		}
	}
	payload.Fields["status"] = status
	for _, f := range s.form.Fields {
		payload.Fields[f.Key] = encodeValue(f, s.values[f.Key])
	}

	return s.deps.Submitter.SubmitForm(ctx, payload)
}

// uploadPendingImages pushes every pending attachment concurrently and
// waits for all of them. One failure aborts the submission, but sibling
// uploads that already succeeded are recorded in place so a resubmit does
// not repeat them.
func (s *Session) uploadPendingImages(ctx context.Context) error {
	type job struct {
		key string
		img Image
	}
	type result struct {
		key    string
		stored string
		err    *UploadError
	}

	var jobs []job
	for _, f := range s.form.Fields {
		if f.Kind != KindImage {
			continue
		}
		img, ok := s.values[f.Key].(Image)
		if !ok || !img.Pending() || strings.TrimSpace(img.URI) == "" {
			continue
		}
		jobs = append(jobs, job{key: f.Key, img: img})
	}
	if len(jobs) == 0 {
		return nil
	}

	sem := make(chan struct{}, maxParallelUploads)
	outCh := make(chan result, len(jobs))
	var wg sync.WaitGroup

	for _, j := range jobs {
		wg.Add(1)

		go func(j job) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			stored, err := s.deps.Uploader.UploadImage(ctx, j.img)
			if err != nil {
				outCh <- result{
					key: j.key,
					err: &UploadError{Key: j.key, Filename: j.img.Filename, Err: err},
				}
				return
			}
			outCh <- result{key: j.key, stored: stored}
		}(j)
	}

	wg.Wait()
	close(outCh)

	var failed *UploadError
	for r := range outCh {
		if r.err != nil {
			if failed == nil {
				failed = r.err
			}
			continue
		}
		img := s.values[r.key].(Image)
		img.Stored = r.stored
		img.URI = "" // local reference handed off
		s.values[r.key] = img
	}

	if failed != nil {
		return failed
	}
	return nil
}
