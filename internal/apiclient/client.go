package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"field-report-api/internal/formsession"
	"field-report-api/internal/regioncache"
)

// Client talks to the field-report backend. It implements the collaborator
// interfaces the on-device core depends on: regioncache.Fetcher,
// formsession.Uploader, formsession.Submitter and formsession.ProductLookup.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type hospitalsResponse struct {
	RetrievedHospitals []regioncache.RawLocation `json:"retrieved_hospitals"`
}

// FetchRegion retrieves the raw hospital records for a region.
func (c *Client) FetchRegion(ctx context.Context, region string) ([]regioncache.RawLocation, error) {
	u := c.BaseURL + "/api/forms/hospital/" + url.PathEscape(region)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("hospital fetch for %q: %s", region, serverError(resp))
	}

	var body hospitalsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("hospital fetch for %q: decode: %w", region, err)
	}
	return body.RetrievedHospitals, nil
}

type uploadResponse struct {
	Filename string `json:"filename"`
	FileName string `json:"fileName"`
	Name     string `json:"name"`
}

func (r uploadResponse) stored() string {
	for _, v := range []string{r.Filename, r.FileName, r.Name} {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// UploadImage posts one pending attachment as multipart field "file" and
// returns the server-assigned filename.
func (c *Client) UploadImage(ctx context.Context, img formsession.Image) (string, error) {
	f, err := os.Open(img.URI)
	if err != nil {
		return "", fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	name := strings.TrimSpace(img.Filename)
	if name == "" {
		name = filepath.Base(img.URI)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	if strings.TrimSpace(img.Mime) != "" {
		hdr.Set("Content-Type", img.Mime)
	}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/uploads", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload %s: %s", name, serverError(resp))
	}

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("upload %s: decode: %w", name, err)
	}
	stored := body.stored()
	if stored == "" {
		return "", fmt.Errorf("upload %s: response carries no filename", name)
	}
	return stored, nil
}

// SubmitForm posts the assembled payload as multipart form-data to the
// variant's endpoint.
func (c *Client) SubmitForm(ctx context.Context, p formsession.Payload) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := mw.WriteField(k, p.Fields[k]); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	u := c.BaseURL + "/api/forms/" + url.PathEscape(p.FormType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("submit %s: %s", p.FormType, serverError(resp))
	}
	return nil
}

type serialResponse struct {
	Exists  bool `json:"exists"`
	Product *struct {
		Name  string `json:"name"`
		Type  string `json:"type"`
		Brand string `json:"brand"`
	} `json:"product"`
}

// ProductBySerial resolves a serial number. A nil product means the serial
// is unknown to the backend.
func (c *Client) ProductBySerial(ctx context.Context, serial string) (*formsession.Product, error) {
	u := c.BaseURL + "/api/forms/products/by-serial/" + url.PathEscape(serial)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("serial lookup %s: %s", serial, serverError(resp))
	}

	var body serialResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("serial lookup %s: decode: %w", serial, err)
	}
	if !body.Exists || body.Product == nil {
		return nil, nil
	}
	return &formsession.Product{
		Name:  body.Product.Name,
		Type:  body.Product.Type,
		Brand: body.Product.Brand,
	}, nil
}

// serverError extracts the backend's {"error": ...} message when present.
func serverError(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && strings.TrimSpace(body.Error) != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}
