package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type mockProductService struct {
	product        *Product
	err            error
	receivedSerial string
}

func (m *mockProductService) GetBySerial(serial string) (*Product, error) {
	m.receivedSerial = serial
	return m.product, m.err
}

func setupProductRouter(svc ProductServiceAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r, svc)
	return r
}

func TestProductController_GetProductBySerial_Found(t *testing.T) {
	mockSvc := &mockProductService{
		product: &Product{ID: 1, SerialNumber: "SN-001", Name: "Ventilator X1"},
	}

	r := setupProductRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/forms/products/by-serial/SN-001", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Exists  bool     `json:"exists"`
		Product *Product `json:"product"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if !resp.Exists || resp.Product == nil || resp.Product.Name != "Ventilator X1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if mockSvc.receivedSerial != "SN-001" {
		t.Fatalf("service received serial %q", mockSvc.receivedSerial)
	}
}

func TestProductController_GetProductBySerial_NotFound(t *testing.T) {
	mockSvc := &mockProductService{}

	r := setupProductRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/forms/products/by-serial/SN-404", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Exists {
		t.Fatalf("expected exists=false")
	}
}

func TestProductController_GetProductBySerial_ServiceError(t *testing.T) {
	mockSvc := &mockProductService{err: errors.New("db error")}

	r := setupProductRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/forms/products/by-serial/SN-001", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}
