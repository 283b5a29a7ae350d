package hospital

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type mockHospitalService struct {
	hospitals      []Hospital
	err            error
	receivedRegion string
}

func (m *mockHospitalService) GetByRegion(_ context.Context, region string) ([]Hospital, error) {
	m.receivedRegion = region
	return m.hospitals, m.err
}

func setupHospitalRouter(svc HospitalServiceAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r, svc)
	return r
}

func TestHospitalController_GetHospitalsByRegion_Success(t *testing.T) {
	mockSvc := &mockHospitalService{
		hospitals: []Hospital{
			{ID: 1, Region: "jabodetabek", Name: "RS Anggrek"},
			{ID: 2, Region: "jabodetabek", Name: "RS Citra"},
		},
	}

	r := setupHospitalRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/forms/hospital/jabodetabek", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Message   string     `json:"message"`
		Hospitals []Hospital `json:"retrieved_hospitals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Message != "Hospitals fetched successfully" {
		t.Fatalf("unexpected message: %s", resp.Message)
	}
	if len(resp.Hospitals) != 2 {
		t.Fatalf("expected 2 hospitals, got %d", len(resp.Hospitals))
	}
	if mockSvc.receivedRegion != "jabodetabek" {
		t.Fatalf("service received region %q", mockSvc.receivedRegion)
	}
}

func TestHospitalController_GetHospitalsByRegion_ServiceError(t *testing.T) {
	mockSvc := &mockHospitalService{err: errors.New("db error")}

	r := setupHospitalRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/forms/hospital/jabodetabek", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["error"] != "db error" {
		t.Fatalf("unexpected error message: %s", resp["error"])
	}
}
