package product

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&Product{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	return db
}

func TestProductService_GetBySerial_Found(t *testing.T) {
	db := newTestDB(t)
	svc := &ProductService{DB: db}

	seed := Product{SerialNumber: "SN-001", Name: "Ventilator X1", Type: "ICU", Brand: "Medika"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := svc.GetBySerial(" SN-001 ")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if got == nil {
		t.Fatalf("expected product, got nil")
	}
	if got.Name != "Ventilator X1" || got.Brand != "Medika" {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestProductService_GetBySerial_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := &ProductService{DB: db}

	got, err := svc.GetBySerial("SN-404")
	if err != nil {
		t.Fatalf("expected nil err for unknown serial, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil product, got %+v", got)
	}
}

func TestProductService_GetBySerial_EmptySerial(t *testing.T) {
	db := newTestDB(t)
	svc := &ProductService{DB: db}

	if _, err := svc.GetBySerial("   "); err == nil {
		t.Fatalf("expected error for empty serial")
	}
}

func TestProductService_GetBySerial_DBBroken_ReturnsError(t *testing.T) {
	db := newTestDB(t)
	svc := &ProductService{DB: db}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	_ = sqlDB.Close()

	_, err = svc.GetBySerial("SN-001")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}
