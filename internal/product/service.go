package product

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type ProductServiceAPI interface {
	GetBySerial(serial string) (*Product, error)
}

type ProductService struct {
	DB *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{DB: db}
}

// GetBySerial returns nil without an error when the serial is unknown.
func (ps *ProductService) GetBySerial(serial string) (*Product, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, errors.New("serial is required")
	}

	var p Product
	result := ps.DB.Where("serial_number = ?", serial).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &p, nil
}
