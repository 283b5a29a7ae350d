package product

import (
	"time"
)

type Product struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SerialNumber string    `gorm:"size:100;not null;uniqueIndex;column:serial_number" json:"serial_number"`
	Name         string    `gorm:"type:text;not null;column:name" json:"name"`
	Type         string    `gorm:"size:100;not null;default:'';column:type" json:"type"`
	Brand        string    `gorm:"size:100;not null;default:'';column:brand" json:"brand"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
