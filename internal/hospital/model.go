package hospital

import (
	"time"
)

type Hospital struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"hospital_id"`
	Region    string    `gorm:"size:100;not null;index;column:region" json:"region"`
	Name      string    `gorm:"type:text;not null;column:name" json:"name"`
	Street    string    `gorm:"type:text;not null;default:'';column:street" json:"street"`
	Latitude  *float64  `gorm:"column:latitude" json:"latitude"`
	Longitude *float64  `gorm:"column:longitude" json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Hospital) TableName() string {
	return "hospitals"
}
