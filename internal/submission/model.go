package submission

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

type FormSubmission struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	FormType  string         `gorm:"size:100;not null;index" json:"form_type"`
	UserID    *int64         `gorm:"index" json:"user_id,omitempty"`
	Status    string         `gorm:"size:20;not null" json:"status"`
	Region    string         `gorm:"size:100;not null;default:''" json:"region"`
	Purposes  pq.StringArray `gorm:"type:text[];column:purposes" json:"purposes"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (FormSubmission) TableName() string { return "form_submissions" }

type FormSubmissionDetail struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SubmissionID int64          `gorm:"not null;index" json:"submission_id"`
	FieldKey     string         `gorm:"size:200;not null" json:"field_key"`
	ValueJSON    datatypes.JSON `gorm:"type:jsonb" json:"value_json"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (FormSubmissionDetail) TableName() string { return "form_submission_details" }

type FormSubmissionFile struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SubmissionID int64     `gorm:"not null;index" json:"submission_id"`
	FieldKey     string    `gorm:"size:200;not null" json:"field_key"`
	FileName     string    `gorm:"type:text;not null" json:"file_name"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (FormSubmissionFile) TableName() string { return "form_submission_files" }

type SaveSubmissionRequest struct {
	FormType string
	UserID   *int64
	Status   string
	Fields   map[string]string
}

type SubmissionResponse struct {
	ID        int64             `json:"id"`
	FormType  string            `json:"form_type"`
	UserID    *int64            `json:"user_id,omitempty"`
	Status    string            `json:"status"`
	Region    string            `json:"region"`
	Purposes  []string          `json:"purposes"`
	Fields    map[string]string `json:"fields"`
	Files     map[string]string `json:"files"`
	CreatedAt time.Time         `json:"created_at"`
}
