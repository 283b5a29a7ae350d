package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"field-report-api/internal/util"

	"gorm.io/gorm"
)

type SubmissionServiceAPI interface {
	Create(req *SaveSubmissionRequest) (*SubmissionResponse, error)
	List(formType string, status *string) ([]SubmissionResponse, error)
	Export(formType string) (contentType, filename string, out []byte, err error)
}

type SubmissionService struct {
	DB *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{DB: db}
}

// metaKeys are stamped onto the submission row instead of becoming detail
// rows.
var metaKeys = map[string]struct{}{
	"user_id": {},
	"status":  {},
}

func isFileField(key string) bool {
	return strings.HasPrefix(key, "foto")
}

func (s *SubmissionService) Create(req *SaveSubmissionRequest) (*SubmissionResponse, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}
	formType := strings.TrimSpace(req.FormType)
	if formType == "" {
		return nil, errors.New("form_type is required")
	}
	status := strings.TrimSpace(req.Status)
	if status != StatusDraft && status != StatusSubmitted {
		return nil, errors.New("status must be draft or submitted")
	}

	region := strings.TrimSpace(req.Fields["region"])

	// The multi-select purpose field differs per variant.
	purposes := util.SplitCommaList(req.Fields["tujuan_kunjungan"])
	if len(purposes) == 0 {
		purposes = util.SplitCommaList(req.Fields["jenis_pekerjaan"])
	}

	var sub FormSubmission
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sub = FormSubmission{
			FormType: formType,
			UserID:   req.UserID,
			Status:   status,
			Region:   region,
			Purposes: purposes,
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}

		for key, value := range req.Fields {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if _, ok := metaKeys[key]; ok {
				continue
			}
			if strings.TrimSpace(value) == "" {
				continue
			}

			if isFileField(key) {
				row := FormSubmissionFile{
					SubmissionID: sub.ID,
					FieldKey:     key,
					FileName:     strings.TrimSpace(value),
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				continue
			}

			raw, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to marshal value for field %s: %w", key, err)
			}
			row := FormSubmissionDetail{
				SubmissionID: sub.ID,
				FieldKey:     key,
				ValueJSON:    raw,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getByID(sub.ID)
}

func (s *SubmissionService) getByID(id int64) (*SubmissionResponse, error) {
	var sub FormSubmission
	if err := s.DB.First(&sub, id).Error; err != nil {
		return nil, err
	}

	resp := toResponse(sub)

	var details []FormSubmissionDetail
	if err := s.DB.Where("submission_id = ?", sub.ID).Order("id asc").Find(&details).Error; err != nil {
		return nil, err
	}
	for _, d := range details {
		var val string
		if err := json.Unmarshal(d.ValueJSON, &val); err != nil {
			return nil, err
		}
		resp.Fields[d.FieldKey] = val
	}

	var files []FormSubmissionFile
	if err := s.DB.Where("submission_id = ?", sub.ID).Order("id asc").Find(&files).Error; err != nil {
		return nil, err
	}
	for _, f := range files {
		resp.Files[f.FieldKey] = f.FileName
	}

	return &resp, nil
}

func (s *SubmissionService) List(formType string, status *string) ([]SubmissionResponse, error) {
	formType = strings.TrimSpace(formType)
	if formType == "" {
		return nil, errors.New("form_type is required")
	}

	q := s.DB.Where("form_type = ?", formType)
	if status != nil && strings.TrimSpace(*status) != "" {
		q = q.Where("status = ?", strings.TrimSpace(*status))
	}

	var subs []FormSubmission
	if err := q.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}

	out := make([]SubmissionResponse, 0, len(subs))
	if len(subs) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}

	var details []FormSubmissionDetail
	if err := s.DB.Where("submission_id IN ?", ids).Order("id asc").Find(&details).Error; err != nil {
		return nil, err
	}
	var files []FormSubmissionFile
	if err := s.DB.Where("submission_id IN ?", ids).Order("id asc").Find(&files).Error; err != nil {
		return nil, err
	}

	detailsBySub := make(map[int64][]FormSubmissionDetail, len(subs))
	for _, d := range details {
		detailsBySub[d.SubmissionID] = append(detailsBySub[d.SubmissionID], d)
	}
	filesBySub := make(map[int64][]FormSubmissionFile, len(subs))
	for _, f := range files {
		filesBySub[f.SubmissionID] = append(filesBySub[f.SubmissionID], f)
	}

	for _, sub := range subs {
		resp := toResponse(sub)
		for _, d := range detailsBySub[sub.ID] {
			var val string
			if err := json.Unmarshal(d.ValueJSON, &val); err != nil {
				return nil, err
			}
			resp.Fields[d.FieldKey] = val
		}
		for _, f := range filesBySub[sub.ID] {
			resp.Files[f.FieldKey] = f.FileName
		}
		out = append(out, resp)
	}

	return out, nil
}

func toResponse(sub FormSubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:        sub.ID,
		FormType:  sub.FormType,
		UserID:    sub.UserID,
		Status:    sub.Status,
		Region:    sub.Region,
		Purposes:  append([]string{}, sub.Purposes...),
		Fields:    map[string]string{},
		Files:     map[string]string{},
		CreatedAt: sub.CreatedAt,
	}
}
