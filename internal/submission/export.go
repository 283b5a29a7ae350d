package submission

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"field-report-api/internal/util"

	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export renders every submission of one form type as a spreadsheet, with a
// column per field key seen across the set.
func (s *SubmissionService) Export(formType string) (contentType, filename string, out []byte, err error) {
	rows, err := s.List(formType, nil)
	if err != nil {
		return "", "", nil, err
	}

	keySet := map[string]struct{}{}
	for _, r := range rows {
		for k := range r.Fields {
			keySet[k] = struct{}{}
		}
		for k := range r.Files {
			keySet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2E8F0"}},
	})

	sheet := f.GetSheetName(0)

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return "", "", nil, err
	}

	header := []interface{}{
		excelize.Cell{Value: "id", StyleID: headerStyle},
		excelize.Cell{Value: "user_id", StyleID: headerStyle},
		excelize.Cell{Value: "status", StyleID: headerStyle},
		excelize.Cell{Value: "region", StyleID: headerStyle},
		excelize.Cell{Value: "purposes", StyleID: headerStyle},
		excelize.Cell{Value: "created_at", StyleID: headerStyle},
	}
	for _, k := range keys {
		header = append(header, excelize.Cell{Value: k, StyleID: headerStyle})
	}
	if err := sw.SetRow("A1", header); err != nil {
		return "", "", nil, err
	}

	rowNum := 2
	for _, r := range rows {
		userID := ""
		if r.UserID != nil {
			userID = fmt.Sprintf("%d", *r.UserID)
		}

		cells := []interface{}{
			r.ID,
			userID,
			r.Status,
			r.Region,
			strings.Join(r.Purposes, ","),
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		for _, k := range keys {
			if v, ok := r.Fields[k]; ok {
				cells = append(cells, v)
				continue
			}
			cells = append(cells, r.Files[k])
		}

		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return "", "", nil, err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return "", "", nil, err
		}
		rowNum++
	}

	if err := sw.Flush(); err != nil {
		return "", "", nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", "", nil, err
	}

	filename = fmt.Sprintf("%s_submissions_%s.xlsx",
		util.SanitizePart(formType),
		time.Now().UTC().Format("20060102150405"),
	)

	return xlsxContentType, filename, buf.Bytes(), nil
}
