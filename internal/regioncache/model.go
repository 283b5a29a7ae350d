package regioncache

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Location is one selectable site within a region, as shown in the
// location picker.
type Location struct {
	ID        int64    `json:"hospital_id"`
	Region    string   `json:"region"`
	Name      string   `json:"name"`
	Street    string   `json:"street"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// RawLocation mirrors the wire shape of one hospital record. The backend's
// source data is inconsistent, so id and coordinates arrive as numbers,
// strings or null.
type RawLocation struct {
	HospitalID any    `json:"hospital_id"`
	Region     string `json:"region"`
	Name       string `json:"name"`
	Street     string `json:"street"`
	Latitude   any    `json:"latitude"`
	Longitude  any    `json:"longitude"`
}

// Normalize coerces raw hospital records into Locations. Records without a
// usable id are dropped; missing strings default to empty, missing or
// unparseable coordinates to nil.
func Normalize(region string, raw []RawLocation) []Location {
	out := make([]Location, 0, len(raw))
	for _, r := range raw {
		id, ok := coerceID(r.HospitalID)
		if !ok {
			continue
		}

		loc := Location{
			ID:        id,
			Region:    strings.TrimSpace(r.Region),
			Name:      strings.TrimSpace(r.Name),
			Street:    strings.TrimSpace(r.Street),
			Latitude:  coerceCoord(r.Latitude),
			Longitude: coerceCoord(r.Longitude),
		}
		if loc.Region == "" {
			loc.Region = strings.TrimSpace(region)
		}
		out = append(out, loc)
	}
	return out
}

func coerceID(v any) (int64, bool) {
	switch x := v.(type) {
	case float64:
		return int64(x), true
	case int64:
		return x, true
	case int:
		return int64(x), true
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func coerceCoord(v any) *float64 {
	switch x := v.(type) {
	case float64:
		return &x
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
