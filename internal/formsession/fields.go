package formsession

import (
	"strconv"
	"strings"
	"time"
)

// FieldKind is the simplified enum of input kinds a form screen renders.
type FieldKind string

const (
	KindText         FieldKind = "text"
	KindSingleSelect FieldKind = "single_select"
	KindMultiSelect  FieldKind = "multi_select"
	KindDate         FieldKind = "date"
	KindCoordinate   FieldKind = "coordinate"
	KindImage        FieldKind = "image"
	KindReadOnly     FieldKind = "read_only"
)

type Option struct {
	Label string
	Value string
}

// FieldSpec declares one field of a form variant: its stable key, the label
// shown to the user (and in validation messages), the page it lives on and
// whether the final submit requires it. Drafts only require the form's
// anchor field.
type FieldSpec struct {
	Key      string
	Label    string
	Kind     FieldKind
	Page     int
	Options  []Option
	Required bool
}

// Value is the tagged union of everything a field can hold.
type Value interface{ isValue() }

type Text string

// Selection is a resolved single-select choice.
type Selection struct {
	Value string
	Label string
}

// MultiSelect holds the checked option values plus the free-form "other"
// sibling input.
type MultiSelect struct {
	Checked []string
	Other   string
}

type Date time.Time

// Coordinate is a picked map position.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Image is either a pending local attachment (URI set, Stored empty) or a
// persisted one (Stored holds the server-assigned filename).
type Image struct {
	URI      string
	Filename string
	Mime     string
	Stored   string
}

func (i Image) Pending() bool { return i.Stored == "" }

type ReadOnly string

func (Text) isValue()        {}
func (Selection) isValue()   {}
func (MultiSelect) isValue() {}
func (Date) isValue()        {}
func (Coordinate) isValue()  {}
func (Image) isValue()       {}
func (ReadOnly) isValue()    {}

func empty(v Value) bool {
	switch x := v.(type) {
	case nil:
		return true
	case Text:
		return strings.TrimSpace(string(x)) == ""
	case Selection:
		return x.Value == ""
	case MultiSelect:
		return len(x.Checked) == 0 && strings.TrimSpace(x.Other) == ""
	case Date:
		return time.Time(x).IsZero()
	case Coordinate:
		return false
	case Image:
		return x.Stored == "" && strings.TrimSpace(x.URI) == ""
	case ReadOnly:
		return strings.TrimSpace(string(x)) == ""
	default:
		return true
	}
}

// encodeValue renders a field value as the string sent in the submission
// payload.
func encodeValue(spec FieldSpec, v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case Text:
		return strings.TrimSpace(string(x))
	case Selection:
		return x.Value
	case MultiSelect:
		return joinMultiSelect(spec.Options, x)
	case Date:
		return time.Time(x).Format("2006-01-02")
	case Coordinate:
		return strconv.FormatFloat(x.Latitude, 'f', -1, 64) + "," +
			strconv.FormatFloat(x.Longitude, 'f', -1, 64)
	case Image:
		return x.Stored
	case ReadOnly:
		return strings.TrimSpace(string(x))
	default:
		return ""
	}
}

// joinMultiSelect builds the logical value of a multi-select field: checked
// option values in their declared order, then the lower-cased trimmed other
// text last if present, comma-joined.
func joinMultiSelect(opts []Option, v MultiSelect) string {
	checked := make(map[string]struct{}, len(v.Checked))
	for _, c := range v.Checked {
		checked[c] = struct{}{}
	}

	parts := make([]string, 0, len(v.Checked)+1)
	for _, o := range opts {
		if _, ok := checked[o.Value]; ok {
			parts = append(parts, o.Value)
		}
	}

	if other := strings.ToLower(strings.TrimSpace(v.Other)); other != "" {
		parts = append(parts, other)
	}

	return strings.Join(parts, ",")
}
