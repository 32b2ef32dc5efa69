package points

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedDocument indicates that a payload could not be decoded or
// fails the structural checks required of a document.
var ErrMalformedDocument = errors.New("malformed document")

// Marshal renders the document in its canonical form: two-space indented
// JSON with object keys in sorted order and a trailing newline. Two
// documents with equal content always produce identical bytes.
func Marshal(d *Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes a document payload and validates its structure: the
// schema version must be present and at least one resort must be configured.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if d.SchemaVersion == "" {
		return nil, fmt.Errorf("%w: missing schema_version", ErrMalformedDocument)
	}
	if len(d.Resorts) == 0 {
		return nil, fmt.Errorf("%w: document has no resorts", ErrMalformedDocument)
	}
	for i, resort := range d.Resorts {
		if resort == nil || resort.ID == "" {
			return nil, fmt.Errorf("%w: resort at index %d has no id", ErrMalformedDocument, i)
		}
	}
	if d.GlobalHolidays == nil {
		d.GlobalHolidays = map[string][]GlobalHoliday{}
	}
	if d.Configuration.MaintenanceRates == nil {
		d.Configuration.MaintenanceRates = map[string]float64{}
	}
	return &d, nil
}

// Equal reports whether two documents have identical canonical forms.
func Equal(a, b *Document) bool {
	left, errA := Marshal(a)
	right, errB := Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(left, right)
}
