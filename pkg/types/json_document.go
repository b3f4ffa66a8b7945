package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONDocument stores a loosely typed jsonb sub-document. Catalog rows carry
// pricing/options/production/dimensions this way; the configurator decides
// how (and whether) each document parses.
type JSONDocument json.RawMessage

// Value implements driver.Valuer.
func (d JSONDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	if !json.Valid(d) {
		return nil, fmt.Errorf("json document: invalid payload")
	}
	return string(d), nil
}

// Scan implements sql.Scanner for jsonb (and sqlite text) columns.
func (d *JSONDocument) Scan(value any) error {
	if value == nil {
		*d = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		buf := make([]byte, len(v))
		copy(buf, v)
		*d = buf
		return nil
	case string:
		*d = JSONDocument(v)
		return nil
	default:
		return fmt.Errorf("json document: unsupported source type %T", value)
	}
}

// MarshalJSON passes the raw document through unchanged.
func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores the raw bytes verbatim.
func (d *JSONDocument) UnmarshalJSON(data []byte) error {
	if d == nil {
		return fmt.Errorf("json document: nil receiver")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	*d = buf
	return nil
}

// Raw returns the document as a json.RawMessage.
func (d JSONDocument) Raw() json.RawMessage {
	return json.RawMessage(d)
}
