package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores a list of strings in a jsonb column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// GormDataType tells the migrator to create a jsonb column.
func (StringList) GormDataType() string { return "jsonb" }

// JSONValue stores an opaque structured value (rich text, draft-js blobs and
// the like) in a jsonb column without interpreting it.
type JSONValue json.RawMessage

// Value implements driver.Valuer.
func (v JSONValue) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return string(v), nil
}

// Scan implements sql.Scanner.
func (v *JSONValue) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		*v = nil
		return nil
	case []byte:
		*v = append((*v)[0:0], s...)
		return nil
	case string:
		*v = JSONValue(s)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JSONValue", src)
	}
}

// MarshalJSON emits the raw value, or null when empty.
func (v JSONValue) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

// UnmarshalJSON keeps the raw bytes.
func (v *JSONValue) UnmarshalJSON(data []byte) error {
	*v = append((*v)[0:0], data...)
	return nil
}

// GormDataType tells the migrator to create a jsonb column.
func (JSONValue) GormDataType() string { return "jsonb" }
