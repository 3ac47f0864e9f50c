package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AttributeMap is a custom type for handling the open, schema-driven vehicle
// attributes as a JSON object column in the database. Keys the schema loader
// does not know are stored as-is so imports from newer header files survive
// a round trip.
type AttributeMap map[string]string

// Value implements driver.Valuer interface for database storage
func (am AttributeMap) Value() (driver.Value, error) {
	if am == nil {
		return nil, nil
	}
	return json.Marshal(am)
}

// Scan implements sql.Scanner interface for database retrieval
func (am *AttributeMap) Scan(value interface{}) error {
	if value == nil {
		*am = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, am)
	case string:
		return json.Unmarshal([]byte(v), am)
	default:
		return fmt.Errorf("cannot scan %T into AttributeMap", value)
	}
}

// GormDataType returns the data type for GORM
func (AttributeMap) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (am AttributeMap) MarshalJSON() ([]byte, error) {
	if am == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]string(am))
}
