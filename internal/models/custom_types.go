package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringSlice custom type for handling JSONB-backed id lists
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	temp := []string{}
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return err
	}

	*s = temp
	return nil
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Contains reports set membership; id lists are small enough that a
// linear scan is fine.
func (s StringSlice) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// LimitMap custom type for handling JSONB-backed per-user limits
type LimitMap map[string]int

// Scan implements the sql.Scanner interface
func (m *LimitMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(LimitMap)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	temp := make(map[string]int)
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return err
	}

	*m = temp
	return nil
}

// Value implements the driver.Valuer interface
func (m LimitMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}
