package repository

import (
	"database/sql/driver"
	"encoding/json"
)

// jsonb wraps a value for writing into a JSONB column.
func jsonb(v any) driver.Value {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return b
}

func scanJSON(data []byte, dest any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
