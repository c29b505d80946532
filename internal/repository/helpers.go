package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// recordKey returns the key part of a SurrealDB record id, dropping the table.
// "user:abc", RecordID{Table: "user", ID: "abc"} and {"tb": "user", "id": "abc"} all yield "abc".
func recordKey(id interface{}) string {
	switch v := id.(type) {
	case string:
		if i := strings.Index(v, ":"); i >= 0 {
			return strings.Trim(v[i+1:], "⟨⟩`")
		}
		return v
	case models.RecordID:
		return keyValue(v.ID)
	case *models.RecordID:
		if v != nil {
			return keyValue(v.ID)
		}
	case map[string]interface{}:
		for _, k := range []string{"id", "ID"} {
			if idVal, ok := v[k]; ok {
				return keyValue(idVal)
			}
		}
	}
	return fmt.Sprintf("%v", id)
}

// keyValue extracts the key which may be nested
func keyValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		// Check for {"String": "value"} format
		if s, ok := m["String"].(string); ok {
			return s
		}
		if s, ok := m["string"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// extractQueryResults extracts the record array of the first statement from a SurrealDB response
func extractQueryResults(result []interface{}) []interface{} {
	if len(result) == 0 {
		return nil
	}
	if first, ok := result[0].(map[string]interface{}); ok {
		switch data := first["result"].(type) {
		case []interface{}:
			return data
		case nil:
			return nil
		default:
			return []interface{}{data}
		}
	}
	// Direct array format
	return result
}

// toContent converts a record into a field map suitable for CREATE ... CONTENT.
// The id is carried by the record id, never by a field.
func toContent(record interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var content map[string]interface{}
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, err
	}
	delete(content, "id")
	return content, nil
}

// decodeRecord converts a raw SurrealDB row into dst using a JSON round trip.
// Storage-only columns are dropped and the record id is reduced to its key.
func decodeRecord(raw interface{}, dst interface{}) error {
	row, ok := raw.(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected result format %T", raw)
	}

	clean := make(map[string]interface{}, len(row))
	for k, v := range row {
		switch k {
		case "id":
			clean[k] = recordKey(v)
		case "created_on":
		default:
			clean[k] = v
		}
	}

	data, err := json.Marshal(clean)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
