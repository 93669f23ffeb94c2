package normalize

import (
	"encoding/json"
	"strings"
)

// archivedStatuses is the fixed set of statuses that mark a listing as
// archived (off market)
var archivedStatuses = map[string]struct{}{
	"Closed":    {},
	"Expired":   {},
	"Withdrawn": {},
	"Canceled":  {},
	"Deleted":   {},
}

// IsArchivedStatus reports whether a provider status means the listing
// is off the market
func IsArchivedStatus(status string) bool {
	_, ok := archivedStatuses[status]
	return ok
}

// Normalize maps provider field names to local columns for the given
// entity kind, applying the uniform coercion rules. Unmapped provider
// fields are discarded; mapped fields absent from the raw record are
// absent from the result.
func Normalize(kind EntityKind, raw map[string]interface{}) map[string]interface{} {
	mapped := make(map[string]interface{})
	for _, fm := range FieldMapFor(kind) {
		value, ok := raw[fm.Provider]
		if !ok {
			continue
		}
		mapped[fm.Local] = CoerceValue(value)
	}
	return mapped
}

// CoerceValue applies the uniform type coercion rules: collections are
// serialized to a JSON string, booleans become 0/1, strings are
// trimmed with empty collapsing to nil, everything else passes through.
func CoerceValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		return trimmed
	case []interface{}, map[string]interface{}:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return string(encoded)
	default:
		return value
	}
}
