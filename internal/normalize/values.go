package normalize

import "time"

// timeFormats are tried in order when parsing provider timestamps;
// dates arrive both as RFC3339 instants and bare dates
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getFloat(m map[string]interface{}, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func getInt(m map[string]interface{}, key string) *int {
	switch v := m[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	}
	return nil
}

func getTime(m map[string]interface{}, key string) *time.Time {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return nil
	}
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}
	return nil
}
