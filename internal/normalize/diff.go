package normalize

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"mls-sync/internal/models"
)

// diffExcludedFields are columns never diffed: bookkeeping timestamps,
// and the photo columns owned by the media enrichment pass. The listing
// payload carries no embedded media, so diffing those against the
// enriched row would log a change on every sync.
var diffExcludedFields = map[string]struct{}{
	"created_at":     {},
	"updated_at":     {},
	"main_photo_url": {},
	"photo_count":    {},
}

// DetectChanges compares an existing property against a freshly
// normalized one and returns one change entry per differing mapped
// field. Comparison is performed on string-converted values; see the
// note on compareString.
func DetectChanges(existing, incoming *models.Property, observedAt time.Time) []models.ChangeLog {
	if existing == nil || incoming == nil {
		return nil
	}

	var changes []models.ChangeLog
	t := reflect.TypeOf(*incoming)
	oldVal := reflect.ValueOf(*existing)
	newVal := reflect.ValueOf(*incoming)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		column := columnName(field)
		if column == "" {
			continue
		}
		if _, skip := diffExcludedFields[column]; skip {
			continue
		}

		oldStr := compareString(oldVal.Field(i))
		newStr := compareString(newVal.Field(i))
		if oldStr == newStr {
			continue
		}

		changes = append(changes, models.ChangeLog{
			ListingKey: incoming.ListingKey,
			Field:      column,
			OldValue:   oldStr,
			NewValue:   newStr,
			ObservedAt: observedAt,
		})
	}

	return changes
}

// columnName derives the field's persisted column name from its json
// tag, skipping unexported and ignored fields
func columnName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	return strings.Split(tag, ",")[0]
}

// compareString converts a field value to the string form used for
// comparison. This mirrors the stored behavior: values of different
// types that stringify identically are treated as equal, and
// formatting differences count as changes.
func compareString(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	}

	if t, ok := v.Interface().(time.Time); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return ""
}
