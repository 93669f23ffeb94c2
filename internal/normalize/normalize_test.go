package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected interface{}
	}{
		{"nil passes through", nil, nil},
		{"true becomes 1", true, 1},
		{"false becomes 0", false, 0},
		{"string is trimmed", "  hello  ", "hello"},
		{"empty string becomes nil", "   ", nil},
		{"number passes through", 42.5, 42.5},
		{"slice becomes json string", []interface{}{"Central", "Electric"}, `["Central","Electric"]`},
		{"map becomes json string", map[string]interface{}{"a": 1.0}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceValue(tt.input))
		})
	}
}

func TestIsArchivedStatus(t *testing.T) {
	archived := []string{"Closed", "Expired", "Withdrawn", "Canceled", "Deleted"}
	for _, status := range archived {
		assert.True(t, IsArchivedStatus(status), status)
	}

	active := []string{"Active", "Active Under Contract", "Pending", ""}
	for _, status := range active {
		assert.False(t, IsArchivedStatus(status), status)
	}
}

func TestNormalizeAppliesFieldMap(t *testing.T) {
	raw := map[string]interface{}{
		"ListingKey":     "LK100",
		"ListPrice":      500000.0,
		"PoolPrivateYN":  true,
		"Heating":        []interface{}{"Central"},
		"City":           "  Austin ",
		"PublicRemarks":  "",
		"UnmappedColumn": "dropped",
	}

	m := Normalize(KindProperty, raw)

	assert.Equal(t, "LK100", m["listing_key"])
	assert.Equal(t, 500000.0, m["list_price"])
	assert.Equal(t, 1, m["pool_private_yn"])
	assert.Equal(t, `["Central"]`, m["heating"])
	assert.Equal(t, "Austin", m["city"])
	assert.Nil(t, m["public_remarks"])

	_, hasRemarks := m["public_remarks"]
	assert.True(t, hasRemarks, "mapped empty field should be present as nil")
	_, hasUnmapped := m["UnmappedColumn"]
	assert.False(t, hasUnmapped, "unmapped provider fields are discarded")

	// Mapped fields absent from the raw record stay absent
	_, hasCloseDate := m["close_date"]
	assert.False(t, hasCloseDate)
}

func TestFieldMapForCoversAllKinds(t *testing.T) {
	kinds := []EntityKind{KindProperty, KindMedia, KindAgent, KindOffice, KindOpenHouse}
	for _, kind := range kinds {
		assert.NotEmpty(t, FieldMapFor(kind), string(kind))
	}
	assert.Nil(t, FieldMapFor(EntityKind("bogus")))
}
