package mlsapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildResyncFilter(t *testing.T) {
	filter := BuildResyncFilter()

	assert.Contains(t, filter, "StandardStatus eq 'Active'")
	assert.Contains(t, filter, "StandardStatus eq 'Active Under Contract'")
	assert.Contains(t, filter, "StandardStatus eq 'Pending'")
	assert.NotContains(t, filter, "ModificationTimestamp")
}

func TestBuildIncrementalFilterWithCursor(t *testing.T) {
	cursor := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := BuildIncrementalFilter(&cursor)

	assert.Contains(t, filter, "StandardStatus eq 'Active'")
	assert.Contains(t, filter, " and ModificationTimestamp gt 2026-01-01T00:00:00Z")
}

func TestBuildIncrementalFilterWithoutCursor(t *testing.T) {
	filter := BuildIncrementalFilter(nil)
	assert.Equal(t, BuildResyncFilter(), filter)
}

func TestBuildKeyFilter(t *testing.T) {
	filter := BuildKeyFilter("MemberKey", []string{"A1", "A2"})
	assert.Equal(t, "MemberKey eq 'A1' or MemberKey eq 'A2'", filter)
}
