package normalize

import (
	"testing"
	"time"

	"mls-sync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProperty(listPrice float64) *models.Property {
	beds := 3
	price := listPrice
	return &models.Property{
		ListingKey:     "LK500",
		StandardStatus: "Active",
		City:           "Austin",
		ListPrice:      &price,
		BedroomsTotal:  &beds,
	}
}

func TestDetectChangesSingleField(t *testing.T) {
	existing := makeProperty(500000)
	incoming := makeProperty(525000)
	observedAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	changes := DetectChanges(existing, incoming, observedAt)
	require.Len(t, changes, 1)

	assert.Equal(t, "list_price", changes[0].Field)
	assert.Equal(t, "500000", changes[0].OldValue)
	assert.Equal(t, "525000", changes[0].NewValue)
	assert.Equal(t, "LK500", changes[0].ListingKey)
	assert.Equal(t, observedAt, changes[0].ObservedAt)
}

func TestDetectChangesIdenticalRecords(t *testing.T) {
	changes := DetectChanges(makeProperty(500000), makeProperty(500000), time.Now())
	assert.Empty(t, changes)
}

func TestDetectChangesNilToValue(t *testing.T) {
	existing := makeProperty(500000)
	incoming := makeProperty(500000)
	area := 1800.0
	incoming.LivingArea = &area

	changes := DetectChanges(existing, incoming, time.Now())
	require.Len(t, changes, 1)
	assert.Equal(t, "living_area", changes[0].Field)
	assert.Equal(t, "", changes[0].OldValue)
	assert.Equal(t, "1800", changes[0].NewValue)
}

func TestDetectChangesIgnoresBookkeepingFields(t *testing.T) {
	existing := makeProperty(500000)
	existing.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	existing.UpdatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	existing.ID = 7

	incoming := makeProperty(500000)

	changes := DetectChanges(existing, incoming, time.Now())
	assert.Empty(t, changes)
}

func TestDetectChangesMultipleFields(t *testing.T) {
	existing := makeProperty(500000)
	incoming := makeProperty(495000)
	incoming.StandardStatus = "Pending"
	incoming.City = "Round Rock"

	changes := DetectChanges(existing, incoming, time.Now())
	assert.Len(t, changes, 3)

	fields := make(map[string]bool)
	for _, c := range changes {
		fields[c.Field] = true
	}
	assert.True(t, fields["list_price"])
	assert.True(t, fields["standard_status"])
	assert.True(t, fields["city"])
}

// The photo columns on a stored row come from media enrichment, not
// the listing payload; re-normalizing an unchanged payload yields
// empty photo fields and must not log them as changes.
func TestDetectChangesIgnoresEnrichedPhotoFields(t *testing.T) {
	existing := makeProperty(500000)
	existing.MainPhotoURL = "https://cdn.example.test/1.jpg"
	existing.PhotoCount = 5

	incoming := makeProperty(500000)

	changes := DetectChanges(existing, incoming, time.Now())
	assert.Empty(t, changes)
}

func TestDetectChangesNilInputs(t *testing.T) {
	assert.Nil(t, DetectChanges(nil, makeProperty(1), time.Now()))
	assert.Nil(t, DetectChanges(makeProperty(1), nil, time.Now()))
}

// String-converted comparison is the stored behavior: a float that
// stringifies identically to an int is not a change, and formatting
// differences would be.
func TestDetectChangesStringConversion(t *testing.T) {
	existing := makeProperty(500000)
	incoming := makeProperty(500000.0)
	assert.Empty(t, DetectChanges(existing, incoming, time.Now()))
}
