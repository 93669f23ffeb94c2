package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePropertyMapsAndTypes(t *testing.T) {
	raw := map[string]interface{}{
		"ListingKey":            "LK200",
		"ListingId":             "MLS-200",
		"StandardStatus":        "Active",
		"PropertyType":          "Residential",
		"ListPrice":             525000.0,
		"LivingArea":            2100.0,
		"BedroomsTotal":         4.0,
		"BathroomsFull":         2.0,
		"YearBuilt":             1998.0,
		"City":                  "Austin",
		"StateOrProvince":       "TX",
		"PostalCode":            "78704",
		"Latitude":              30.25,
		"Longitude":             -97.75,
		"ListAgentKey":          "AG1",
		"ListOfficeKey":         "OF1",
		"PoolPrivateYN":         false,
		"Appliances":            []interface{}{"Dishwasher", "Range"},
		"ModificationTimestamp": "2026-02-01T10:30:00Z",
		"ListingContractDate":   "2026-01-01",
	}

	p, err := NormalizeProperty(raw)
	require.NoError(t, err)

	assert.Equal(t, "LK200", p.ListingKey)
	assert.Equal(t, "MLS-200", p.ListingID)
	assert.Equal(t, "Active", p.StandardStatus)
	require.NotNil(t, p.ListPrice)
	assert.Equal(t, 525000.0, *p.ListPrice)
	require.NotNil(t, p.BedroomsTotal)
	assert.Equal(t, 4, *p.BedroomsTotal)
	require.NotNil(t, p.YearBuilt)
	assert.Equal(t, 1998, *p.YearBuilt)
	require.NotNil(t, p.PoolPrivateYN)
	assert.Equal(t, 0, *p.PoolPrivateYN)
	assert.Equal(t, `["Dishwasher","Range"]`, p.Appliances)
	require.NotNil(t, p.ModificationTimestamp)
	assert.Equal(t, time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC), p.ModificationTimestamp.UTC())
	require.NotNil(t, p.ListingContractDate)
}

func TestNormalizePropertyMissingListingKey(t *testing.T) {
	_, err := NormalizeProperty(map[string]interface{}{"ListPrice": 100.0})
	assert.ErrorIs(t, err, ErrMissingListingKey)

	// Whitespace-only keys collapse to nil during coercion
	_, err = NormalizeProperty(map[string]interface{}{"ListingKey": "   "})
	assert.ErrorIs(t, err, ErrMissingListingKey)
}

func TestComputedIsArchived(t *testing.T) {
	p, err := NormalizeProperty(map[string]interface{}{
		"ListingKey":     "LK1",
		"StandardStatus": "Closed",
	})
	require.NoError(t, err)
	assert.True(t, p.IsArchived)

	p, err = NormalizeProperty(map[string]interface{}{
		"ListingKey":     "LK2",
		"StandardStatus": "Active",
	})
	require.NoError(t, err)
	assert.False(t, p.IsArchived)
}

func TestComputedMainPhoto(t *testing.T) {
	raw := map[string]interface{}{
		"ListingKey": "LK3",
		"Media": []interface{}{
			map[string]interface{}{"MediaURL": "https://cdn.example.com/b.jpg", "Order": 2.0},
			map[string]interface{}{"MediaURL": "https://cdn.example.com/a.jpg", "Order": 0.0},
			map[string]interface{}{"MediaURL": "https://cdn.example.com/c.jpg", "Order": 5.0},
		},
	}

	p, err := NormalizeProperty(raw)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.jpg", p.MainPhotoURL)
	assert.Equal(t, 3, p.PhotoCount)
}

func TestComputedDaysOnMarket(t *testing.T) {
	// Closed listing: contract date to close date
	p, err := NormalizeProperty(map[string]interface{}{
		"ListingKey":          "LK4",
		"ListingContractDate": "2026-01-01",
		"CloseDate":           "2026-01-31",
	})
	require.NoError(t, err)
	require.NotNil(t, p.DaysOnMarket)
	assert.Equal(t, 30, *p.DaysOnMarket)

	// Active listing: contract date to now
	p, err = NormalizeProperty(map[string]interface{}{
		"ListingKey":          "LK5",
		"ListingContractDate": time.Now().AddDate(0, 0, -10).Format("2006-01-02"),
	})
	require.NoError(t, err)
	require.NotNil(t, p.DaysOnMarket)
	assert.Equal(t, 10, *p.DaysOnMarket)

	// No contract date: not computed
	p, err = NormalizeProperty(map[string]interface{}{"ListingKey": "LK6"})
	require.NoError(t, err)
	assert.Nil(t, p.DaysOnMarket)
}

func TestComputedPricePerSqft(t *testing.T) {
	p, err := NormalizeProperty(map[string]interface{}{
		"ListingKey": "LK7",
		"ListPrice":  500000.0,
		"LivingArea": 2000.0,
	})
	require.NoError(t, err)
	require.NotNil(t, p.PricePerSqft)
	assert.Equal(t, 250.0, *p.PricePerSqft)

	// Non-positive living area: nil
	p, err = NormalizeProperty(map[string]interface{}{
		"ListingKey": "LK8",
		"ListPrice":  500000.0,
		"LivingArea": 0.0,
	})
	require.NoError(t, err)
	assert.Nil(t, p.PricePerSqft)

	// Missing price: nil
	p, err = NormalizeProperty(map[string]interface{}{
		"ListingKey": "LK9",
		"LivingArea": 2000.0,
	})
	require.NoError(t, err)
	assert.Nil(t, p.PricePerSqft)
}

func TestNormalizeRelatedEntities(t *testing.T) {
	agent := NormalizeAgent(map[string]interface{}{
		"MemberKey":      "AG9",
		"MemberFullName": "Jane Realtor",
		"OfficeKey":      "OF9",
	})
	assert.Equal(t, "AG9", agent.AgentKey)
	assert.Equal(t, "Jane Realtor", agent.FullName)
	assert.Equal(t, "OF9", agent.OfficeKey)

	office := NormalizeOffice(map[string]interface{}{
		"OfficeKey":  "OF9",
		"OfficeName": "Big Brokerage",
	})
	assert.Equal(t, "OF9", office.OfficeKey)
	assert.Equal(t, "Big Brokerage", office.Name)

	media := NormalizeMedia(map[string]interface{}{
		"ResourceRecordKey": "LK9",
		"MediaURL":          "https://cdn.example.com/x.jpg",
		"Order":             3.0,
	})
	assert.Equal(t, "LK9", media.ListingKey)
	assert.Equal(t, 3, media.SortOrder)

	openHouse := NormalizeOpenHouse(map[string]interface{}{
		"ListingKey":         "LK9",
		"OpenHouseStartTime": "2026-03-01T17:00:00Z",
		"OpenHouseEndTime":   "2026-03-01T19:00:00Z",
	})
	assert.Equal(t, "LK9", openHouse.ListingKey)
	require.NotNil(t, openHouse.StartTime)
	require.NotNil(t, openHouse.EndTime)
}
