package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsActive(t *testing.T) {
	p := &Property{ListingKey: "L1"}
	assert.True(t, p.IsActive())

	p.IsArchived = true
	assert.False(t, p.IsActive())
}

func TestPreservePhotoFieldsCarriesEnrichedValues(t *testing.T) {
	existing := &Property{
		ListingKey:   "L1",
		MainPhotoURL: "https://cdn.example.test/1.jpg",
		PhotoCount:   5,
	}
	incoming := &Property{ListingKey: "L1"}

	incoming.PreservePhotoFields(existing)

	assert.Equal(t, "https://cdn.example.test/1.jpg", incoming.MainPhotoURL)
	assert.Equal(t, 5, incoming.PhotoCount)
}

func TestPreservePhotoFieldsKeepsEmbeddedMedia(t *testing.T) {
	existing := &Property{
		ListingKey:   "L1",
		MainPhotoURL: "https://cdn.example.test/old.jpg",
		PhotoCount:   3,
	}
	incoming := &Property{
		ListingKey:   "L1",
		MainPhotoURL: "https://cdn.example.test/new.jpg",
		PhotoCount:   8,
	}

	incoming.PreservePhotoFields(existing)

	assert.Equal(t, "https://cdn.example.test/new.jpg", incoming.MainPhotoURL)
	assert.Equal(t, 8, incoming.PhotoCount)
}
