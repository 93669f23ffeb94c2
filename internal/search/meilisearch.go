package search

import (
	"mls-sync/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

// SearchClient maintains the property search index that downstream
// search features consume. The extraction engine only writes to it.
type SearchClient struct {
	client *meilisearch.Client
	index  string
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "properties",
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	// Create index if it doesn't exist
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "listing_key",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	// Configure searchable attributes
	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"unparsed_address",
		"city",
		"postal_code",
		"subdivision_name",
		"public_remarks",
		"listing_id",
	})
	if err != nil {
		return err
	}

	// Configure filterable attributes
	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"listing_key",
		"standard_status",
		"property_type",
		"property_sub_type",
		"city",
		"postal_code",
		"list_price",
		"bedrooms_total",
		"bathrooms_total_integer",
		"living_area",
		"year_built",
		"is_archived",
	})
	if err != nil {
		return err
	}

	// Configure sortable attributes
	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"list_price",
		"living_area",
		"year_built",
		"days_on_market",
		"price_per_sqft",
		"modification_timestamp",
	})
	if err != nil {
		return err
	}

	return nil
}

// IndexProperty indexes a single property
func (s *SearchClient) IndexProperty(property *models.Property) error {
	_, err := s.client.Index(s.index).AddDocuments([]models.Property{*property})
	return err
}

// IndexProperties indexes multiple properties
func (s *SearchClient) IndexProperties(properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(properties)
	return err
}

// DeleteProperty removes a listing from the index
func (s *SearchClient) DeleteProperty(listingKey string) error {
	_, err := s.client.Index(s.index).DeleteDocument(listingKey)
	return err
}
