package normalize

import (
	"errors"
	"math"
	"time"

	"mls-sync/internal/models"
)

// ErrMissingListingKey marks a raw record without an identity key
var ErrMissingListingKey = errors.New("record has no listing key")

// NormalizeProperty maps a raw provider record to a typed property and
// computes the derived fields. Pure: no I/O, no store access.
func NormalizeProperty(raw map[string]interface{}) (*models.Property, error) {
	m := Normalize(KindProperty, raw)

	listingKey := getString(m, "listing_key")
	if listingKey == "" {
		return nil, ErrMissingListingKey
	}

	p := &models.Property{
		ListingKey:           listingKey,
		ListingID:            getString(m, "listing_id"),
		StandardStatus:       getString(m, "standard_status"),
		MlsStatus:            getString(m, "mls_status"),
		PropertyType:         getString(m, "property_type"),
		PropertySubType:      getString(m, "property_sub_type"),
		ListPrice:            getFloat(m, "list_price"),
		OriginalListPrice:    getFloat(m, "original_list_price"),
		PreviousListPrice:    getFloat(m, "previous_list_price"),
		ClosePrice:           getFloat(m, "close_price"),
		ListingContractDate:  getTime(m, "listing_contract_date"),
		OnMarketDate:         getTime(m, "on_market_date"),
		CloseDate:            getTime(m, "close_date"),
		PurchaseContractDate: getTime(m, "purchase_contract_date"),

		ModificationTimestamp: getTime(m, "modification_timestamp"),
		StatusChangeTimestamp: getTime(m, "status_change_timestamp"),
		PhotosChangeTimestamp: getTime(m, "photos_change_timestamp"),

		ListAgentKey:   getString(m, "list_agent_key"),
		ListOfficeKey:  getString(m, "list_office_key"),
		BuyerAgentKey:  getString(m, "buyer_agent_key"),
		BuyerOfficeKey: getString(m, "buyer_office_key"),

		BedroomsTotal:         getInt(m, "bedrooms_total"),
		BathroomsTotalInteger: getInt(m, "bathrooms_total_integer"),
		BathroomsFull:         getInt(m, "bathrooms_full"),
		BathroomsHalf:         getInt(m, "bathrooms_half"),
		LivingArea:            getFloat(m, "living_area"),
		LotSizeAcres:          getFloat(m, "lot_size_acres"),
		LotSizeSquareFeet:     getFloat(m, "lot_size_square_feet"),
		YearBuilt:             getInt(m, "year_built"),
		StoriesTotal:          getInt(m, "stories_total"),
		Levels:                getString(m, "levels"),
		GarageSpaces:          getFloat(m, "garage_spaces"),
		ParkingTotal:          getFloat(m, "parking_total"),
		PoolPrivateYN:         getInt(m, "pool_private_yn"),
		FireplaceYN:           getInt(m, "fireplace_yn"),
		FireplacesTotal:       getInt(m, "fireplaces_total"),
		NewConstructionYN:     getInt(m, "new_construction_yn"),
		Heating:               getString(m, "heating"),
		Cooling:               getString(m, "cooling"),
		Appliances:            getString(m, "appliances"),
		InteriorFeatures:      getString(m, "interior_features"),
		ExteriorFeatures:      getString(m, "exterior_features"),
		ConstructionMaterials: getString(m, "construction_materials"),
		Roof:                  getString(m, "roof"),
		Flooring:              getString(m, "flooring"),
		ArchitecturalStyle:    getString(m, "architectural_style"),
		PropertyCondition:     getString(m, "property_condition"),

		UnparsedAddress:      getString(m, "unparsed_address"),
		StreetNumber:         getString(m, "street_number"),
		StreetName:           getString(m, "street_name"),
		UnitNumber:           getString(m, "unit_number"),
		City:                 getString(m, "city"),
		StateOrProvince:      getString(m, "state_or_province"),
		PostalCode:           getString(m, "postal_code"),
		CountyOrParish:       getString(m, "county_or_parish"),
		Latitude:             getFloat(m, "latitude"),
		Longitude:            getFloat(m, "longitude"),
		SubdivisionName:      getString(m, "subdivision_name"),
		ElementarySchool:     getString(m, "elementary_school"),
		MiddleOrJuniorSchool: getString(m, "middle_or_junior_school"),
		HighSchool:           getString(m, "high_school"),
		Directions:           getString(m, "directions"),

		TaxAnnualAmount:          getFloat(m, "tax_annual_amount"),
		TaxYear:                  getInt(m, "tax_year"),
		AssociationYN:            getInt(m, "association_yn"),
		AssociationFee:           getFloat(m, "association_fee"),
		AssociationFeeFrequency:  getString(m, "association_fee_frequency"),
		SpecialListingConditions: getString(m, "special_listing_conditions"),
		PublicRemarks:            getString(m, "public_remarks"),
	}

	computeDerivedFields(p, raw)
	return p, nil
}

// computeDerivedFields fills the four computed fields from the mapped
// columns and the raw payload's embedded media list
func computeDerivedFields(p *models.Property, raw map[string]interface{}) {
	p.IsArchived = IsArchivedStatus(p.StandardStatus)

	// Main photo: first embedded media item by declared order
	if mediaList, ok := raw["Media"].([]interface{}); ok {
		p.PhotoCount = len(mediaList)
		bestOrder := math.MaxInt32
		for _, item := range mediaList {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			url, _ := entry["MediaURL"].(string)
			if url == "" {
				continue
			}
			order := 0
			if o, ok := entry["Order"].(float64); ok {
				order = int(o)
			}
			if order < bestOrder {
				bestOrder = order
				p.MainPhotoURL = url
			}
		}
	}

	// Days on market: contract date to close date, or to now while active
	if p.ListingContractDate != nil {
		end := time.Now()
		if p.CloseDate != nil {
			end = *p.CloseDate
		}
		days := int(end.Sub(*p.ListingContractDate).Hours() / 24)
		if days >= 0 {
			p.DaysOnMarket = &days
		}
	}

	// Price per square foot: nil unless both inputs are positive
	if p.ListPrice != nil && p.LivingArea != nil && *p.ListPrice > 0 && *p.LivingArea > 0 {
		pps := math.Round(*p.ListPrice / *p.LivingArea * 100) / 100
		p.PricePerSqft = &pps
	}
}

// NormalizeAgent maps a raw Member record to a typed agent
func NormalizeAgent(raw map[string]interface{}) *models.Agent {
	m := Normalize(KindAgent, raw)
	return &models.Agent{
		AgentKey:     getString(m, "agent_key"),
		MlsID:        getString(m, "mls_id"),
		FullName:     getString(m, "full_name"),
		FirstName:    getString(m, "first_name"),
		LastName:     getString(m, "last_name"),
		Email:        getString(m, "email"),
		Phone:        getString(m, "phone"),
		OfficeKey:    getString(m, "office_key"),
		StateLicense: getString(m, "state_license"),
	}
}

// NormalizeOffice maps a raw Office record to a typed office
func NormalizeOffice(raw map[string]interface{}) *models.Office {
	m := Normalize(KindOffice, raw)
	return &models.Office{
		OfficeKey:  getString(m, "office_key"),
		MlsID:      getString(m, "mls_id"),
		Name:       getString(m, "name"),
		Phone:      getString(m, "phone"),
		Email:      getString(m, "email"),
		Address:    getString(m, "address"),
		City:       getString(m, "city"),
		PostalCode: getString(m, "postal_code"),
	}
}

// NormalizeMedia maps a raw Media record to a typed media row
func NormalizeMedia(raw map[string]interface{}) *models.Media {
	m := Normalize(KindMedia, raw)
	media := &models.Media{
		ListingKey: getString(m, "listing_key"),
		MediaKey:   getString(m, "media_key"),
		MediaURL:   getString(m, "media_url"),
		MediaType:  getString(m, "media_type"),
		Category:   getString(m, "category"),
		Caption:    getString(m, "caption"),
	}
	if order := getInt(m, "sort_order"); order != nil {
		media.SortOrder = *order
	}
	return media
}

// NormalizeOpenHouse maps a raw OpenHouse record to a typed row
func NormalizeOpenHouse(raw map[string]interface{}) *models.OpenHouse {
	m := Normalize(KindOpenHouse, raw)
	return &models.OpenHouse{
		ListingKey:   getString(m, "listing_key"),
		OpenHouseKey: getString(m, "open_house_key"),
		StartTime:    getTime(m, "start_time"),
		EndTime:      getTime(m, "end_time"),
		Remarks:      getString(m, "remarks"),
	}
}
