package normalize

// EntityKind selects the field map used to normalize a raw record
type EntityKind string

const (
	KindProperty  EntityKind = "property"
	KindMedia     EntityKind = "media"
	KindAgent     EntityKind = "agent"
	KindOffice    EntityKind = "office"
	KindOpenHouse EntityKind = "open_house"
)

// FieldMapping pairs a local column with the provider field it is
// sourced from
type FieldMapping struct {
	Local    string
	Provider string
}

// PropertyFieldMap maps local property columns to provider fields.
// Ordered by group: listing, detail, location, financial. Static,
// never mutated at runtime.
var PropertyFieldMap = []FieldMapping{
	// Listing group
	{"listing_key", "ListingKey"},
	{"listing_id", "ListingId"},
	{"standard_status", "StandardStatus"},
	{"mls_status", "MlsStatus"},
	{"property_type", "PropertyType"},
	{"property_sub_type", "PropertySubType"},
	{"list_price", "ListPrice"},
	{"original_list_price", "OriginalListPrice"},
	{"previous_list_price", "PreviousListPrice"},
	{"close_price", "ClosePrice"},
	{"listing_contract_date", "ListingContractDate"},
	{"on_market_date", "OnMarketDate"},
	{"close_date", "CloseDate"},
	{"purchase_contract_date", "PurchaseContractDate"},
	{"modification_timestamp", "ModificationTimestamp"},
	{"status_change_timestamp", "StatusChangeTimestamp"},
	{"photos_change_timestamp", "PhotosChangeTimestamp"},
	{"list_agent_key", "ListAgentKey"},
	{"list_office_key", "ListOfficeKey"},
	{"buyer_agent_key", "BuyerAgentKey"},
	{"buyer_office_key", "BuyerOfficeKey"},

	// Detail group
	{"bedrooms_total", "BedroomsTotal"},
	{"bathrooms_total_integer", "BathroomsTotalInteger"},
	{"bathrooms_full", "BathroomsFull"},
	{"bathrooms_half", "BathroomsHalf"},
	{"living_area", "LivingArea"},
	{"lot_size_acres", "LotSizeAcres"},
	{"lot_size_square_feet", "LotSizeSquareFeet"},
	{"year_built", "YearBuilt"},
	{"stories_total", "StoriesTotal"},
	{"levels", "Levels"},
	{"garage_spaces", "GarageSpaces"},
	{"parking_total", "ParkingTotal"},
	{"pool_private_yn", "PoolPrivateYN"},
	{"fireplace_yn", "FireplaceYN"},
	{"fireplaces_total", "FireplacesTotal"},
	{"new_construction_yn", "NewConstructionYN"},
	{"heating", "Heating"},
	{"cooling", "Cooling"},
	{"appliances", "Appliances"},
	{"interior_features", "InteriorFeatures"},
	{"exterior_features", "ExteriorFeatures"},
	{"construction_materials", "ConstructionMaterials"},
	{"roof", "Roof"},
	{"flooring", "Flooring"},
	{"architectural_style", "ArchitecturalStyle"},
	{"property_condition", "PropertyCondition"},

	// Location group
	{"unparsed_address", "UnparsedAddress"},
	{"street_number", "StreetNumber"},
	{"street_name", "StreetName"},
	{"unit_number", "UnitNumber"},
	{"city", "City"},
	{"state_or_province", "StateOrProvince"},
	{"postal_code", "PostalCode"},
	{"county_or_parish", "CountyOrParish"},
	{"latitude", "Latitude"},
	{"longitude", "Longitude"},
	{"subdivision_name", "SubdivisionName"},
	{"elementary_school", "ElementarySchool"},
	{"middle_or_junior_school", "MiddleOrJuniorSchool"},
	{"high_school", "HighSchool"},
	{"directions", "Directions"},

	// Financial group
	{"tax_annual_amount", "TaxAnnualAmount"},
	{"tax_year", "TaxYear"},
	{"association_yn", "AssociationYN"},
	{"association_fee", "AssociationFee"},
	{"association_fee_frequency", "AssociationFeeFrequency"},
	{"special_listing_conditions", "SpecialListingConditions"},
	{"public_remarks", "PublicRemarks"},
}

// MediaFieldMap maps local media columns to provider fields
var MediaFieldMap = []FieldMapping{
	{"listing_key", "ResourceRecordKey"},
	{"media_key", "MediaKey"},
	{"media_url", "MediaURL"},
	{"media_type", "MediaType"},
	{"category", "MediaCategory"},
	{"caption", "LongDescription"},
	{"sort_order", "Order"},
}

// AgentFieldMap maps local agent columns to provider Member fields
var AgentFieldMap = []FieldMapping{
	{"agent_key", "MemberKey"},
	{"mls_id", "MemberMlsId"},
	{"full_name", "MemberFullName"},
	{"first_name", "MemberFirstName"},
	{"last_name", "MemberLastName"},
	{"email", "MemberEmail"},
	{"phone", "MemberPreferredPhone"},
	{"office_key", "OfficeKey"},
	{"state_license", "MemberStateLicense"},
}

// OfficeFieldMap maps local office columns to provider fields
var OfficeFieldMap = []FieldMapping{
	{"office_key", "OfficeKey"},
	{"mls_id", "OfficeMlsId"},
	{"name", "OfficeName"},
	{"phone", "OfficePhone"},
	{"email", "OfficeEmail"},
	{"address", "OfficeAddress1"},
	{"city", "OfficeCity"},
	{"postal_code", "OfficePostalCode"},
}

// OpenHouseFieldMap maps local open house columns to provider fields
var OpenHouseFieldMap = []FieldMapping{
	{"listing_key", "ListingKey"},
	{"open_house_key", "OpenHouseKey"},
	{"start_time", "OpenHouseStartTime"},
	{"end_time", "OpenHouseEndTime"},
	{"remarks", "OpenHouseRemarks"},
}

// FieldMapFor returns the field map for an entity kind
func FieldMapFor(kind EntityKind) []FieldMapping {
	switch kind {
	case KindProperty:
		return PropertyFieldMap
	case KindMedia:
		return MediaFieldMap
	case KindAgent:
		return AgentFieldMap
	case KindOffice:
		return OfficeFieldMap
	case KindOpenHouse:
		return OpenHouseFieldMap
	}
	return nil
}
