package models

import "time"

// Property is the canonical denormalized listing record.
// Identity is ListingKey: provider-assigned, immutable, globally unique.
type Property struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"-"`

	// Listing group
	ListingKey           string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"listing_key"`
	ListingID            string     `gorm:"type:varchar(64)" json:"listing_id,omitempty"`
	StandardStatus       string     `gorm:"type:varchar(40);index" json:"standard_status,omitempty"`
	MlsStatus            string     `gorm:"type:varchar(40)" json:"mls_status,omitempty"`
	PropertyType         string     `gorm:"type:varchar(60);index" json:"property_type,omitempty"`
	PropertySubType      string     `gorm:"type:varchar(60)" json:"property_sub_type,omitempty"`
	ListPrice            *float64   `gorm:"type:decimal(14,2);index" json:"list_price,omitempty"`
	OriginalListPrice    *float64   `gorm:"type:decimal(14,2)" json:"original_list_price,omitempty"`
	PreviousListPrice    *float64   `gorm:"type:decimal(14,2)" json:"previous_list_price,omitempty"`
	ClosePrice           *float64   `gorm:"type:decimal(14,2)" json:"close_price,omitempty"`
	ListingContractDate  *time.Time `gorm:"type:date" json:"listing_contract_date,omitempty"`
	OnMarketDate         *time.Time `gorm:"type:date" json:"on_market_date,omitempty"`
	CloseDate            *time.Time `gorm:"type:date" json:"close_date,omitempty"`
	PurchaseContractDate *time.Time `gorm:"type:date" json:"purchase_contract_date,omitempty"`

	// Provider timestamps
	ModificationTimestamp *time.Time `gorm:"type:datetime;index" json:"modification_timestamp,omitempty"`
	StatusChangeTimestamp *time.Time `gorm:"type:datetime" json:"status_change_timestamp,omitempty"`
	PhotosChangeTimestamp *time.Time `gorm:"type:datetime" json:"photos_change_timestamp,omitempty"`

	// Related-entity keys
	ListAgentKey   string `gorm:"type:varchar(64);index" json:"list_agent_key,omitempty"`
	ListOfficeKey  string `gorm:"type:varchar(64);index" json:"list_office_key,omitempty"`
	BuyerAgentKey  string `gorm:"type:varchar(64)" json:"buyer_agent_key,omitempty"`
	BuyerOfficeKey string `gorm:"type:varchar(64)" json:"buyer_office_key,omitempty"`

	// Detail group
	BedroomsTotal         *int     `gorm:"type:int" json:"bedrooms_total,omitempty"`
	BathroomsTotalInteger *int     `gorm:"type:int" json:"bathrooms_total_integer,omitempty"`
	BathroomsFull         *int     `gorm:"type:int" json:"bathrooms_full,omitempty"`
	BathroomsHalf         *int     `gorm:"type:int" json:"bathrooms_half,omitempty"`
	LivingArea            *float64 `gorm:"type:decimal(12,2)" json:"living_area,omitempty"`
	LotSizeAcres          *float64 `gorm:"type:decimal(12,4)" json:"lot_size_acres,omitempty"`
	LotSizeSquareFeet     *float64 `gorm:"type:decimal(14,2)" json:"lot_size_square_feet,omitempty"`
	YearBuilt             *int     `gorm:"type:int" json:"year_built,omitempty"`
	StoriesTotal          *int     `gorm:"type:int" json:"stories_total,omitempty"`
	Levels                string   `gorm:"type:varchar(255)" json:"levels,omitempty"`
	GarageSpaces          *float64 `gorm:"type:decimal(6,1)" json:"garage_spaces,omitempty"`
	ParkingTotal          *float64 `gorm:"type:decimal(6,1)" json:"parking_total,omitempty"`
	PoolPrivateYN         *int     `gorm:"type:tinyint" json:"pool_private_yn,omitempty"`
	FireplaceYN           *int     `gorm:"type:tinyint" json:"fireplace_yn,omitempty"`
	FireplacesTotal       *int     `gorm:"type:int" json:"fireplaces_total,omitempty"`
	NewConstructionYN     *int     `gorm:"type:tinyint" json:"new_construction_yn,omitempty"`
	Heating               string   `gorm:"type:text" json:"heating,omitempty"`
	Cooling               string   `gorm:"type:text" json:"cooling,omitempty"`
	Appliances            string   `gorm:"type:text" json:"appliances,omitempty"`
	InteriorFeatures      string   `gorm:"type:text" json:"interior_features,omitempty"`
	ExteriorFeatures      string   `gorm:"type:text" json:"exterior_features,omitempty"`
	ConstructionMaterials string   `gorm:"type:text" json:"construction_materials,omitempty"`
	Roof                  string   `gorm:"type:varchar(255)" json:"roof,omitempty"`
	Flooring              string   `gorm:"type:text" json:"flooring,omitempty"`
	ArchitecturalStyle    string   `gorm:"type:varchar(255)" json:"architectural_style,omitempty"`
	PropertyCondition     string   `gorm:"type:varchar(255)" json:"property_condition,omitempty"`

	// Location group
	UnparsedAddress      string   `gorm:"type:varchar(500)" json:"unparsed_address,omitempty"`
	StreetNumber         string   `gorm:"type:varchar(40)" json:"street_number,omitempty"`
	StreetName           string   `gorm:"type:varchar(255)" json:"street_name,omitempty"`
	UnitNumber           string   `gorm:"type:varchar(40)" json:"unit_number,omitempty"`
	City                 string   `gorm:"type:varchar(120);index" json:"city,omitempty"`
	StateOrProvince      string   `gorm:"type:varchar(40)" json:"state_or_province,omitempty"`
	PostalCode           string   `gorm:"type:varchar(20);index" json:"postal_code,omitempty"`
	CountyOrParish       string   `gorm:"type:varchar(120)" json:"county_or_parish,omitempty"`
	Latitude             *float64 `gorm:"type:decimal(10,6)" json:"latitude,omitempty"`
	Longitude            *float64 `gorm:"type:decimal(10,6)" json:"longitude,omitempty"`
	SubdivisionName      string   `gorm:"type:varchar(255)" json:"subdivision_name,omitempty"`
	ElementarySchool     string   `gorm:"type:varchar(255)" json:"elementary_school,omitempty"`
	MiddleOrJuniorSchool string   `gorm:"type:varchar(255)" json:"middle_or_junior_school,omitempty"`
	HighSchool           string   `gorm:"type:varchar(255)" json:"high_school,omitempty"`
	Directions           string   `gorm:"type:text" json:"directions,omitempty"`

	// Financial group
	TaxAnnualAmount          *float64 `gorm:"type:decimal(14,2)" json:"tax_annual_amount,omitempty"`
	TaxYear                  *int     `gorm:"type:int" json:"tax_year,omitempty"`
	AssociationYN            *int     `gorm:"type:tinyint" json:"association_yn,omitempty"`
	AssociationFee           *float64 `gorm:"type:decimal(12,2)" json:"association_fee,omitempty"`
	AssociationFeeFrequency  string   `gorm:"type:varchar(40)" json:"association_fee_frequency,omitempty"`
	SpecialListingConditions string   `gorm:"type:varchar(255)" json:"special_listing_conditions,omitempty"`
	PublicRemarks            string   `gorm:"type:text" json:"public_remarks,omitempty"`

	// Computed fields
	IsArchived   bool     `gorm:"not null;default:false;index" json:"is_archived"`
	MainPhotoURL string   `gorm:"type:text" json:"main_photo_url,omitempty"`
	PhotoCount   int      `gorm:"not null;default:0" json:"photo_count"`
	DaysOnMarket *int     `gorm:"type:int" json:"days_on_market,omitempty"`
	PricePerSqft *float64 `gorm:"type:decimal(12,2)" json:"price_per_sqft,omitempty"`

	// Timestamps
	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Property) TableName() string {
	return "properties"
}

// IsActive reports whether the listing is still on the market
func (p *Property) IsActive() bool {
	return !p.IsArchived
}

// PreservePhotoFields carries the denormalized photo columns forward
// from the stored row. The listing payload normally carries no embedded
// media; those columns are written by the media enrichment pass and
// must survive a re-save of the listing fields.
func (p *Property) PreservePhotoFields(existing *Property) {
	if p.MainPhotoURL == "" && p.PhotoCount == 0 {
		p.MainPhotoURL = existing.MainPhotoURL
		p.PhotoCount = existing.PhotoCount
	}
}
