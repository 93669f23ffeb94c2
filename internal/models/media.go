package models

import "time"

// Media represents one photo/attachment belonging to a listing.
// The set for a listing is fully replaced on every enrichment pass.
type Media struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ListingKey string    `gorm:"type:varchar(64);not null;index" json:"listing_key"`
	MediaKey   string    `gorm:"type:varchar(64)" json:"media_key,omitempty"`
	MediaURL   string    `gorm:"type:text;not null" json:"media_url"`
	MediaType  string    `gorm:"type:varchar(40)" json:"media_type,omitempty"`
	Category   string    `gorm:"type:varchar(60)" json:"category,omitempty"`
	Caption    string    `gorm:"type:text" json:"caption,omitempty"`
	SortOrder  int       `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Media) TableName() string {
	return "media"
}

// IsPrimary returns true if this is the main photo
func (m *Media) IsPrimary() bool {
	return m.SortOrder == 0
}
