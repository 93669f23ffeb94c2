package models

import "time"

// Agent represents a listing or buyer agent, keyed by the provider id
type Agent struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	AgentKey     string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"agent_key"`
	MlsID        string    `gorm:"type:varchar(64)" json:"mls_id,omitempty"`
	FullName     string    `gorm:"type:varchar(255)" json:"full_name,omitempty"`
	FirstName    string    `gorm:"type:varchar(120)" json:"first_name,omitempty"`
	LastName     string    `gorm:"type:varchar(120)" json:"last_name,omitempty"`
	Email        string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone        string    `gorm:"type:varchar(40)" json:"phone,omitempty"`
	OfficeKey    string    `gorm:"type:varchar(64);index" json:"office_key,omitempty"`
	StateLicense string    `gorm:"type:varchar(64)" json:"state_license,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Agent) TableName() string {
	return "agents"
}
