package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Facility is a leaf document linked to a building. It is not a location
// itself but carries the same flattened ancestor chain, so it is a cascade
// target, and any facility linked to a location blocks that location's
// deletion. Facilities have no status field; deleting one removes the
// document.
type Facility struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DisplayName  string `gorm:"size:200;not null" json:"displayName"`
	Description  string `json:"description,omitempty"`
	ContactEmail string `gorm:"size:320" json:"contactEmail,omitempty"`

	BuildingID   string `gorm:"index;not null" json:"buildingId"`
	BuildingName string `json:"buildingName,omitempty"`
	AncestorRefs

	// Teams resources created by provisioning
	TeamID    string `json:"teamId,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
}

// BeforeCreate hook to generate UUID
func (f *Facility) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Facility) TableName() string {
	return "facilities"
}

// ApplyBuilding copies a building's identity and full cached ancestor chain.
func (f *Facility) ApplyBuilding(b *Location) {
	f.BuildingID = b.ID
	f.BuildingName = b.Name
	f.AncestorRefs = b.AncestorRefs
}
