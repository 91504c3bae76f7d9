package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationType discriminates the hierarchy tiers stored in the locations collection.
type LocationType string

const (
	TypeCountry   LocationType = "country"
	TypeState     LocationType = "state"
	TypeRegion    LocationType = "region"
	TypeSubRegion LocationType = "subregion"
	TypeBuilding  LocationType = "building"
)

// LocationStatus is the lifecycle state of a location document. Documents are
// never physically removed; delete flips the status to Deleted.
type LocationStatus string

const (
	StatusActive  LocationStatus = "Active"
	StatusDeleted LocationStatus = "Deleted"
)

// ActiveRelation summarizes the live children (or linked facilities) of a
// location. Computed on retrieval, never persisted.
type ActiveRelation struct {
	Name        string `json:"name"`
	ActiveCount int    `json:"activeCount"`
}

// AncestorRefs is the denormalized ancestor id/name chain embedded by every
// tier below Country and by facility documents. The document store has no
// foreign keys, so these cached copies are kept consistent procedurally: when
// an ancestor is renamed or re-parented the cascade rewrites dependents
// through the Apply* setters below.
type AncestorRefs struct {
	CountryID     string `gorm:"index" json:"countryId,omitempty"`
	CountryName   string `json:"countryName,omitempty"`
	StateID       string `gorm:"index" json:"stateId,omitempty"`
	StateName     string `json:"stateName,omitempty"`
	RegionID      string `gorm:"index" json:"regionId,omitempty"`
	RegionName    string `json:"regionName,omitempty"`
	SubRegionID   string `gorm:"index" json:"subRegionId,omitempty"`
	SubRegionName string `json:"subRegionName,omitempty"`
}

// ApplyCountry copies a country's identity onto a dependent document.
func (a *AncestorRefs) ApplyCountry(c *Location) {
	a.CountryID = c.ID
	a.CountryName = c.Name
}

// ApplyState copies a state's identity and its cached country chain.
func (a *AncestorRefs) ApplyState(s *Location) {
	a.StateID = s.ID
	a.StateName = s.Name
	a.CountryID = s.CountryID
	a.CountryName = s.CountryName
}

// ApplyRegion copies a region's identity and its cached state/country chain.
func (a *AncestorRefs) ApplyRegion(r *Location) {
	a.RegionID = r.ID
	a.RegionName = r.Name
	a.StateID = r.StateID
	a.StateName = r.StateName
	a.CountryID = r.CountryID
	a.CountryName = r.CountryName
}

// ApplySubRegion copies a sub-region's identity and its full cached chain.
func (a *AncestorRefs) ApplySubRegion(sr *Location) {
	a.SubRegionID = sr.ID
	a.SubRegionName = sr.Name
	a.RegionID = sr.RegionID
	a.RegionName = sr.RegionName
	a.StateID = sr.StateID
	a.StateName = sr.StateName
	a.CountryID = sr.CountryID
	a.CountryName = sr.CountryName
}

// Location is a single document in the locations collection. All tiers share
// the collection; Type tells them apart and ancestor fields a tier does not
// use stay empty.
type Location struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name            string         `gorm:"size:200;not null" json:"name"`
	NameAbbreviated string         `gorm:"size:50" json:"nameAbbreviated,omitempty"` // regions only
	Status          LocationStatus `gorm:"size:10;index" json:"status"`
	Type            LocationType   `gorm:"size:10;index" json:"type"`

	AncestorRefs

	// Computed on single-item retrieval
	ActiveRelations []ActiveRelation `gorm:"-" json:"activeRelations,omitempty"`
}

// BeforeCreate hook to generate UUID
func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Location) TableName() string {
	return "locations"
}

// AncestorID returns the cached parent-chain id for the given tier.
func (l *Location) AncestorID(t LocationType) string {
	switch t {
	case TypeCountry:
		return l.CountryID
	case TypeState:
		return l.StateID
	case TypeRegion:
		return l.RegionID
	case TypeSubRegion:
		return l.SubRegionID
	}
	return ""
}

// SetAncestorName fills the cached name for the given ancestor tier.
func (l *Location) SetAncestorName(t LocationType, name string) {
	switch t {
	case TypeCountry:
		l.CountryName = name
	case TypeState:
		l.StateName = name
	case TypeRegion:
		l.RegionName = name
	case TypeSubRegion:
		l.SubRegionName = name
	}
}
