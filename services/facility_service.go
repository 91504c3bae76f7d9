package services

import (
	"fmt"
	"strings"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// FacilityService manages the facility documents linked to buildings. A
// facility caches the full ancestor chain of its building, which makes it a
// cascade target and a deletion blocker for every tier above it.
type FacilityService struct {
	Store     *Store
	sanitizer *bluemonday.Policy
}

func NewFacilityService(dbConn *gorm.DB) *FacilityService {
	return &FacilityService{
		Store:     NewStore(dbConn),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// List returns every facility, or only those linked to one building.
func (s *FacilityService) List(buildingID string) ([]models.Facility, error) {
	if buildingID != "" {
		return GetList[models.Facility](s.Store, "building_id = ?", buildingID)
	}
	return GetList[models.Facility](s.Store, "1 = 1")
}

// Get performs a point read. Returns (nil, nil) when the id is absent.
func (s *FacilityService) Get(id string) (*models.Facility, error) {
	return GetByID[models.Facility](s.Store, id)
}

// Create validates the referenced building and inserts the facility with its
// ancestor chain hydrated from that building.
func (s *FacilityService) Create(facility *models.Facility) (*models.Facility, error) {
	s.sanitize(facility)
	if facility.DisplayName == "" {
		return nil, &ValidationError{Message: "The displayName field is required"}
	}
	if facility.BuildingID == "" {
		return nil, &ValidationError{Message: "The buildingId field is required"}
	}

	if err := s.hydrateBuilding(facility); err != nil {
		return nil, err
	}

	if facility.ID != "" {
		existing, err := GetByID[models.Facility](s.Store, facility.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &ConflictError{Message: fmt.Sprintf(
				"A facility with id '%s' already exists", facility.ID)}
		}
	}

	return Create(s.Store, facility)
}

// Update replaces a facility document, re-hydrating the ancestor chain from
// the (possibly changed) building. Teams links set by provisioning survive
// the replace. Returns (nil, nil) when the target is absent.
func (s *FacilityService) Update(id string, facility *models.Facility) (*models.Facility, error) {
	if facility.ID != id {
		return nil, &ValidationError{Message: "Path parameter 'facilityId' does not match the id field in the request body"}
	}

	existing, err := GetByID[models.Facility](s.Store, id)
	if err != nil || existing == nil {
		return nil, err
	}

	s.sanitize(facility)
	if facility.DisplayName == "" {
		return nil, &ValidationError{Message: "The displayName field is required"}
	}
	if facility.BuildingID == "" {
		return nil, &ValidationError{Message: "The buildingId field is required"}
	}
	if err := s.hydrateBuilding(facility); err != nil {
		return nil, err
	}

	facility.CreatedAt = existing.CreatedAt
	facility.TeamID = existing.TeamID
	facility.ChannelID = existing.ChannelID

	return Upsert(s.Store, facility)
}

// Delete physically removes a facility document. Facilities carry no status
// field, so there is nothing to soft-delete. Returns (nil, nil) when absent.
func (s *FacilityService) Delete(id string) (*models.Facility, error) {
	return Delete[models.Facility](s.Store, id)
}

// hydrateBuilding resolves the referenced building and copies its identity
// and ancestor chain onto the facility.
func (s *FacilityService) hydrateBuilding(facility *models.Facility) error {
	building, err := GetOne[models.Location](s.Store,
		"id = ? AND type = ? AND status = ?",
		facility.BuildingID, models.TypeBuilding, models.StatusActive)
	if err != nil {
		return err
	}
	if building == nil {
		return &ValidationError{Message: fmt.Sprintf(
			"Could not find active Building location with id '%s'", facility.BuildingID)}
	}
	facility.ApplyBuilding(building)
	return nil
}

// sanitize strips markup from the caller-supplied display fields.
func (s *FacilityService) sanitize(facility *models.Facility) {
	facility.DisplayName = strings.TrimSpace(s.sanitizer.Sanitize(facility.DisplayName))
	facility.Description = strings.TrimSpace(s.sanitizer.Sanitize(facility.Description))
	facility.ContactEmail = strings.TrimSpace(facility.ContactEmail)
}
