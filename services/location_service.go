package services

import (
	"fmt"
	"strings"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"gorm.io/gorm"
)

// LocationService implements the hierarchy CRUD for every tier. Which
// columns, labels and route parameters apply is driven by the models.Tiers
// dispatch table rather than by the concrete tier.
type LocationService struct {
	Store *Store
}

func NewLocationService(dbConn *gorm.DB) *LocationService {
	return &LocationService{Store: NewStore(dbConn)}
}

// List returns every active document of a tier.
func (s *LocationService) List(tier models.LocationType) ([]models.Location, error) {
	return GetList[models.Location](s.Store,
		"type = ? AND status = ?", tier, models.StatusActive)
}

// ListByParent returns every active document of a tier under the given parent.
func (s *LocationService) ListByParent(tier models.LocationType, parentID string) ([]models.Location, error) {
	parent := models.Tiers[models.Tiers[tier].Parent]
	return GetList[models.Location](s.Store,
		"type = ? AND status = ? AND "+parent.LinkColumn+" = ?", tier, models.StatusActive, parentID)
}

// Get retrieves a single document, ANDing every supplied path parameter as an
// exact-match filter, and computes the activeRelations summary. Point reads
// carry no status filter, so a soft-deleted document remains retrievable.
// Returns (nil, nil) when nothing matches.
func (s *LocationService) Get(tier models.LocationType, params map[string]string) (*models.Location, error) {
	spec := models.Tiers[tier]
	query := "type = ? AND id = ?"
	args := []interface{}{tier, params[spec.IDParam]}
	for _, anc := range spec.Ancestors {
		query += " AND " + anc.Column + " = ?"
		args = append(args, params[anc.Name])
	}

	location, err := GetOne[models.Location](s.Store, query, args...)
	if err != nil || location == nil {
		return nil, err
	}

	relation, err := s.activeRelation(location)
	if err != nil {
		return nil, err
	}
	location.ActiveRelations = []models.ActiveRelation{relation}
	return location, nil
}

// Create validates the body against the route, hydrates ancestor names and
// inserts the document as Active. A caller-supplied id that already exists
// is a conflict.
func (s *LocationService) Create(tier models.LocationType, body *models.Location, params map[string]string) (*models.Location, error) {
	spec := models.Tiers[tier]
	body.Type = tier
	body.Status = models.StatusActive

	if body.Name == "" {
		return nil, &ValidationError{Message: "The name field is required"}
	}
	if err := validatePathParams(spec, body, params, false); err != nil {
		return nil, err
	}
	if err := s.hydrateAncestors(spec, body); err != nil {
		return nil, err
	}

	if body.ID != "" {
		existing, err := GetByID[models.Location](s.Store, body.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &ConflictError{Message: fmt.Sprintf(
				"A location with id '%s' already exists", body.ID)}
		}
	}

	return Create(s.Store, body)
}

// Update validates the body against the route, replaces the stored document
// and propagates denormalized copies to dependents. Returns (nil, nil) when
// no active document matches the target id.
func (s *LocationService) Update(tier models.LocationType, body *models.Location, params map[string]string) (*models.Location, error) {
	spec := models.Tiers[tier]
	body.Type = tier

	if body.Name == "" {
		return nil, &ValidationError{Message: "The name field is required"}
	}
	if err := validatePathParams(spec, body, params, true); err != nil {
		return nil, err
	}

	original, err := GetOne[models.Location](s.Store,
		"id = ? AND type = ? AND status = ?", body.ID, tier, models.StatusActive)
	if err != nil || original == nil {
		return nil, err
	}

	if err := s.hydrateAncestors(spec, body); err != nil {
		return nil, err
	}

	// Status only changes through Delete; the write is otherwise a full
	// document replace.
	body.Status = original.Status
	body.CreatedAt = original.CreatedAt

	updated, err := Upsert(s.Store, body)
	if err != nil {
		return nil, err
	}

	if err := s.cascadeLocationUpdate(original, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes a document once the guard passes: no active child tier
// and no linked facility may reference it. Returns (nil, nil) when no active
// document matches, a ConflictError listing the blocking ids otherwise.
func (s *LocationService) Delete(tier models.LocationType, params map[string]string) (*models.Location, error) {
	spec := models.Tiers[tier]
	query := "type = ? AND id = ? AND status = ?"
	args := []interface{}{tier, params[spec.IDParam], models.StatusActive}
	for _, anc := range spec.Ancestors {
		query += " AND " + anc.Column + " = ?"
		args = append(args, params[anc.Name])
	}

	location, err := GetOne[models.Location](s.Store, query, args...)
	if err != nil || location == nil {
		return nil, err
	}

	if spec.Child != "" {
		children, err := s.activeChildren(location)
		if err != nil {
			return nil, err
		}
		if len(children) > 0 {
			ids := make([]string, len(children))
			for i, child := range children {
				ids[i] = child.ID
			}
			return nil, &ConflictError{Message: fmt.Sprintf(
				"Cannot delete %s '%s': active %s exist: %s",
				spec.Label, location.ID, spec.ChildLabel, strings.Join(ids, ", "))}
		}
	}

	facilities, err := s.linkedFacilities(location)
	if err != nil {
		return nil, err
	}
	if len(facilities) > 0 {
		ids := make([]string, len(facilities))
		for i, facility := range facilities {
			ids[i] = facility.ID
		}
		return nil, &ConflictError{Message: fmt.Sprintf(
			"Cannot delete %s '%s': linked facilities exist: %s",
			spec.Label, location.ID, strings.Join(ids, ", "))}
	}

	location.Status = models.StatusDeleted
	return Upsert(s.Store, location)
}

// activeChildren lists the active documents of the next tier down that
// reference this location as parent.
func (s *LocationService) activeChildren(location *models.Location) ([]models.Location, error) {
	spec := models.Tiers[location.Type]
	child := models.Tiers[spec.Child]
	return GetList[models.Location](s.Store,
		"type = ? AND status = ? AND "+spec.LinkColumn+" = ?",
		child.Type, models.StatusActive, location.ID)
}

// linkedFacilities lists every facility caching this location's id.
// Facilities carry no status field, so any link blocks deletion.
func (s *LocationService) linkedFacilities(location *models.Location) ([]models.Facility, error) {
	spec := models.Tiers[location.Type]
	return GetList[models.Facility](s.Store, spec.LinkColumn+" = ?", location.ID)
}

// activeRelation summarizes the live children of a location: the next tier
// down for countries through sub-regions, linked facilities for buildings.
func (s *LocationService) activeRelation(location *models.Location) (models.ActiveRelation, error) {
	spec := models.Tiers[location.Type]
	if spec.Child == "" {
		facilities, err := s.linkedFacilities(location)
		if err != nil {
			return models.ActiveRelation{}, err
		}
		return models.ActiveRelation{Name: spec.ChildLabel, ActiveCount: len(facilities)}, nil
	}

	children, err := s.activeChildren(location)
	if err != nil {
		return models.ActiveRelation{}, err
	}
	return models.ActiveRelation{Name: spec.ChildLabel, ActiveCount: len(children)}, nil
}
