package services

import (
	"log"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
)

// cascadeLocationUpdate propagates denormalized ancestor copies to dependent
// documents after a tier update. It compares the original and updated
// documents field-by-field and runs only when a name changed or the tier was
// re-parented. Dependents are rewritten one at a time with full-document
// replaces; there is no transaction spanning the parent write and the
// cascade, and a failed dependent write aborts the walk without rollback.
func (s *LocationService) cascadeLocationUpdate(original, updated *models.Location) error {
	switch updated.Type {
	case models.TypeCountry:
		if original.Name == updated.Name {
			return nil
		}
		return s.rewriteDependents(updated, "country_id = ?",
			func(l *models.Location) { l.ApplyCountry(updated) },
			func(f *models.Facility) { f.ApplyCountry(updated) })

	case models.TypeState:
		if original.Name == updated.Name && original.CountryID == updated.CountryID {
			return nil
		}
		return s.rewriteDependents(updated, "state_id = ?",
			func(l *models.Location) { l.ApplyState(updated) },
			func(f *models.Facility) { f.ApplyState(updated) })

	case models.TypeRegion:
		if original.Name == updated.Name && original.StateID == updated.StateID {
			return nil
		}
		return s.rewriteDependents(updated, "region_id = ?",
			func(l *models.Location) { l.ApplyRegion(updated) },
			func(f *models.Facility) { f.ApplyRegion(updated) })

	case models.TypeSubRegion:
		if original.Name == updated.Name && original.RegionID == updated.RegionID {
			return nil
		}
		return s.rewriteDependents(updated, "sub_region_id = ?",
			func(l *models.Location) { l.ApplySubRegion(updated) },
			func(f *models.Facility) { f.ApplySubRegion(updated) })

	case models.TypeBuilding:
		if original.Name == updated.Name && original.SubRegionID == updated.SubRegionID {
			return nil
		}
		// Buildings have no child tier; only facility documents cache them.
		facilities, err := GetList[models.Facility](s.Store, "building_id = ?", updated.ID)
		if err != nil {
			return err
		}
		for i := range facilities {
			facilities[i].ApplyBuilding(updated)
			if _, err := Upsert(s.Store, &facilities[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// rewriteDependents reads every dependent location (active only) and facility
// document matching filter on the updated tier's id and writes back the
// applied copies sequentially.
func (s *LocationService) rewriteDependents(updated *models.Location, filter string,
	applyLocation func(*models.Location), applyFacility func(*models.Facility)) error {

	locations, err := GetList[models.Location](s.Store, filter+" AND status = ?", updated.ID, models.StatusActive)
	if err != nil {
		return err
	}
	for i := range locations {
		applyLocation(&locations[i])
		if _, err := Upsert(s.Store, &locations[i]); err != nil {
			return err
		}
	}

	// Facilities carry no status field, so none of them are filtered out.
	facilities, err := GetList[models.Facility](s.Store, filter, updated.ID)
	if err != nil {
		return err
	}
	for i := range facilities {
		applyFacility(&facilities[i])
		if _, err := Upsert(s.Store, &facilities[i]); err != nil {
			return err
		}
	}

	if n := len(locations) + len(facilities); n > 0 {
		log.Printf("Cascaded %s '%s' update to %d dependent document(s)", updated.Type, updated.ID, n)
	}
	return nil
}
