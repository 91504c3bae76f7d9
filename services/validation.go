package services

import (
	"fmt"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
)

// validatePathParams confirms the request body is structurally consistent
// with the route it arrived on: every ancestor id embedded in the body must
// equal the corresponding path parameter, and on update the body's own id
// must equal the path id. Checks run most-specific route segment last so the
// reported parameter is the outermost mismatch.
func validatePathParams(tier models.TierSpec, body *models.Location, params map[string]string, isUpdate bool) error {
	for _, anc := range tier.Ancestors {
		if body.AncestorID(anc.Tier) != params[anc.Name] {
			return &ValidationError{Message: fmt.Sprintf(
				"Path parameter '%s' does not match the %s field in the request body", anc.Name, anc.Name)}
		}
	}
	if isUpdate && body.ID != params[tier.IDParam] {
		return &ValidationError{Message: fmt.Sprintf(
			"Path parameter '%s' does not match the id field in the request body", tier.IDParam)}
	}
	return nil
}

// hydrateAncestors resolves each ancestor id on the body to an Active
// document of the expected tier and copies its name into the matching
// denormalized field. The first unresolvable ancestor aborts with a
// descriptive validation error and nothing is written.
func (s *LocationService) hydrateAncestors(tier models.TierSpec, body *models.Location) error {
	for _, anc := range tier.Ancestors {
		id := body.AncestorID(anc.Tier)
		parent, err := GetOne[models.Location](s.Store,
			"id = ? AND type = ? AND status = ?", id, anc.Tier, models.StatusActive)
		if err != nil {
			return err
		}
		if parent == nil {
			return &ValidationError{Message: fmt.Sprintf(
				"Could not find active %s location with id '%s'", models.Tiers[anc.Tier].Label, id)}
		}
		body.SetAncestorName(anc.Tier, parent.Name)
	}
	return nil
}
