package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierTableConsistency(t *testing.T) {
	assert.Len(t, Tiers, len(TierOrder))

	for i, tier := range TierOrder {
		spec := Tiers[tier]
		assert.Equal(t, tier, spec.Type)
		assert.Len(t, spec.Ancestors, i, "ancestor chain length for %s", tier)

		// Parent/child links agree with the order
		if i > 0 {
			assert.Equal(t, TierOrder[i-1], spec.Parent, "parent of %s", tier)
			assert.Equal(t, tier, Tiers[spec.Parent].Child, "child of %s's parent", tier)
			assert.Equal(t, spec.Parent, spec.Ancestors[len(spec.Ancestors)-1].Tier)
		} else {
			assert.Empty(t, spec.Parent)
		}
	}
}

func TestAncestorID(t *testing.T) {
	location := &Location{
		AncestorRefs: AncestorRefs{
			CountryID: "c1", StateID: "s1", RegionID: "r1", SubRegionID: "sr1",
		},
	}

	assert.Equal(t, "c1", location.AncestorID(TypeCountry))
	assert.Equal(t, "s1", location.AncestorID(TypeState))
	assert.Equal(t, "r1", location.AncestorID(TypeRegion))
	assert.Equal(t, "sr1", location.AncestorID(TypeSubRegion))
}

func TestSetAncestorName(t *testing.T) {
	location := &Location{}
	location.SetAncestorName(TypeCountry, "USA")
	location.SetAncestorName(TypeState, "California")

	assert.Equal(t, "USA", location.CountryName)
	assert.Equal(t, "California", location.StateName)
}

func TestApplySetters(t *testing.T) {
	country := &Location{ID: "c1", Name: "USA", Type: TypeCountry}
	state := &Location{ID: "s1", Name: "California", Type: TypeState,
		AncestorRefs: AncestorRefs{CountryID: "c1", CountryName: "USA"}}

	var refs AncestorRefs
	refs.ApplyCountry(country)
	assert.Equal(t, "c1", refs.CountryID)
	assert.Equal(t, "USA", refs.CountryName)

	refs.ApplyState(state)
	assert.Equal(t, "s1", refs.StateID)
	assert.Equal(t, "California", refs.StateName)
	// Reapplying a state refreshes the country refs it carries
	assert.Equal(t, "c1", refs.CountryID)

	building := &Location{ID: "b1", Name: "Main Building", Type: TypeBuilding,
		AncestorRefs: AncestorRefs{CountryID: "c1", CountryName: "USA"}}
	facility := &Facility{DisplayName: "Courtroom 1"}
	facility.ApplyBuilding(building)
	assert.Equal(t, "b1", facility.BuildingID)
	assert.Equal(t, "Main Building", facility.BuildingName)
	assert.Equal(t, "USA", facility.CountryName)
}
