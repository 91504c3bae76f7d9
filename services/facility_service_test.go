package services

import (
	"testing"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"

	"github.com/stretchr/testify/assert"
)

func TestFacilityCreate(t *testing.T) {
	database := setupLocationTestDB(t)
	seedHierarchy(t, database)
	svc := NewFacilityService(database)

	t.Run("hydrates chain from building", func(t *testing.T) {
		facility, err := svc.Create(&models.Facility{
			ID: "f2", DisplayName: "Courtroom 2", BuildingID: "b1",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Main Building", facility.BuildingName)
		assert.Equal(t, "USA", facility.CountryName)
		assert.Equal(t, "California", facility.StateName)
		assert.Equal(t, "Bay Area", facility.SubRegionName)
	})

	t.Run("sanitizes markup", func(t *testing.T) {
		facility, err := svc.Create(&models.Facility{
			DisplayName: "<script>alert(1)</script>Courtroom 3",
			Description: "<b>Hearings</b> only",
			BuildingID:  "b1",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Courtroom 3", facility.DisplayName)
		assert.Equal(t, "Hearings only", facility.Description)
	})

	t.Run("requires display name and building", func(t *testing.T) {
		_, err := svc.Create(&models.Facility{BuildingID: "b1"})
		assert.IsType(t, &ValidationError{}, err)

		_, err = svc.Create(&models.Facility{DisplayName: "No Building"})
		assert.IsType(t, &ValidationError{}, err)
	})

	t.Run("rejects unknown building", func(t *testing.T) {
		_, err := svc.Create(&models.Facility{DisplayName: "Orphan", BuildingID: "missing"})
		assert.IsType(t, &ValidationError{}, err)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		_, err := svc.Create(&models.Facility{ID: "f1", DisplayName: "Again", BuildingID: "b1"})
		assert.IsType(t, &ConflictError{}, err)
	})
}

func TestFacilityUpdate(t *testing.T) {
	database := setupLocationTestDB(t)
	seedHierarchy(t, database)
	svc := NewFacilityService(database)

	t.Run("preserves team links", func(t *testing.T) {
		existing := getFacility(t, database, "f1")
		existing.TeamID = "team-1"
		existing.ChannelID = "channel-1"
		_, err := Upsert(svc.Store, existing)
		assert.NoError(t, err)

		updated, err := svc.Update("f1", &models.Facility{
			ID: "f1", DisplayName: "Renamed Courtroom", BuildingID: "b1",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Renamed Courtroom", updated.DisplayName)
		assert.Equal(t, "team-1", updated.TeamID)
		assert.Equal(t, "channel-1", updated.ChannelID)
	})

	t.Run("id mismatch", func(t *testing.T) {
		_, err := svc.Update("f1", &models.Facility{ID: "other", DisplayName: "X", BuildingID: "b1"})
		assert.IsType(t, &ValidationError{}, err)
	})

	t.Run("missing target", func(t *testing.T) {
		updated, err := svc.Update("ghost", &models.Facility{ID: "ghost", DisplayName: "X", BuildingID: "b1"})
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestFacilityListAndDelete(t *testing.T) {
	database := setupLocationTestDB(t)
	seedHierarchy(t, database)
	svc := NewFacilityService(database)

	all, err := svc.List("")
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	byBuilding, err := svc.List("b1")
	assert.NoError(t, err)
	assert.Len(t, byBuilding, 1)

	none, err := svc.List("other")
	assert.NoError(t, err)
	assert.Empty(t, none)

	deleted, err := svc.Delete("f1")
	assert.NoError(t, err)
	assert.NotNil(t, deleted)

	// Physical delete: a point read now misses
	gone, err := svc.Get("f1")
	assert.NoError(t, err)
	assert.Nil(t, gone)
}
