package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/services"

	"github.com/stretchr/testify/assert"
)

func TestListFacilitiesHandler(t *testing.T) {
	database := setupTestDB(t)
	seedTestHierarchy(t, database)

	t.Run("all facilities", func(t *testing.T) {
		c, rec := setupEcho(http.MethodGet, "/facilities", nil)
		assert.NoError(t, ListFacilitiesHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var facilities []models.Facility
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &facilities))
		assert.Len(t, facilities, 1)
	})

	t.Run("filtered by building", func(t *testing.T) {
		c, rec := setupEcho(http.MethodGet, "/facilities?buildingId=other", nil)
		assert.NoError(t, ListFacilitiesHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var facilities []models.Facility
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &facilities))
		assert.Empty(t, facilities)
	})
}

func TestGetFacilityHandler(t *testing.T) {
	database := setupTestDB(t)
	seedTestHierarchy(t, database)

	c, rec := setupEcho(http.MethodGet, "/facilities/f1", nil)
	setParams(c, "facilityId", "f1")
	assert.NoError(t, GetFacilityHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var facility models.Facility
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &facility))
	assert.Equal(t, "Courtroom 1", facility.DisplayName)
	assert.Equal(t, "Main Building", facility.BuildingName)

	c, rec = setupEcho(http.MethodGet, "/facilities/ghost", nil)
	setParams(c, "facilityId", "ghost")
	assert.NoError(t, GetFacilityHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Facility not found", rec.Body.String())
}

func TestCreateFacilityHandler(t *testing.T) {
	database := setupTestDB(t)
	seedTestHierarchy(t, database)

	t.Run("created", func(t *testing.T) {
		c, rec := setupEcho(http.MethodPost, "/facilities",
			jsonBody(`{"displayName": "Courtroom 2", "buildingId": "b1"}`))
		assert.NoError(t, CreateFacilityHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var facility models.Facility
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &facility))
		assert.Equal(t, "USA", facility.CountryName)
	})

	t.Run("unknown building is a 400", func(t *testing.T) {
		c, rec := setupEcho(http.MethodPost, "/facilities",
			jsonBody(`{"displayName": "Orphan", "buildingId": "missing"}`))
		assert.NoError(t, CreateFacilityHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateFacilityHandler(t *testing.T) {
	database := setupTestDB(t)
	seedTestHierarchy(t, database)

	c, rec := setupEcho(http.MethodPatch, "/facilities/f1",
		jsonBody(`{"id": "f1", "displayName": "Renamed", "buildingId": "b1"}`))
	setParams(c, "facilityId", "f1")
	assert.NoError(t, UpdateFacilityHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var facility models.Facility
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &facility))
	assert.Equal(t, "Renamed", facility.DisplayName)
}

func TestDeleteFacilityHandler(t *testing.T) {
	database := setupTestDB(t)
	seedTestHierarchy(t, database)

	c, rec := setupEcho(http.MethodDelete, "/facilities/f1", nil)
	setParams(c, "facilityId", "f1")
	assert.NoError(t, DeleteFacilityHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = setupEcho(http.MethodDelete, "/facilities/f1", nil)
	setParams(c, "facilityId", "f1")
	assert.NoError(t, DeleteFacilityHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportLocationsHandler(t *testing.T) {
	database := setupTestDB(t)
	seedTestHierarchy(t, database)

	previous := services.Storage
	t.Cleanup(func() { services.Storage = previous })
	services.Storage = services.NewLocalStorage(t.TempDir())

	c, rec := setupEcho(http.MethodGet, "/exports/locations", nil)
	assert.NoError(t, ExportLocationsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["url"], "exports/locations_")
}
