package handlers

import (
	"net/http"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/config"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/db"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/services"

	"github.com/labstack/echo/v4"
)

// Graph is the process-wide Graph API client, set at startup.
var Graph *services.GraphClient

// ListFacilitiesHandler returns all facilities, optionally scoped to a building
// GET /facilities?buildingId=xxx
func ListFacilitiesHandler(c echo.Context) error {
	svc := services.NewFacilityService(db.DB)
	facilities, err := svc.List(c.QueryParam("buildingId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, facilities)
}

// GetFacilityHandler returns a single facility
// GET /facilities/:facilityId
func GetFacilityHandler(c echo.Context) error {
	svc := services.NewFacilityService(db.DB)
	facility, err := svc.Get(c.Param("facilityId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if facility == nil {
		return c.String(http.StatusNotFound, "Facility not found")
	}
	return c.JSON(http.StatusOK, facility)
}

// CreateFacilityHandler creates a facility linked to an active building
// POST /facilities
func CreateFacilityHandler(c echo.Context) error {
	body := new(models.Facility)
	if err := c.Bind(body); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}

	svc := services.NewFacilityService(db.DB)
	created, err := svc.Create(body)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateFacilityHandler replaces a facility document
// PATCH /facilities/:facilityId
func UpdateFacilityHandler(c echo.Context) error {
	body := new(models.Facility)
	if err := c.Bind(body); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}

	svc := services.NewFacilityService(db.DB)
	updated, err := svc.Update(c.Param("facilityId"), body)
	if err != nil {
		return writeServiceError(c, err)
	}
	if updated == nil {
		return c.String(http.StatusNotFound, "Facility not found")
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteFacilityHandler removes a facility document
// DELETE /facilities/:facilityId
func DeleteFacilityHandler(c echo.Context) error {
	svc := services.NewFacilityService(db.DB)
	deleted, err := svc.Delete(c.Param("facilityId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if deleted == nil {
		return c.String(http.StatusNotFound, "Facility not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// ProvisionFacilityHandler creates the Teams resources for a facility
// POST /facilities/:facilityId/provision
func ProvisionFacilityHandler(c echo.Context) error {
	cfg, _ := c.Get("config").(*config.Config)

	svc := services.NewProvisioningService(db.DB, Graph, cfg)
	facility, err := svc.ProvisionFacility(c.Param("facilityId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if facility == nil {
		return c.String(http.StatusNotFound, "Facility not found")
	}
	return c.JSON(http.StatusOK, facility)
}
