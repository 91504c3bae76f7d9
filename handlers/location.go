package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/db"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/services"

	"github.com/labstack/echo/v4"
)

// pathParams collects every route parameter of the request. The services
// check them against the body and AND them into single-item filters.
func pathParams(c echo.Context) map[string]string {
	params := make(map[string]string, len(c.ParamNames()))
	for _, name := range c.ParamNames() {
		params[name] = c.Param(name)
	}
	return params
}

// writeServiceError maps service errors onto the plain-text error responses:
// validation failures are 400s, conflicts 409s, anything else a 500.
func writeServiceError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.String(http.StatusBadRequest, validationErr.Message)
	}
	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		return c.String(http.StatusConflict, conflictErr.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

// ListLocationsHandler returns all active documents of a tier
// GET /countries, GET /states, GET /regions, GET /subregions, GET /buildings
func ListLocationsHandler(tier models.LocationType) echo.HandlerFunc {
	return func(c echo.Context) error {
		svc := services.NewLocationService(db.DB)
		locations, err := svc.List(tier)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, locations)
	}
}

// ListLocationsByParentHandler returns a tier's active documents under one parent
// GET /countries/:countryId/states (and analogous nested routes)
func ListLocationsByParentHandler(tier models.LocationType) echo.HandlerFunc {
	parent := models.Tiers[models.Tiers[tier].Parent]
	return func(c echo.Context) error {
		svc := services.NewLocationService(db.DB)
		locations, err := svc.ListByParent(tier, c.Param(parent.IDParam))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, locations)
	}
}

// GetLocationHandler returns a single document with its activeRelations summary
// GET /countries/:countryId, GET /countries/:countryId/states/:stateId, ...
func GetLocationHandler(tier models.LocationType) echo.HandlerFunc {
	spec := models.Tiers[tier]
	return func(c echo.Context) error {
		svc := services.NewLocationService(db.DB)
		location, err := svc.Get(tier, pathParams(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		if location == nil {
			return c.String(http.StatusNotFound, spec.Label+" location not found")
		}
		return c.JSON(http.StatusOK, location)
	}
}

// CreateLocationHandler creates a document under the route's ancestor path
// POST /countries, POST /countries/:countryId/states, ...
func CreateLocationHandler(tier models.LocationType) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := new(models.Location)
		if err := c.Bind(body); err != nil {
			return c.String(http.StatusBadRequest, "Invalid request body")
		}

		svc := services.NewLocationService(db.DB)
		created, err := svc.Create(tier, body, pathParams(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusCreated, created)
	}
}

// UpdateLocationHandler replaces a document and cascades denormalized copies
// PATCH /countries/:countryId, PATCH /countries/:countryId/states/:stateId, ...
func UpdateLocationHandler(tier models.LocationType) echo.HandlerFunc {
	spec := models.Tiers[tier]
	return func(c echo.Context) error {
		body := new(models.Location)
		if err := c.Bind(body); err != nil {
			return c.String(http.StatusBadRequest, "Invalid request body")
		}

		svc := services.NewLocationService(db.DB)
		updated, err := svc.Update(tier, body, pathParams(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		if updated == nil {
			return c.String(http.StatusNotFound, spec.Label+" location not found")
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// DeleteLocationHandler soft-deletes a document once the guard passes
// DELETE /countries/:countryId, DELETE /countries/:countryId/states/:stateId, ...
func DeleteLocationHandler(tier models.LocationType) echo.HandlerFunc {
	spec := models.Tiers[tier]
	return func(c echo.Context) error {
		svc := services.NewLocationService(db.DB)
		deleted, err := svc.Delete(tier, pathParams(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		if deleted == nil {
			return c.String(http.StatusNotFound, spec.Label+" location not found")
		}
		return c.NoContent(http.StatusNoContent)
	}
}
