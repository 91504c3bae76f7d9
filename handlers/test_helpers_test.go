package handlers

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/db"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the handlers' global database at a fresh in-memory
// instance. Shared cache keeps the database alive across connections.
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, database.AutoMigrate(&models.Location{}, &models.Facility{}))

	db.DB = database
	t.Cleanup(func() { db.DB = nil })
	return database
}

// seedTestHierarchy builds c1 -> s1 -> r1 -> sr1 -> b1 plus facility f1.
func seedTestHierarchy(t *testing.T, database *gorm.DB) {
	svc := services.NewLocationService(database)

	params := map[string]string{}
	seeds := []struct {
		tier      models.LocationType
		id, name  string
		ancestors models.AncestorRefs
		param     string
	}{
		{models.TypeCountry, "c1", "USA", models.AncestorRefs{}, "countryId"},
		{models.TypeState, "s1", "California", models.AncestorRefs{CountryID: "c1"}, "stateId"},
		{models.TypeRegion, "r1", "Northern California", models.AncestorRefs{CountryID: "c1", StateID: "s1"}, "regionId"},
		{models.TypeSubRegion, "sr1", "Bay Area", models.AncestorRefs{CountryID: "c1", StateID: "s1", RegionID: "r1"}, "subRegionId"},
		{models.TypeBuilding, "b1", "Main Building", models.AncestorRefs{CountryID: "c1", StateID: "s1", RegionID: "r1", SubRegionID: "sr1"}, "buildingId"},
	}
	for _, seed := range seeds {
		_, err := svc.Create(seed.tier, &models.Location{
			ID: seed.id, Name: seed.name, AncestorRefs: seed.ancestors,
		}, params)
		assert.NoError(t, err)
		params[seed.param] = seed.id
	}

	_, err := services.NewFacilityService(database).Create(&models.Facility{
		ID: "f1", DisplayName: "Courtroom 1", BuildingID: "b1",
	})
	assert.NoError(t, err)
}

// setupEcho builds an echo context for a handler invocation.
func setupEcho(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func setParams(c echo.Context, pairs ...string) {
	names := make([]string, 0, len(pairs)/2)
	values := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		names = append(names, pairs[i])
		values = append(values, pairs[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
}
