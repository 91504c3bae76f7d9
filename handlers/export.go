package handlers

import (
	"net/http"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/db"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/services"

	"github.com/labstack/echo/v4"
)

// ExportLocationsHandler builds a spreadsheet snapshot of the hierarchy and
// returns the stored object URL
// GET /exports/locations
func ExportLocationsHandler(c echo.Context) error {
	svc := services.NewExportService(db.DB)
	url, err := svc.Export(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
