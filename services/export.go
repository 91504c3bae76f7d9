package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService produces a spreadsheet snapshot of the whole hierarchy,
// one sheet per tier plus facilities, and stores it through the configured
// StorageProvider.
type ExportService struct {
	Store *Store
}

func NewExportService(dbConn *gorm.DB) *ExportService {
	return &ExportService{Store: NewStore(dbConn)}
}

var tierSheetHeaders = []string{"ID", "Name", "Status", "Country", "State", "Region", "SubRegion"}

func sheetName(label string) string {
	if strings.HasSuffix(label, "y") {
		return strings.TrimSuffix(label, "y") + "ies"
	}
	return label + "s"
}

// BuildWorkbook assembles the export workbook in memory.
func (s *ExportService) BuildWorkbook() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	for sheetIndex, tier := range models.TierOrder {
		spec := models.Tiers[tier]
		sheet := sheetName(spec.Label)
		if sheetIndex == 0 {
			// excelize starts with a default sheet; rename it
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		for i, header := range tierSheetHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, header)
		}
		f.SetCellStyle(sheet, "A1", "G1", headerStyle)
		f.SetColWidth(sheet, "A", "G", 24)

		locations, err := GetList[models.Location](s.Store, "type = ?", tier)
		if err != nil {
			return nil, err
		}
		for row, location := range locations {
			values := []interface{}{
				location.ID, location.Name, string(location.Status),
				location.CountryName, location.StateName, location.RegionName, location.SubRegionName,
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, value)
			}
		}
	}

	// Facilities sheet
	const facilitySheet = "Facilities"
	if _, err := f.NewSheet(facilitySheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet %s: %w", facilitySheet, err)
	}
	facilityHeaders := []string{"ID", "DisplayName", "Building", "Country", "State", "Region", "SubRegion", "TeamID"}
	for i, header := range facilityHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(facilitySheet, cell, header)
	}
	f.SetCellStyle(facilitySheet, "A1", "H1", headerStyle)
	f.SetColWidth(facilitySheet, "A", "H", 24)

	facilities, err := GetList[models.Facility](s.Store, "1 = 1")
	if err != nil {
		return nil, err
	}
	for row, facility := range facilities {
		values := []interface{}{
			facility.ID, facility.DisplayName, facility.BuildingName,
			facility.CountryName, facility.StateName, facility.RegionName, facility.SubRegionName,
			facility.TeamID,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(facilitySheet, cell, value)
		}
	}

	return f.WriteToBuffer()
}

// Export builds the workbook and uploads it, returning the stored object URL.
func (s *ExportService) Export(ctx context.Context) (string, error) {
	if Storage == nil {
		return "", fmt.Errorf("storage not initialized")
	}

	buf, err := s.BuildWorkbook()
	if err != nil {
		return "", fmt.Errorf("failed to build export workbook: %w", err)
	}

	key := fmt.Sprintf("exports/locations_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	result, err := Storage.UploadReader(ctx, buf, key, exportContentType, int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("failed to store export: %w", err)
	}
	return result.URL, nil
}
