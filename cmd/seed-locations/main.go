package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/config"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/db"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/services"
)

// Seeds a country -> state -> region -> subregion -> building starter chain
// through the same services the HTTP surface uses, so ancestor hydration and
// the duplicate guard apply.
func main() {
	countryName := flag.String("country", "USA", "Country name")
	stateName := flag.String("state", "California", "State name")
	regionName := flag.String("region", "Northern California", "Region name")
	subRegionName := flag.String("subregion", "Bay Area", "SubRegion name")
	buildingName := flag.String("building", "Main Building", "Building name")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Location{}, &models.Facility{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	svc := services.NewLocationService(db.DB)

	country, err := svc.Create(models.TypeCountry, &models.Location{Name: *countryName}, nil)
	if err != nil {
		log.Fatalf("Failed to create country: %v", err)
	}

	params := map[string]string{"countryId": country.ID}
	state, err := svc.Create(models.TypeState, &models.Location{
		Name:         *stateName,
		AncestorRefs: models.AncestorRefs{CountryID: country.ID},
	}, params)
	if err != nil {
		log.Fatalf("Failed to create state: %v", err)
	}

	params["stateId"] = state.ID
	region, err := svc.Create(models.TypeRegion, &models.Location{
		Name:         *regionName,
		AncestorRefs: models.AncestorRefs{CountryID: country.ID, StateID: state.ID},
	}, params)
	if err != nil {
		log.Fatalf("Failed to create region: %v", err)
	}

	params["regionId"] = region.ID
	subRegion, err := svc.Create(models.TypeSubRegion, &models.Location{
		Name:         *subRegionName,
		AncestorRefs: models.AncestorRefs{CountryID: country.ID, StateID: state.ID, RegionID: region.ID},
	}, params)
	if err != nil {
		log.Fatalf("Failed to create subregion: %v", err)
	}

	params["subRegionId"] = subRegion.ID
	building, err := svc.Create(models.TypeBuilding, &models.Location{
		Name: *buildingName,
		AncestorRefs: models.AncestorRefs{
			CountryID: country.ID, StateID: state.ID,
			RegionID: region.ID, SubRegionID: subRegion.ID,
		},
	}, params)
	if err != nil {
		log.Fatalf("Failed to create building: %v", err)
	}

	fmt.Println("=== Seeded location hierarchy ===")
	fmt.Printf("Country:   %s (%s)\n", country.Name, country.ID)
	fmt.Printf("State:     %s (%s)\n", state.Name, state.ID)
	fmt.Printf("Region:    %s (%s)\n", region.Name, region.ID)
	fmt.Printf("SubRegion: %s (%s)\n", subRegion.Name, subRegion.ID)
	fmt.Printf("Building:  %s (%s)\n", building.Name, building.ID)
}
