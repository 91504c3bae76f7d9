package main

import (
	"log"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/config"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/db"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/handlers"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/middleware"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
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

	// Initialize export storage and the Graph client
	services.InitializeStorage(cfg)
	handlers.Graph = services.NewGraphClient(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// All routes require a bearer token
	api := e.Group("", middleware.RequireAuth(cfg))

	read := middleware.RequirePermission(middleware.PermLocationsRead, middleware.PermLocationsWrite)
	write := middleware.RequirePermission(middleware.PermLocationsWrite)

	// Hierarchy routes, outermost tier first, nested under their ancestors:
	// /countries/:countryId/states/:stateId/regions/... down to buildings,
	// plus a flat list-all per tier.
	base := ""
	for _, tier := range models.TierOrder {
		spec := models.Tiers[tier]
		nestedList := base + "/" + spec.RouteSegment
		itemPath := nestedList + "/:" + spec.IDParam

		api.GET("/"+spec.RouteSegment, handlers.ListLocationsHandler(tier), read)
		if spec.Parent != "" {
			api.GET(nestedList, handlers.ListLocationsByParentHandler(tier), read)
		}
		api.GET(itemPath, handlers.GetLocationHandler(tier), read)
		api.POST(nestedList, handlers.CreateLocationHandler(tier), write)
		api.PATCH(itemPath, handlers.UpdateLocationHandler(tier), write)
		api.DELETE(itemPath, handlers.DeleteLocationHandler(tier), write)

		base = itemPath
	}

	// Facility routes
	facilityWrite := middleware.RequirePermission(middleware.PermFacilitiesWrite)
	api.GET("/facilities", handlers.ListFacilitiesHandler, read)
	api.GET("/facilities/:facilityId", handlers.GetFacilityHandler, read)
	api.POST("/facilities", handlers.CreateFacilityHandler, facilityWrite)
	api.PATCH("/facilities/:facilityId", handlers.UpdateFacilityHandler, facilityWrite)
	api.DELETE("/facilities/:facilityId", handlers.DeleteFacilityHandler, facilityWrite)
	api.POST("/facilities/:facilityId/provision", handlers.ProvisionFacilityHandler,
		middleware.RequirePermission(middleware.PermProvision))

	// Hierarchy export
	api.GET("/exports/locations", handlers.ExportLocationsHandler,
		middleware.RequirePermission(middleware.PermLocationsExport))

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
