package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"bracelet-customizer/app/controller"
	"bracelet-customizer/app/router"
	"bracelet-customizer/catalog"
	"bracelet-customizer/config"
	"bracelet-customizer/customizer"
	"bracelet-customizer/db"
	"bracelet-customizer/repository"
	"bracelet-customizer/service"
)

// Initialize initializes the application
func Initialize(ctx context.Context, cfg config.Config) error {
	// Initialize database connection
	dsn, err := cfg.DSN()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.InitDB(cfg.DBDriver, dsn); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Load product catalog, falling back to the built-in one
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Printf("✅ Catalog loaded: %d products (source=%s)", cat.Len(), cat.Source())

	// Initialize preview storage
	controllers := &router.Controllers{}
	var store service.PreviewStore
	switch cfg.PreviewStorage {
	case config.PreviewStorageDrive:
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentials, cfg.DriveFolderID)
		if err != nil {
			return err
		}
		store = driveService
	default:
		localStore, err := service.NewLocalPreviewStore(cfg.PreviewDir, cfg.PreviewBaseURL)
		if err != nil {
			return err
		}
		store = localStore
		controllers.Previews = http.FileServer(http.Dir(localStore.Dir()))
		controllers.PreviewPath = cfg.PreviewBaseURL
	}

	// Initialize repository
	customizationRepo := repository.NewCustomizationRepository(db.DB, cfg.DBDriver)

	// Initialize services
	resolver := customizer.NewResolver(cat, customizer.NewValidator(cat))
	customizationService := service.NewCustomizationService(resolver, cat, customizationRepo, cat.Settings().Currency)
	previewService := service.NewPreviewService(customizationRepo, store)

	// Create controllers
	controllers.Catalog = controller.NewCatalogController(cat)
	controllers.Customization = controller.NewCustomizationController(customizationService)
	controllers.Preview = controller.NewPreviewController(previewService)
	controllers.Admin = controller.NewAdminController(customizationService, cfg.RetentionDays)

	// Setup routes using standard http router
	router.SetupRoutes(http.DefaultServeMux, controllers)

	return nil
}
