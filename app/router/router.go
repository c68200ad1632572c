package router

import (
	"net/http"
	"strings"

	"bracelet-customizer/app/controller"
)

type Controllers struct {
	Catalog       *controller.CatalogController
	Customization *controller.CustomizationController
	Preview       *controller.PreviewController
	Admin         *controller.AdminController

	// Previews serves locally stored preview images; nil when they live in Drive
	Previews    http.Handler
	PreviewPath string
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Catalog routes
	mux.HandleFunc("/api/bracelets", controllers.Catalog.ListBracelets)
	mux.HandleFunc("/api/charms", controllers.Catalog.ListCharms)
	mux.HandleFunc("/api/settings", controllers.Catalog.GetSettings)

	// Save customization
	mux.HandleFunc("/api/customizations", controllers.Customization.SaveCustomization)

	// Customization by session, or preview upload for a customization
	mux.HandleFunc("/api/customizations/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/preview") {
			controllers.Preview.UploadPreview(w, r)
			return
		}
		controllers.Customization.GetCustomization(w, r)
	})

	// Cart handoff
	mux.HandleFunc("/api/cart-lines", controllers.Customization.CartLines)

	// Admin routes
	mux.HandleFunc("/admin/customizations/stats", controllers.Admin.Stats)
	mux.HandleFunc("/admin/customizations/export", controllers.Admin.Export)
	mux.HandleFunc("/admin/customizations/cleanup", controllers.Admin.Cleanup)

	// Local preview images
	if controllers.Previews != nil {
		prefix := "/" + strings.Trim(controllers.PreviewPath, "/") + "/"
		mux.Handle(prefix, http.StripPrefix(prefix, controllers.Previews))
	}
}
