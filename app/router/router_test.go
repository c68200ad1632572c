package router

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracelet-customizer/app/controller"
	"bracelet-customizer/catalog"
	"bracelet-customizer/customizer"
	"bracelet-customizer/db"
	"bracelet-customizer/models"
	"bracelet-customizer/repository"
	"bracelet-customizer/service"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn))

	store, err := service.NewLocalPreviewStore(t.TempDir(), "/previews")
	require.NoError(t, err)

	repo := repository.NewCustomizationRepository(conn, db.DriverSQLite)
	resolver := customizer.NewResolver(cat, customizer.NewValidator(cat))
	customizations := service.NewCustomizationService(resolver, cat, repo, cat.Settings().Currency)

	mux := http.NewServeMux()
	SetupRoutes(mux, &Controllers{
		Catalog:       controller.NewCatalogController(cat),
		Customization: controller.NewCustomizationController(customizations),
		Preview:       controller.NewPreviewController(service.NewPreviewService(repo, store)),
		Admin:         controller.NewAdminController(customizations, 30),
		Previews:      http.FileServer(http.Dir(store.Dir())),
		PreviewPath:   "/previews",
	})
	return mux
}

func do(mux *http.ServeMux, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func saveValid(t *testing.T, mux *http.ServeMux) models.SaveCustomizationResponse {
	t.Helper()
	rec := do(mux, http.MethodPost, "/api/customizations", models.CustomizationRequest{
		SessionID:        "session_web",
		ProductID:        "rose-gold",
		Word:             "LET THEM",
		SelectedCharmIDs: []string{"heart"},
		Size:             "m-l",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.SaveCustomizationResponse
	decode(t, rec, &resp)
	return resp
}

func TestPing(t *testing.T) {
	mux := newTestMux(t)

	rec := do(mux, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(mux, http.MethodPost, "/ping", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCatalogListings(t *testing.T) {
	mux := newTestMux(t)

	rec := do(mux, http.MethodGet, "/api/charms?category=Bestsellers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var charms struct {
		Success    bool               `json:"success"`
		Data       []models.CharmItem `json:"data"`
		Source     string             `json:"source"`
		Total      int                `json:"total"`
		Categories []string           `json:"categories"`
	}
	decode(t, rec, &charms)
	assert.True(t, charms.Success)
	assert.Equal(t, catalog.SourceFallback, charms.Source)
	assert.Equal(t, len(charms.Data), charms.Total)
	assert.NotEmpty(t, charms.Data)
	assert.Contains(t, charms.Categories, "Bestsellers")

	rec = do(mux, http.MethodGet, "/api/bracelets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bluestone"`)

	rec = do(mux, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"USD"`)

	rec = do(mux, http.MethodDelete, "/api/bracelets", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSaveAndFetchCustomization(t *testing.T) {
	mux := newTestMux(t)

	saved := saveValid(t, mux)
	assert.True(t, saved.Success)
	assert.Equal(t, "session_web", saved.SessionID)
	assert.Equal(t, "M/L", saved.Record.Size)
	assert.Equal(t, int64(1000+1500+1200), saved.Record.ComputedPrice)

	rec := do(mux, http.MethodGet, "/api/customizations/session_web?productId=rose-gold", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Success bool                       `json:"success"`
		Data    models.CustomizationRecord `json:"data"`
	}
	decode(t, rec, &got)
	assert.Equal(t, saved.ID, got.Data.ID)

	rec = do(mux, http.MethodGet, "/api/customizations/session_web?productId=bluestone", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveCustomizationRejections(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name    string
		req     models.CustomizationRequest
		reason  models.ReasonCode
		field   string
		message string
	}{
		{
			name:   "word too long",
			req:    models.CustomizationRequest{ProductID: "bluestone", Word: "ABCDEFGHIJKLMN", Size: "XS"},
			reason: models.ReasonWordLength,
			field:  "word",
		},
		{
			name:   "bad size",
			req:    models.CustomizationRequest{ProductID: "bluestone", Word: "HI", Size: "XXL"},
			reason: models.ReasonInvalidSize,
			field:  "size",
		},
		{
			name:    "unknown product",
			req:     models.CustomizationRequest{ProductID: "nope", Word: "HI", Size: "XS"},
			reason:  models.ReasonUnknownProduct,
			message: models.GenericFailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, http.MethodPost, "/api/customizations", tt.req)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp models.ValidationErrorResponse
			decode(t, rec, &resp)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.reason, resp.Reason)
			assert.Equal(t, tt.field, resp.Field)
			assert.NotEmpty(t, resp.Message)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/customizations", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(mux, http.MethodGet, "/api/customizations", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCartLinesEndpoint(t *testing.T) {
	mux := newTestMux(t)
	saved := saveValid(t, mux)

	rec := do(mux, http.MethodPost, "/api/cart-lines", models.CartLinesRequest{CustomizationID: saved.ID, Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.CartLinesResponse
	decode(t, rec, &resp)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, models.CartLineBracelet, resp.Lines[0].Kind)
	assert.Equal(t, int64(2500), resp.Lines[0].UnitPrice)
	assert.Equal(t, models.CartLineCharm, resp.Lines[1].Kind)
	assert.Equal(t, int64(2*3700), resp.Total)
	assert.Equal(t, "$74.00", resp.FormattedTotal)

	rec = do(mux, http.MethodPost, "/api/cart-lines", models.CartLinesRequest{CustomizationID: "session_web"})
	require.Equal(t, http.StatusOK, rec.Code, "quantity defaults to one and the session id resolves")

	rec = do(mux, http.MethodPost, "/api/cart-lines", models.CartLinesRequest{CustomizationID: saved.ID, Quantity: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(mux, http.MethodPost, "/api/cart-lines", models.CartLinesRequest{CustomizationID: saved.ID, Quantity: 9223372036854775})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(mux, http.MethodPost, "/api/cart-lines", models.CartLinesRequest{CustomizationID: "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(mux, http.MethodPost, "/api/cart-lines", models.CartLinesRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewUploadAndServe(t *testing.T) {
	mux := newTestMux(t)
	saved := saveValid(t, mux)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	rec := do(mux, http.MethodPost, "/api/customizations/"+saved.ID+"/preview", models.PreviewUploadRequest{ImageData: dataURL})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.PreviewUploadResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, saved.ID, resp.CustomizationID)
	require.True(t, strings.HasPrefix(resp.ImageURL, "/previews/preview_"+saved.ID+"_"), resp.ImageURL)

	rec = do(mux, http.MethodGet, resp.ImageURL, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = do(mux, http.MethodPost, "/api/customizations/"+saved.ID+"/preview", models.PreviewUploadRequest{ImageData: "not-an-image"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(mux, http.MethodPost, "/api/customizations/missing/preview", models.PreviewUploadRequest{ImageData: dataURL})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminEndpoints(t *testing.T) {
	mux := newTestMux(t)
	saveValid(t, mux)

	rec := do(mux, http.MethodGet, "/admin/customizations/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats models.CustomizationStats
	decode(t, rec, &stats)
	assert.Equal(t, models.CustomizationStats{TotalCustomizations: 1, UniqueSessions: 1, UniqueProducts: 1}, stats)

	rec = do(mux, http.MethodGet, "/admin/customizations/stats?from=2000-01-01&to=2000-01-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &stats)
	assert.Zero(t, stats.TotalCustomizations)

	rec = do(mux, http.MethodGet, "/admin/customizations/stats?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(mux, http.MethodGet, "/admin/customizations/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment;")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(service.CSVHeader, ","), lines[0])
	assert.Contains(t, lines[1], "LET THEM")

	rec = do(mux, http.MethodPost, "/admin/customizations/cleanup?days=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(mux, http.MethodPost, "/admin/customizations/cleanup?days=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(mux, http.MethodPost, "/admin/customizations/cleanup", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"deleted":0,"days":30}`, rec.Body.String())
}
