package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bracelet-customizer/catalog"
	"bracelet-customizer/customizer"
	"bracelet-customizer/db"
	"bracelet-customizer/repository"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	catalog *catalog.Catalog
	repo    *repository.CustomizationRepository
	svc     *CustomizationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn))

	repo := repository.NewCustomizationRepository(conn, db.DriverSQLite)
	resolver := customizer.NewResolver(cat, customizer.NewValidator(cat),
		customizer.WithClock(func() time.Time { return testNow }))
	svc := NewCustomizationService(resolver, cat, repo, cat.Settings().Currency)
	svc.now = func() time.Time { return testNow }

	return &testEnv{catalog: cat, repo: repo, svc: svc}
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
