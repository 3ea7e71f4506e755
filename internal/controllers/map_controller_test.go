package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fire_tracker/internal/controllers"
	"fire_tracker/internal/flash"
	"fire_tracker/internal/models"
	"fire_tracker/internal/testutil"
	"fire_tracker/internal/views"
)

func pageRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	pc := controllers.NewPageController(db, flash.NewStore("secret", false))

	r := gin.New()
	r.SetHTMLTemplate(views.Templates())
	r.GET("/", pc.Home)
	r.GET("/dashboard/chart", pc.Chart)
	r.GET("/map/stations", pc.MapStation)
	r.GET("/map/stations.geojson", pc.MapStationGeoJSON)
	r.GET("/map/incidents", pc.MapIncidents)
	r.GET("/map/incidents.geojson", pc.MapIncidentsGeoJSON)
	return r, db
}

func TestHome(t *testing.T) {
	r, db := pageRouter(t)
	loc := newLocation(t, db, "Mall", "Cebu", "Philippines")
	newIncident(t, db, loc, models.SeverityMinor)

	w := call(t, r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := jsonBody(t, w)
	assert.Len(t, body["home"], 1)
	totals := body["totals"].(map[string]any)
	assert.Equal(t, float64(1), totals["locations"])
	assert.Equal(t, float64(1), totals["incidents"])
	assert.Equal(t, float64(0), totals["fire_trucks"])
	assert.Empty(t, body["messages"])
}

func TestMapStation_HTML(t *testing.T) {
	r, db := pageRouter(t)
	newStation(t, db, "Central")

	w := call(t, r, http.MethodGet, "/map/stations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Central"`)
	assert.Contains(t, w.Body.String(), `"latitude":14.5`)
}

func TestMapStation_GeoJSON(t *testing.T) {
	r, db := pageRouter(t)
	newStation(t, db, "Central")

	w := call(t, r, http.MethodGet, "/map/stations.geojson", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

	body := jsonBody(t, w)
	assert.Equal(t, "FeatureCollection", body["type"])
	features := body["features"].([]any)
	require.Len(t, features, 1)
	feature := features[0].(map[string]any)
	geometry := feature["geometry"].(map[string]any)
	assert.Equal(t, "Point", geometry["type"])
	// GeoJSON puts longitude first
	assert.Equal(t, []any{121.0, 14.5}, geometry["coordinates"])
	assert.Equal(t, "Central", feature["properties"].(map[string]any)["name"])
}

func TestMapIncidents(t *testing.T) {
	r, db := pageRouter(t)
	cebu := newLocation(t, db, "Mall", "Cebu", "Philippines")
	newLocation(t, db, "Port", "Davao", "Philippines")
	newIncident(t, db, cebu, models.SeverityMajor)

	w := call(t, r, http.MethodGet, "/map/incidents", "")
	require.Equal(t, http.StatusOK, w.Code)
	html := w.Body.String()
	assert.Contains(t, html, `"location__name":"Mall"`)
	assert.Contains(t, html, `<option value="Cebu">`)
	assert.Contains(t, html, `<option value="Davao">`)

	w = call(t, r, http.MethodGet, "/map/incidents.geojson", "")
	require.Equal(t, http.StatusOK, w.Code)
	features := jsonBody(t, w)["features"].([]any)
	require.Len(t, features, 1)
	props := features[0].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "Cebu", props["city"])
	assert.Equal(t, models.SeverityMajor, props["severity_level"])
}

func TestChartPage(t *testing.T) {
	r, _ := pageRouter(t)

	w := call(t, r, http.MethodGet, "/dashboard/chart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/chart/severity-month")
}
