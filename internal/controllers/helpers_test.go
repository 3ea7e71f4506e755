package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fire_tracker/internal/controllers"
	"fire_tracker/internal/crud"
	"fire_tracker/internal/models"
	"fire_tracker/internal/observability"
	"fire_tracker/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// entityRouter mounts every resource without auth or flash.
func entityRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	deps := crud.Deps{DB: db, Metrics: observability.NewMetricsForTesting(), PageSize: 10}

	r := gin.New()
	crud.New[models.Location](controllers.LocationResource(), deps).Register(r)
	crud.New[models.FireStation](controllers.FireStationResource(), deps).Register(r)
	crud.New[models.Firefighter](controllers.FirefighterResource(), deps).Register(r)
	crud.New[models.FireTruck](controllers.FireTruckResource(), deps).Register(r)
	crud.New[models.Incident](controllers.IncidentResource(), deps).Register(r)
	crud.New[models.WeatherCondition](controllers.WeatherConditionResource(), deps).Register(r)
	return r, db
}

func call(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func authed(t *testing.T, method, path, body, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	require.NoError(t, db.Create(v).Error)
}

func newStation(t *testing.T, db *gorm.DB, name string) models.FireStation {
	t.Helper()
	s := models.FireStation{Name: name, Latitude: 14.5, Longitude: 121.0, City: "Manila", Country: "Philippines"}
	mustCreate(t, db, &s)
	return s
}

func newLocation(t *testing.T, db *gorm.DB, name, city, country string) models.Location {
	t.Helper()
	l := models.Location{Name: name, Latitude: 10.25, Longitude: 123.75, City: city, Country: country}
	mustCreate(t, db, &l)
	return l
}

func newIncident(t *testing.T, db *gorm.DB, loc models.Location, severity string) models.Incident {
	t.Helper()
	i := models.Incident{
		LocationID:    loc.ID,
		DateTime:      time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC),
		SeverityLevel: severity,
		Description:   "Warehouse fire",
	}
	mustCreate(t, db, &i)
	return i
}
