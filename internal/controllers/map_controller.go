package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"gorm.io/gorm"

	"fire_tracker/internal/flash"
	"fire_tracker/internal/models"
)

// StationMarker is one fire station pin.
type StationMarker struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IncidentMarker is one incident pin, placed at its location.
type IncidentMarker struct {
	ID        uint    `json:"id"`
	Name      string  `json:"location__name"`
	Latitude  float64 `json:"location__latitude"`
	Longitude float64 `json:"location__longitude"`
	City      string  `json:"location__city"`
	Severity  string  `json:"severity_level"`
}

// PageController serves the home page and the map views.
type PageController struct {
	db    *gorm.DB
	flash *flash.Store
}

func NewPageController(db *gorm.DB, fl *flash.Store) *PageController {
	return &PageController{db: db, flash: fl}
}

// Home lists locations alongside record totals.
func (pc *PageController) Home(c *gin.Context) {
	ctx := c.Request.Context()

	var locations []models.Location
	if err := pc.db.WithContext(ctx).Order("id").Find(&locations).Error; err != nil {
		logrus.WithError(err).Error("Home: could not load locations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load locations"})
		return
	}

	totals := gin.H{}
	for key, model := range map[string]any{
		"locations":          &models.Location{},
		"fire_stations":      &models.FireStation{},
		"firefighters":       &models.Firefighter{},
		"fire_trucks":        &models.FireTruck{},
		"incidents":          &models.Incident{},
		"weather_conditions": &models.WeatherCondition{},
	} {
		var n int64
		if err := pc.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			logrus.WithError(err).WithField("table", key).Error("Home: count failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load totals"})
			return
		}
		totals[key] = n
	}

	messages := []flash.Message{}
	if pc.flash != nil {
		if m := pc.flash.Pop(c); m != nil {
			messages = m
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"home":     locations,
		"totals":   totals,
		"messages": messages,
	})
}

func (pc *PageController) Chart(c *gin.Context) {
	c.HTML(http.StatusOK, "chart.html", gin.H{"title": "Incident charts"})
}

func (pc *PageController) MapStation(c *gin.Context) {
	stations, err := pc.stations(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("MapStation: query failed")
		c.String(http.StatusInternalServerError, "Could not load fire stations")
		return
	}
	c.HTML(http.StatusOK, "map_station.html", gin.H{"fireStations": stations})
}

func (pc *PageController) MapStationGeoJSON(c *gin.Context) {
	stations, err := pc.stations(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("MapStationGeoJSON: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load fire stations"})
		return
	}
	features := make([]*gjson.Feature, len(stations))
	for i, s := range stations {
		features[i] = pointFeature(s.ID, s.Longitude, s.Latitude, map[string]interface{}{
			"name": s.Name,
		})
	}
	writeFeatures(c, features)
}

func (pc *PageController) MapIncidents(c *gin.Context) {
	ctx := c.Request.Context()
	incidents, err := pc.incidents(ctx)
	if err != nil {
		logrus.WithError(err).Error("MapIncidents: query failed")
		c.String(http.StatusInternalServerError, "Could not load incidents")
		return
	}
	var cities []string
	if err := pc.db.WithContext(ctx).Model(&models.Location{}).Distinct().Order("city").Pluck("city", &cities).Error; err != nil {
		logrus.WithError(err).Error("MapIncidents: city query failed")
		c.String(http.StatusInternalServerError, "Could not load cities")
		return
	}
	c.HTML(http.StatusOK, "map_incidents.html", gin.H{
		"fireIncidents": incidents,
		"cities":        cities,
	})
}

func (pc *PageController) MapIncidentsGeoJSON(c *gin.Context) {
	incidents, err := pc.incidents(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("MapIncidentsGeoJSON: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load incidents"})
		return
	}
	features := make([]*gjson.Feature, len(incidents))
	for i, inc := range incidents {
		features[i] = pointFeature(inc.ID, inc.Longitude, inc.Latitude, map[string]interface{}{
			"name":           inc.Name,
			"city":           inc.City,
			"severity_level": inc.Severity,
		})
	}
	writeFeatures(c, features)
}

// Coordinates are stored as decimals; scanning into float64 does the
// conversion the map client needs.
func (pc *PageController) stations(ctx context.Context) ([]StationMarker, error) {
	out := []StationMarker{}
	err := pc.db.WithContext(ctx).Model(&models.FireStation{}).
		Select("id, name, latitude, longitude").
		Order("id").
		Scan(&out).Error
	return out, err
}

func (pc *PageController) incidents(ctx context.Context) ([]IncidentMarker, error) {
	out := []IncidentMarker{}
	err := pc.db.WithContext(ctx).Model(&models.Incident{}).
		Select("incidents.id AS id, locations.name AS name, locations.latitude AS latitude, " +
			"locations.longitude AS longitude, locations.city AS city, incidents.severity_level AS severity").
		Joins("JOIN locations ON locations.id = incidents.location_id").
		Order("incidents.id").
		Scan(&out).Error
	return out, err
}

func pointFeature(id uint, lng, lat float64, props map[string]interface{}) *gjson.Feature {
	return &gjson.Feature{
		ID:         strconv.FormatUint(uint64(id), 10),
		Geometry:   geom.NewPointFlat(geom.XY, []float64{lng, lat}),
		Properties: props,
	}
}

func writeFeatures(c *gin.Context, features []*gjson.Feature) {
	fc := &gjson.FeatureCollection{Features: features}
	b, err := fc.MarshalJSON()
	if err != nil {
		logrus.WithError(err).Error("geojson encoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode map data"})
		return
	}
	c.Data(http.StatusOK, "application/geo+json", b)
}
