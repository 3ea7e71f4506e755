package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fire_tracker/internal/controllers"
	"fire_tracker/internal/crud"
	"fire_tracker/internal/models"
	"fire_tracker/internal/testutil"
)

func TestFireStation_DeleteBlockedByFirefighters(t *testing.T) {
	r, db := entityRouter(t)
	st := newStation(t, db, "Central")
	mustCreate(t, db, &models.Firefighter{Name: "Ana", Rank: "Captain", ExperienceLevel: "Senior", StationID: st.ID})

	w := call(t, r, http.MethodDelete, fmt.Sprintf("/firestations/%d", st.ID), "")
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Contains(t, jsonBody(t, w)["error"], "1 firefighter(s)")

	require.NoError(t, db.First(&models.FireStation{}, st.ID).Error)
}

func TestFireStation_DeleteBlockedByTrucks(t *testing.T) {
	r, db := entityRouter(t)
	st := newStation(t, db, "Central")
	mustCreate(t, db, &models.FireTruck{TruckNumber: "7", Model: "Tesla", Capacity: 2000, StationID: st.ID})

	w := call(t, r, http.MethodPost, fmt.Sprintf("/firestations/%d/delete", st.ID), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFireStation_DeleteEmpty(t *testing.T) {
	r, db := entityRouter(t)
	st := newStation(t, db, "Empty")

	w := call(t, r, http.MethodDelete, fmt.Sprintf("/firestations/%d", st.ID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `"Empty" deleted successfully!`, jsonBody(t, w)["message"])
}

func TestLocation_DeleteBlockedByIncidents(t *testing.T) {
	r, db := entityRouter(t)
	loc := newLocation(t, db, "Mall", "Cebu", "Philippines")
	newIncident(t, db, loc, models.SeverityMajor)

	w := call(t, r, http.MethodDelete, fmt.Sprintf("/locations/%d", loc.ID), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestIncident_DeleteCascadesToWeather(t *testing.T) {
	r, db := entityRouter(t)
	loc := newLocation(t, db, "Mall", "Cebu", "Philippines")
	inc := newIncident(t, db, loc, models.SeverityMinor)
	other := newIncident(t, db, loc, models.SeverityMajor)
	mustCreate(t, db, &models.WeatherCondition{IncidentID: inc.ID, Temperature: 30, Humidity: 40, WindSpeed: 12})
	mustCreate(t, db, &models.WeatherCondition{IncidentID: other.ID, Temperature: 20, Humidity: 50, WindSpeed: 5})

	w := call(t, r, http.MethodDelete, fmt.Sprintf("/fireincidents/%d", inc.ID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `"Warehouse fire" deleted successfully!`, jsonBody(t, w)["message"])

	var left []models.WeatherCondition
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, other.ID, left[0].IncidentID)
}

func TestFirefighter_DeleteLeavesSiblings(t *testing.T) {
	r, db := entityRouter(t)
	st := newStation(t, db, "Central")
	a := models.Firefighter{Name: "Ana", Rank: "Captain", ExperienceLevel: "Senior", StationID: st.ID}
	b := models.Firefighter{Name: "Ben", Rank: "Driver", ExperienceLevel: "Junior", StationID: st.ID}
	mustCreate(t, db, &a)
	mustCreate(t, db, &b)

	w := call(t, r, http.MethodDelete, fmt.Sprintf("/firefighters/%d", a.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&models.Firefighter{}, b.ID).Error)
	require.NoError(t, db.First(&models.FireStation{}, st.ID).Error)
	assert.ErrorIs(t, db.First(&models.Firefighter{}, a.ID).Error, gorm.ErrRecordNotFound)
}

func TestFirefighter_CreateValidatesChoicesAndStation(t *testing.T) {
	r, db := entityRouter(t)
	st := newStation(t, db, "Central")

	w := call(t, r, http.MethodPost, "/firefighters/add",
		`{"name":"Ana","rank":"General","experience_level":"Ancient","station_id":999}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := jsonBody(t, w)["errors"].(map[string]any)
	assert.Equal(t, "Select a valid choice. General is not one of the available choices.", errs["rank"])
	assert.Contains(t, errs, "experience_level")
	assert.Contains(t, errs, "station_id")

	w = call(t, r, http.MethodPost, "/firefighters/add",
		fmt.Sprintf(`{"name":"Ana","rank":"Firefighter II","experience_level":"Mid-level","station_id":%d}`, st.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := jsonBody(t, w)
	assert.Equal(t, `Firefighter "Ana" created successfully!`, body["message"])
	station := body["object"].(map[string]any)["station"].(map[string]any)
	assert.Equal(t, "Central", station["name"])
}

func TestFirefighter_SearchByStation(t *testing.T) {
	r, db := entityRouter(t)
	north := newStation(t, db, "North Station")
	south := newStation(t, db, "South Station")
	mustCreate(t, db, &models.Firefighter{Name: "Ana", Rank: "Captain", ExperienceLevel: "Senior", StationID: north.ID})
	mustCreate(t, db, &models.Firefighter{Name: "Ben", Rank: "Driver", ExperienceLevel: "Junior", StationID: south.ID})

	w := call(t, r, http.MethodGet, "/firefighters?q=north", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	items := jsonBody(t, w)["object_list"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Ana", items[0].(map[string]any)["name"])

	w = call(t, r, http.MethodGet, "/firefighters?q=captain", "")
	assert.Len(t, jsonBody(t, w)["firefighter"], 1)
}

func TestFirefighter_FormOptions(t *testing.T) {
	r, db := entityRouter(t)
	newStation(t, db, "Central")

	w := call(t, r, http.MethodGet, "/firefighters/add", "")
	require.Equal(t, http.StatusOK, w.Code)
	form := jsonBody(t, w)["form"].(map[string]any)
	assert.Len(t, form["rank"], len(models.RankChoices))
	assert.Len(t, form["experience_level"], len(models.ExperienceChoices))
	assert.Len(t, form["station_id"], 1)
}

func TestFireTruck_DuplicateNumber(t *testing.T) {
	r, db := entityRouter(t)
	st := newStation(t, db, "Central")
	first := models.FireTruck{TruckNumber: "42", Model: "Tesla", Capacity: 3000, StationID: st.ID}
	mustCreate(t, db, &first)

	w := call(t, r, http.MethodPost, "/firetrucks",
		fmt.Sprintf(`{"truck_number":"42","model":"Toyota fire","capacity":1000,"station_id":%d}`, st.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := jsonBody(t, w)["errors"].(map[string]any)
	assert.Equal(t, "Fire truck with this Truck number already exists.", errs["truck_number"])

	// keeping its own number on update is fine
	w = call(t, r, http.MethodPut, fmt.Sprintf("/firetrucks/%d", first.ID),
		fmt.Sprintf(`{"truck_number":"42","model":"Tesla","capacity":3500,"station_id":%d}`, st.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `Fire Truck "Tesla" updated successfully!`, jsonBody(t, w)["message"])

	var n int64
	require.NoError(t, db.Model(&models.FireTruck{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestFireTruck_DuplicateRejectedByIndex(t *testing.T) {
	db := testutil.NewDB(t)
	res := controllers.FireTruckResource()
	// the insert races past the pre-check
	res.Validate = nil
	r := gin.New()
	crud.New[models.FireTruck](res, crud.Deps{DB: db, PageSize: 10}).Register(r)

	st := newStation(t, db, "Central")
	first := models.FireTruck{TruckNumber: "42", Model: "Tesla", Capacity: 3000, StationID: st.ID}
	mustCreate(t, db, &first)
	other := models.FireTruck{TruckNumber: "7", Model: "Volvo", Capacity: 2000, StationID: st.ID}
	mustCreate(t, db, &other)

	w := call(t, r, http.MethodPost, "/firetrucks",
		fmt.Sprintf(`{"truck_number":"42","model":"Toyota fire","capacity":1000,"station_id":%d}`, st.ID))
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	errs := jsonBody(t, w)["errors"].(map[string]any)
	assert.Equal(t, "Fire truck with this Truck number already exists.", errs["truck_number"])

	w = call(t, r, http.MethodPut, fmt.Sprintf("/firetrucks/%d", other.ID),
		fmt.Sprintf(`{"truck_number":"42","model":"Volvo","capacity":2000,"station_id":%d}`, st.ID))
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	errs = jsonBody(t, w)["errors"].(map[string]any)
	assert.Equal(t, "Fire truck with this Truck number already exists.", errs["truck_number"])
}

func TestFireTruck_SearchByCapacity(t *testing.T) {
	r, db := entityRouter(t)
	st := newStation(t, db, "Central")
	mustCreate(t, db, &models.FireTruck{TruckNumber: "1", Model: "Tesla", Capacity: 4500, StationID: st.ID})
	mustCreate(t, db, &models.FireTruck{TruckNumber: "2", Model: "Toyota fire", Capacity: 1200, StationID: st.ID})

	w := call(t, r, http.MethodGet, "/firetrucks?q=450", "")
	items := jsonBody(t, w)["object_list"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Tesla", items[0].(map[string]any)["model"])
}

func TestIncident_CreateAndSearch(t *testing.T) {
	r, db := entityRouter(t)
	cebu := newLocation(t, db, "Mall", "Cebu", "Philippines")
	newLocation(t, db, "Port", "Davao", "Philippines")

	w := call(t, r, http.MethodPost, "/fireincidents/add",
		fmt.Sprintf(`{"location_id":%d,"date_time":"2026-04-01T10:30:00Z","severity_level":"Moderate Fire"}`, cebu.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, jsonBody(t, w)["message"], `"Incident #`)

	w = call(t, r, http.MethodPost, "/fireincidents/add",
		fmt.Sprintf(`{"location_id":%d,"date_time":"2026-04-01T10:30:00Z","severity_level":"Huge"}`, cebu.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, r, http.MethodGet, "/fireincidents?q=cebu", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	items := jsonBody(t, w)["fireincident"].([]any)
	require.Len(t, items, 1)
	loc := items[0].(map[string]any)["location"].(map[string]any)
	assert.Equal(t, "Mall", loc["name"])

	w = call(t, r, http.MethodGet, "/fireincidents?q=davao", "")
	assert.Empty(t, jsonBody(t, w)["object_list"])
}

func TestWeatherCondition_CreateRequiresIncident(t *testing.T) {
	r, db := entityRouter(t)

	w := call(t, r, http.MethodPost, "/weatherconditions", `{"incident_id":5,"temperature":30,"humidity":40,"wind_speed":3}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, jsonBody(t, w)["errors"], "incident_id")

	loc := newLocation(t, db, "Mall", "Cebu", "Philippines")
	inc := newIncident(t, db, loc, models.SeverityMinor)
	w = call(t, r, http.MethodPost, "/weatherconditions",
		fmt.Sprintf(`{"incident_id":%d,"temperature":30,"humidity":140,"wind_speed":3}`, inc.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, jsonBody(t, w)["errors"], "humidity")

	w = call(t, r, http.MethodPost, "/weatherconditions",
		fmt.Sprintf(`{"incident_id":%d,"temperature":30.5,"humidity":40,"wind_speed":3,"weather_description":"windy"}`, inc.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, `Weather Condition "windy" created successfully!`, jsonBody(t, w)["message"])

	w = call(t, r, http.MethodGet, "/weatherconditions?q=mall", "")
	assert.Len(t, jsonBody(t, w)["object_list"], 1)
}
