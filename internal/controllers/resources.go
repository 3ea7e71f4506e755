package controllers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fire_tracker/internal/crud"
	"fire_tracker/internal/models"
	"fire_tracker/internal/search"
)

var placeSearch = []string{"name", "city", "address", "country"}

func qualify(table string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = table + "." + c
	}
	return out
}

func LocationResource() crud.Resource[models.Location] {
	return crud.Resource[models.Location]{
		Slug:        "location",
		Path:        "/locations",
		Table:       "locations",
		VerboseName: "Location",
		ContextName: "locations",
		Search:      search.Spec{Fields: qualify("locations", placeSearch)},
		Label:       func(l *models.Location) string { return l.Name },
		BeforeDelete: func(tx *gorm.DB, l *models.Location) error {
			n, err := countWhere(tx, &models.Incident{}, "location_id = ?", l.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return crud.Conflict("Cannot delete %q: %d incident(s) are recorded at this location.", l.Name, n)
			}
			return nil
		},
	}
}

func FireStationResource() crud.Resource[models.FireStation] {
	return crud.Resource[models.FireStation]{
		Slug:        "firestation",
		Path:        "/firestations",
		Table:       "fire_stations",
		VerboseName: "Fire Station",
		ContextName: "firestation",
		Search:      search.Spec{Fields: qualify("fire_stations", placeSearch)},
		Label:       func(s *models.FireStation) string { return s.Name },
		BeforeDelete: func(tx *gorm.DB, s *models.FireStation) error {
			ff, err := countWhere(tx, &models.Firefighter{}, "station_id = ?", s.ID)
			if err != nil {
				return err
			}
			trucks, err := countWhere(tx, &models.FireTruck{}, "station_id = ?", s.ID)
			if err != nil {
				return err
			}
			if ff+trucks > 0 {
				return crud.Conflict("Cannot delete %q: it still has %d firefighter(s) and %d truck(s).", s.Name, ff, trucks)
			}
			return nil
		},
	}
}

func FirefighterResource() crud.Resource[models.Firefighter] {
	return crud.Resource[models.Firefighter]{
		Slug:        "firefighter",
		Path:        "/firefighters",
		Table:       "firefighters",
		VerboseName: "Firefighter",
		ContextName: "firefighter",
		Search: search.Spec{
			Joins: []string{"LEFT JOIN fire_stations AS st ON st.id = firefighters.station_id"},
			Fields: []string{
				"firefighters.name",
				"firefighters.rank",
				"firefighters.experience_level",
				"st.name",
				"st.country",
			},
		},
		Preload: []string{"Station"},
		Label:   func(f *models.Firefighter) string { return f.Name },
		Validate: func(ctx context.Context, db *gorm.DB, f *models.Firefighter) (crud.FieldErrors, error) {
			errs := crud.FieldErrors{}
			if !models.ValidRank(f.Rank) {
				errs["rank"] = invalidChoice(f.Rank)
			}
			if !models.ValidExperience(f.ExperienceLevel) {
				errs["experience_level"] = invalidChoice(f.ExperienceLevel)
			}
			if err := requireRecord(ctx, db, errs, "station_id", &models.FireStation{}, f.StationID); err != nil {
				return nil, err
			}
			return errs, nil
		},
		FormOptions: func(ctx context.Context, db *gorm.DB) (gin.H, error) {
			stations, err := stationChoices(ctx, db)
			if err != nil {
				return nil, err
			}
			return gin.H{
				"rank":             models.RankChoices,
				"experience_level": models.ExperienceChoices,
				"station_id":       stations,
			}, nil
		},
	}
}

const duplicateTruckNumber = "Fire truck with this Truck number already exists."

func FireTruckResource() crud.Resource[models.FireTruck] {
	return crud.Resource[models.FireTruck]{
		Slug:        "firetruck",
		Path:        "/firetrucks",
		Table:       "fire_trucks",
		VerboseName: "Fire Truck",
		ContextName: "firetruck",
		Search: search.Spec{
			Joins: []string{"LEFT JOIN fire_stations AS st ON st.id = fire_trucks.station_id"},
			Fields: []string{
				"fire_trucks.truck_number",
				"fire_trucks.model",
				"CAST(fire_trucks.capacity AS TEXT)",
				"st.name",
			},
		},
		Preload: []string{"Station"},
		Unique:  map[string]string{"truck_number": duplicateTruckNumber},
		Label:   func(t *models.FireTruck) string { return t.Model },
		Validate: func(ctx context.Context, db *gorm.DB, t *models.FireTruck) (crud.FieldErrors, error) {
			errs := crud.FieldErrors{}
			dup, err := countWhere(db.WithContext(ctx), &models.FireTruck{}, "truck_number = ? AND id <> ?", t.TruckNumber, t.ID)
			if err != nil {
				return nil, err
			}
			if dup > 0 {
				errs["truck_number"] = duplicateTruckNumber
			}
			if err := requireRecord(ctx, db, errs, "station_id", &models.FireStation{}, t.StationID); err != nil {
				return nil, err
			}
			return errs, nil
		},
		FormOptions: func(ctx context.Context, db *gorm.DB) (gin.H, error) {
			stations, err := stationChoices(ctx, db)
			if err != nil {
				return nil, err
			}
			return gin.H{"station_id": stations}, nil
		},
	}
}

func IncidentResource() crud.Resource[models.Incident] {
	return crud.Resource[models.Incident]{
		Slug:        "fireincident",
		Path:        "/fireincidents",
		Table:       "incidents",
		VerboseName: "Fire Incident",
		ContextName: "fireincident",
		Search: search.Spec{
			Joins: []string{"LEFT JOIN locations AS loc ON loc.id = incidents.location_id"},
			Fields: []string{
				"loc.name",
				"loc.city",
				"loc.country",
				"incidents.severity_level",
			},
		},
		Preload: []string{"Location"},
		Order:   "incidents.date_time DESC, incidents.id DESC",
		Label: func(i *models.Incident) string {
			if i.Description == "" {
				return fmt.Sprintf("Incident #%d", i.ID)
			}
			return i.Description
		},
		Validate: func(ctx context.Context, db *gorm.DB, i *models.Incident) (crud.FieldErrors, error) {
			errs := crud.FieldErrors{}
			if !models.ValidSeverity(i.SeverityLevel) {
				errs["severity_level"] = invalidChoice(i.SeverityLevel)
			}
			if err := requireRecord(ctx, db, errs, "location_id", &models.Location{}, i.LocationID); err != nil {
				return nil, err
			}
			return errs, nil
		},
		// Weather readings belong to their incident and go with it.
		BeforeDelete: func(tx *gorm.DB, i *models.Incident) error {
			return tx.Where("incident_id = ?", i.ID).Delete(&models.WeatherCondition{}).Error
		},
		FormOptions: func(ctx context.Context, db *gorm.DB) (gin.H, error) {
			var locations []choice
			err := db.WithContext(ctx).Model(&models.Location{}).
				Select("id, name").Order("name").Scan(&locations).Error
			if err != nil {
				return nil, err
			}
			return gin.H{
				"severity_level": models.SeverityChoices,
				"location_id":    locations,
			}, nil
		},
	}
}

func WeatherConditionResource() crud.Resource[models.WeatherCondition] {
	return crud.Resource[models.WeatherCondition]{
		Slug:        "weathercondition",
		Path:        "/weatherconditions",
		Table:       "weather_conditions",
		VerboseName: "Weather Condition",
		ContextName: "weathercondition",
		Search: search.Spec{
			Joins: []string{
				"LEFT JOIN incidents AS inc ON inc.id = weather_conditions.incident_id",
				"LEFT JOIN locations AS loc ON loc.id = inc.location_id",
			},
			Fields: []string{
				"loc.name",
				"CAST(weather_conditions.temperature AS TEXT)",
				"CAST(weather_conditions.humidity AS TEXT)",
				"CAST(weather_conditions.wind_speed AS TEXT)",
			},
		},
		Preload: []string{"Incident", "Incident.Location"},
		Label: func(w *models.WeatherCondition) string {
			if w.WeatherDescription == "" {
				return fmt.Sprintf("Weather #%d", w.ID)
			}
			return w.WeatherDescription
		},
		Validate: func(ctx context.Context, db *gorm.DB, w *models.WeatherCondition) (crud.FieldErrors, error) {
			errs := crud.FieldErrors{}
			if err := requireRecord(ctx, db, errs, "incident_id", &models.Incident{}, w.IncidentID); err != nil {
				return nil, err
			}
			return errs, nil
		},
		FormOptions: func(ctx context.Context, db *gorm.DB) (gin.H, error) {
			var incidents []choice
			err := db.WithContext(ctx).Model(&models.Incident{}).
				Select("incidents.id AS id, locations.name || ' - ' || incidents.severity_level AS name").
				Joins("JOIN locations ON locations.id = incidents.location_id").
				Order("incidents.date_time DESC").
				Scan(&incidents).Error
			if err != nil {
				return nil, err
			}
			return gin.H{"incident_id": incidents}, nil
		},
	}
}

// choice is one option of a related-record select input.
type choice struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func stationChoices(ctx context.Context, db *gorm.DB) ([]choice, error) {
	var out []choice
	err := db.WithContext(ctx).Model(&models.FireStation{}).
		Select("id, name").Order("name").Scan(&out).Error
	return out, err
}

func countWhere(db *gorm.DB, model any, query string, args ...any) (int64, error) {
	var n int64
	err := db.Model(model).Where(query, args...).Count(&n).Error
	return n, err
}

// requireRecord sets errs[field] unless a row of model with id exists.
func requireRecord(ctx context.Context, db *gorm.DB, errs crud.FieldErrors, field string, model any, id uint) error {
	if id == 0 {
		errs[field] = "This field is required."
		return nil
	}
	n, err := countWhere(db.WithContext(ctx), model, "id = ?", id)
	if err != nil {
		return err
	}
	if n == 0 {
		errs[field] = "Select a valid choice. That choice is not one of the available choices."
	}
	return nil
}

func invalidChoice(v string) string {
	return "Select a valid choice. " + v + " is not one of the available choices."
}
