package routes

import (
	"github.com/gin-gonic/gin"

	"fire_tracker/internal/controllers"
	"fire_tracker/internal/crud"
	"fire_tracker/internal/models"
)

// EntityRoutes mounts list/detail/add/update/delete for every record type.
// write runs ahead of each handler that changes data.
func EntityRoutes(r *gin.Engine, deps crud.Deps, write ...gin.HandlerFunc) {
	crud.New[models.Location](controllers.LocationResource(), deps).Register(r, write...)
	crud.New[models.FireStation](controllers.FireStationResource(), deps).Register(r, write...)
	crud.New[models.Firefighter](controllers.FirefighterResource(), deps).Register(r, write...)
	crud.New[models.FireTruck](controllers.FireTruckResource(), deps).Register(r, write...)
	crud.New[models.Incident](controllers.IncidentResource(), deps).Register(r, write...)
	crud.New[models.WeatherCondition](controllers.WeatherConditionResource(), deps).Register(r, write...)
}
