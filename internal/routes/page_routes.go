package routes

import (
	"github.com/gin-gonic/gin"

	"fire_tracker/internal/controllers"
	"fire_tracker/internal/urls"
)

func PageRoutes(r *gin.Engine, pc *controllers.PageController, reg *urls.Registry) {
	r.GET(named(reg, "home", "/"), pc.Home)
	r.GET(named(reg, "chart", "/dashboard/chart"), pc.Chart)

	m := r.Group("/map")
	{
		m.GET("/stations", pc.MapStation)
		m.GET("/stations.geojson", pc.MapStationGeoJSON)
		m.GET("/incidents", pc.MapIncidents)
		m.GET("/incidents.geojson", pc.MapIncidentsGeoJSON)
	}
	reg.Add("map-station", "/map/stations")
	reg.Add("map-station-geojson", "/map/stations.geojson")
	reg.Add("map-incident", "/map/incidents")
	reg.Add("map-incident-geojson", "/map/incidents.geojson")
}
