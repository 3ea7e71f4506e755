package routes

import (
	"github.com/gin-gonic/gin"

	"fire_tracker/internal/controllers"
	"fire_tracker/internal/urls"
)

func ChartRoutes(r *gin.Engine, rc *controllers.ReportController, reg *urls.Registry) {
	r.GET(named(reg, "chart-severity", "/chart/severity"), rc.PieCountBySeverity)
	r.GET(named(reg, "chart-month", "/chart/month"), rc.LineCountByMonth)
	r.GET(named(reg, "chart-top-countries", "/chart/top-countries"), rc.MultilineIncidentTop3Country)
	r.GET(named(reg, "chart-severity-month", "/chart/severity-month"), rc.MultipleBarBySeverity)
}
