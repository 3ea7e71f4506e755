package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fire_tracker/internal/observability"
	"fire_tracker/internal/reports"
)

// ReportController serves the chart data endpoints.
type ReportController struct {
	reports *reports.Service
	metrics *observability.Metrics
}

func NewReportController(svc *reports.Service, metrics *observability.Metrics) *ReportController {
	return &ReportController{reports: svc, metrics: metrics}
}

// PieCountBySeverity returns {severity: count} over all incidents.
func (rc *ReportController) PieCountBySeverity(c *gin.Context) {
	rc.serve(c, "severity", func(ctx context.Context) (any, error) {
		return rc.reports.SeverityCounts(ctx)
	})
}

// LineCountByMonth returns Jan..Dec counts for the current year.
func (rc *ReportController) LineCountByMonth(c *gin.Context) {
	rc.serve(c, "month", func(ctx context.Context) (any, error) {
		return rc.reports.MonthCounts(ctx)
	})
}

// MultilineIncidentTop3Country returns a month matrix for the three busiest
// countries of the current year.
func (rc *ReportController) MultilineIncidentTop3Country(c *gin.Context) {
	rc.serve(c, "top_countries", func(ctx context.Context) (any, error) {
		return rc.reports.TopCountryMatrix(ctx)
	})
}

// MultipleBarBySeverity returns a month matrix per severity level.
func (rc *ReportController) MultipleBarBySeverity(c *gin.Context) {
	rc.serve(c, "severity_month", func(ctx context.Context) (any, error) {
		return rc.reports.SeverityMatrix(ctx)
	})
}

func (rc *ReportController) serve(c *gin.Context, name string, run func(context.Context) (any, error)) {
	data, err := run(c.Request.Context())
	if err != nil {
		logrus.WithError(err).WithField("report", name).Error("report query failed")
		if rc.metrics != nil {
			rc.metrics.ReportErrors.WithLabelValues(name).Inc()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build report"})
		return
	}
	c.JSON(http.StatusOK, data)
}
