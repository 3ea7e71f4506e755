package reports

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fire_tracker/internal/models"
)

type SeverityCount struct {
	SeverityLevel string
	IncidentCount int64
}

type MonthCount struct {
	Month         int
	IncidentCount int64
}

type CountryMonthCount struct {
	Country       string
	Month         int
	IncidentCount int64
}

type SeverityMonthCount struct {
	SeverityLevel string
	Month         int
	IncidentCount int64
}

// Queries runs the GROUP BY reads behind the chart endpoints.
type Queries struct {
	db *gorm.DB
}

func NewQueries(db *gorm.DB) *Queries {
	return &Queries{db: db}
}

func (q *Queries) SeverityCounts(ctx context.Context) ([]SeverityCount, error) {
	var rows []SeverityCount
	err := q.db.WithContext(ctx).
		Model(&models.Incident{}).
		Select("severity_level, COUNT(*) AS incident_count").
		Group("severity_level").
		Order("severity_level").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("severity counts: %w", err)
	}
	return rows, nil
}

func (q *Queries) MonthCounts(ctx context.Context, year int) ([]MonthCount, error) {
	d := dialectOf(q.db)
	var rows []MonthCount
	err := q.db.WithContext(ctx).
		Model(&models.Incident{}).
		Select(d.month("incidents.date_time")+" AS month, COUNT(*) AS incident_count").
		Where(d.year("incidents.date_time")+" = ?", year).
		Group("month").
		Order("month").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("month counts: %w", err)
	}
	return rows, nil
}

// TopCountries returns up to n countries with the most incidents in year,
// busiest first, ties broken by name.
func (q *Queries) TopCountries(ctx context.Context, year, n int) ([]string, error) {
	d := dialectOf(q.db)
	var countries []string
	err := q.db.WithContext(ctx).
		Model(&models.Incident{}).
		Joins("JOIN locations ON locations.id = incidents.location_id").
		Where(d.year("incidents.date_time")+" = ?", year).
		Group("locations.country").
		Order("COUNT(incidents.id) DESC, locations.country").
		Limit(n).
		Pluck("locations.country", &countries).Error
	if err != nil {
		return nil, fmt.Errorf("top countries: %w", err)
	}
	return countries, nil
}

func (q *Queries) CountryMonthCounts(ctx context.Context, year int, countries []string) ([]CountryMonthCount, error) {
	if len(countries) == 0 {
		return nil, nil
	}
	d := dialectOf(q.db)
	var rows []CountryMonthCount
	err := q.db.WithContext(ctx).
		Model(&models.Incident{}).
		Select("locations.country AS country, "+d.month("incidents.date_time")+" AS month, COUNT(incidents.id) AS incident_count").
		Joins("JOIN locations ON locations.id = incidents.location_id").
		Where("locations.country IN ?", countries).
		Where(d.year("incidents.date_time")+" = ?", year).
		Group("locations.country, month").
		Order("locations.country, month").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("country month counts: %w", err)
	}
	return rows, nil
}

func (q *Queries) SeverityMonthCounts(ctx context.Context) ([]SeverityMonthCount, error) {
	d := dialectOf(q.db)
	var rows []SeverityMonthCount
	err := q.db.WithContext(ctx).
		Model(&models.Incident{}).
		Select("severity_level, "+d.month("incidents.date_time")+" AS month, COUNT(incidents.id) AS incident_count").
		Group("severity_level, month").
		Order("severity_level, month").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("severity month counts: %w", err)
	}
	return rows, nil
}

type dialect struct {
	name string
}

func dialectOf(db *gorm.DB) dialect {
	return dialect{name: db.Dialector.Name()}
}

func (d dialect) year(col string) string {
	if d.name == "sqlite" {
		return "CAST(strftime('%Y', " + col + ") AS INTEGER)"
	}
	return "CAST(EXTRACT(YEAR FROM " + col + ") AS INTEGER)"
}

func (d dialect) month(col string) string {
	if d.name == "sqlite" {
		return "CAST(strftime('%m', " + col + ") AS INTEGER)"
	}
	return "CAST(EXTRACT(MONTH FROM " + col + ") AS INTEGER)"
}
