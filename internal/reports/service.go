// Package reports produces the JSON shapes behind the incident charts.
package reports

import (
	"context"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// Service binds the queries to a clock that decides the current year.
type Service struct {
	queries *Queries
	clock   clockwork.Clock
}

func NewService(db *gorm.DB, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{queries: NewQueries(db), clock: clock}
}

func (s *Service) currentYear() int {
	return s.clock.Now().UTC().Year()
}

func (s *Service) SeverityCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.queries.SeverityCounts(ctx)
	if err != nil {
		return nil, err
	}
	return ShapeSeverityCounts(rows), nil
}

func (s *Service) MonthCounts(ctx context.Context) (*Ordered[int64], error) {
	rows, err := s.queries.MonthCounts(ctx, s.currentYear())
	if err != nil {
		return nil, err
	}
	return ShapeMonthCounts(rows), nil
}

func (s *Service) TopCountryMatrix(ctx context.Context) (*Ordered[*Ordered[int64]], error) {
	year := s.currentYear()
	countries, err := s.queries.TopCountries(ctx, year, TopCountryLimit)
	if err != nil {
		return nil, err
	}
	rows, err := s.queries.CountryMonthCounts(ctx, year, countries)
	if err != nil {
		return nil, err
	}
	return ShapeCountryMatrix(rows), nil
}

func (s *Service) SeverityMatrix(ctx context.Context) (*Ordered[*Ordered[int64]], error) {
	rows, err := s.queries.SeverityMonthCounts(ctx)
	if err != nil {
		return nil, err
	}
	return ShapeSeverityMatrix(rows), nil
}
