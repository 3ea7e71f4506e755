// Package seed fills the database with fake demo records.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fire_tracker/internal/controllers"
	"fire_tracker/internal/models"
)

const (
	maxTruckNumber = 1000
	descriptionMax = 250
)

var (
	ErrMissingParent  = errors.New("no parent records to attach to")
	ErrTruckNumbersUp = errors.New("not enough unused truck numbers")
)

var truckModels = []string{"Toyota fire", "Tesla", "Misyubibi fire engine"}

// Counts is how many records of each kind to create.
type Counts struct {
	Locations         int
	FireStations      int
	Firefighters      int
	FireTrucks        int
	Incidents         int
	WeatherConditions int
}

type Seeder struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	clock clockwork.Clock
	log   *logrus.Logger
}

// New returns a Seeder. A zero seed picks a random one.
func New(db *gorm.DB, seed uint64, clock clockwork.Clock, log *logrus.Logger) *Seeder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Seeder{db: db, faker: gofakeit.New(seed), clock: clock, log: log}
}

// Run creates the requested records parents first so dependents created in
// the same run can attach to them.
func (s *Seeder) Run(ctx context.Context, n Counts) error {
	db := s.db.WithContext(ctx)
	steps := []struct {
		name  string
		count int
		run   func(*gorm.DB, int) error
	}{
		{"location", n.Locations, s.locations},
		{"fire station", n.FireStations, s.fireStations},
		{"firefighter", n.Firefighters, s.firefighters},
		{"fire truck", n.FireTrucks, s.fireTrucks},
		{"incident", n.Incidents, s.incidents},
		{"weather condition", n.WeatherConditions, s.weatherConditions},
	}
	for _, step := range steps {
		if step.count <= 0 {
			continue
		}
		if err := step.run(db, step.count); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
		s.log.WithField("count", step.count).Infof("Successfully created %s records", step.name)
	}
	return nil
}

// Admin creates an admin account unless the email is already registered.
func (s *Seeder) Admin(ctx context.Context, email, password string) error {
	db := s.db.WithContext(ctx)
	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		s.log.WithField("email", email).Info("admin account already exists")
		return nil
	}
	if _, err := controllers.CreateUser(db, "Administrator", email, password, controllers.RoleAdmin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	s.log.WithField("email", email).Info("Successfully created admin account")
	return nil
}

func (s *Seeder) locations(db *gorm.DB, count int) error {
	rows := make([]models.Location, count)
	for i := range rows {
		rows[i] = models.Location{
			Name:      s.faker.Company(),
			Latitude:  s.faker.Latitude(),
			Longitude: s.faker.Longitude(),
			Address:   s.faker.Street(),
			City:      s.faker.City(),
			Country:   s.faker.Country(),
		}
	}
	return db.Create(&rows).Error
}

func (s *Seeder) fireStations(db *gorm.DB, count int) error {
	rows := make([]models.FireStation, count)
	for i := range rows {
		rows[i] = models.FireStation{
			Name:      s.faker.Company(),
			Latitude:  s.faker.Latitude(),
			Longitude: s.faker.Longitude(),
			Address:   s.faker.Street(),
			City:      s.faker.City(),
			Country:   s.faker.Country(),
		}
	}
	return db.Create(&rows).Error
}

func (s *Seeder) firefighters(db *gorm.DB, count int) error {
	stations, err := ids(db, &models.FireStation{})
	if err != nil {
		return err
	}
	if len(stations) == 0 {
		return fmt.Errorf("%w: firefighters need a fire station", ErrMissingParent)
	}

	rows := make([]models.Firefighter, count)
	for i := range rows {
		rows[i] = models.Firefighter{
			Name:            s.faker.Name(),
			Rank:            s.faker.RandomString(models.RankChoices),
			ExperienceLevel: s.faker.RandomString(models.ExperienceChoices),
			StationID:       s.pick(stations),
		}
	}
	return db.Create(&rows).Error
}

func (s *Seeder) fireTrucks(db *gorm.DB, count int) error {
	stations, err := ids(db, &models.FireStation{})
	if err != nil {
		return err
	}
	if len(stations) == 0 {
		return fmt.Errorf("%w: fire trucks need a fire station", ErrMissingParent)
	}
	numbers, err := s.truckNumbers(db, count)
	if err != nil {
		return err
	}

	rows := make([]models.FireTruck, count)
	for i := range rows {
		rows[i] = models.FireTruck{
			TruckNumber: numbers[i],
			Model:       s.faker.RandomString(truckModels),
			Capacity:    s.faker.IntRange(1000, 5000),
			StationID:   s.pick(stations),
		}
	}
	return db.Create(&rows).Error
}

// truckNumbers draws count distinct numbers in 1..1000 not already used.
func (s *Seeder) truckNumbers(db *gorm.DB, count int) ([]string, error) {
	var taken []string
	if err := db.Model(&models.FireTruck{}).Pluck("truck_number", &taken).Error; err != nil {
		return nil, err
	}
	used := make(map[string]bool, len(taken))
	for _, t := range taken {
		used[t] = true
	}

	free := make([]int, 0, maxTruckNumber)
	for n := 1; n <= maxTruckNumber; n++ {
		if !used[fmt.Sprint(n)] {
			free = append(free, n)
		}
	}
	if len(free) < count {
		return nil, fmt.Errorf("%w: want %d, %d left", ErrTruckNumbersUp, count, len(free))
	}
	s.faker.ShuffleInts(free)

	out := make([]string, count)
	for i := range out {
		out[i] = fmt.Sprint(free[i])
	}
	return out, nil
}

func (s *Seeder) incidents(db *gorm.DB, count int) error {
	locations, err := ids(db, &models.Location{})
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		return fmt.Errorf("%w: incidents need a location", ErrMissingParent)
	}

	now := s.clock.Now().UTC()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	rows := make([]models.Incident, count)
	for i := range rows {
		desc := s.text(descriptionMax)
		rows[i] = models.Incident{
			LocationID:    s.pick(locations),
			DateTime:      s.faker.DateRange(start, now),
			SeverityLevel: s.faker.RandomString(models.SeverityChoices),
			Description:   desc,
		}
	}
	return db.Create(&rows).Error
}

func (s *Seeder) weatherConditions(db *gorm.DB, count int) error {
	incidents, err := ids(db, &models.Incident{})
	if err != nil {
		return err
	}
	if len(incidents) == 0 {
		return fmt.Errorf("%w: weather conditions need an incident", ErrMissingParent)
	}

	rows := make([]models.WeatherCondition, count)
	for i := range rows {
		rows[i] = models.WeatherCondition{
			IncidentID:         s.pick(incidents),
			Temperature:        float64(s.faker.IntRange(10, 99)),
			Humidity:           float64(s.faker.IntRange(10, 99)),
			WindSpeed:          float64(s.faker.IntRange(10, 99)),
			WeatherDescription: s.faker.Word(),
		}
	}
	return db.Create(&rows).Error
}

// text joins fake words up to limit bytes.
func (s *Seeder) text(limit int) string {
	var b strings.Builder
	for {
		w := s.faker.Word()
		if b.Len()+len(w)+2 > limit {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	b.WriteByte('.')
	return b.String()
}

func (s *Seeder) pick(ids []uint) uint {
	return ids[s.faker.IntRange(0, len(ids)-1)]
}

func ids(db *gorm.DB, model any) ([]uint, error) {
	var out []uint
	err := db.Model(model).Order("id").Pluck("id", &out).Error
	return out, err
}
