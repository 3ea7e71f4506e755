package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"fire_tracker/internal/config"
	"fire_tracker/internal/logger"
	"fire_tracker/internal/seed"
)

func main() {
	var (
		n         seed.Counts
		randSeed  uint64
		adminMail string
		adminPass string
	)
	flag.IntVar(&n.Locations, "locations", 0, "locations to create")
	flag.IntVar(&n.FireStations, "stations", 0, "fire stations to create")
	flag.IntVar(&n.Firefighters, "firefighters", 0, "firefighters to create")
	flag.IntVar(&n.FireTrucks, "trucks", 10, "fire trucks to create")
	flag.IntVar(&n.Incidents, "incidents", 0, "incidents to create")
	flag.IntVar(&n.WeatherConditions, "weather", 0, "weather conditions to create")
	flag.Uint64Var(&randSeed, "seed", 0, "random seed, 0 for a random one")
	flag.StringVar(&adminMail, "admin-email", "", "create an admin account with this email")
	flag.StringVar(&adminPass, "admin-password", "", "password for -admin-email")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log, _ := logger.Setup(cfg.Log)

	db, err := config.OpenDB(cfg.DB, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := seed.New(db, randSeed, clockwork.NewRealClock(), log)
	if err := s.Run(ctx, n); err != nil {
		log.WithError(err).Error("seeding failed")
		os.Exit(1)
	}

	if adminMail != "" {
		if adminPass == "" {
			log.Error("-admin-password is required with -admin-email")
			os.Exit(2)
		}
		if err := s.Admin(ctx, adminMail, adminPass); err != nil {
			log.WithError(err).Error("admin creation failed")
			os.Exit(1)
		}
	}
}
