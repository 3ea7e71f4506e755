package models

import "slices"

const (
	SeverityMinor    = "Minor Fire"
	SeverityModerate = "Moderate Fire"
	SeverityMajor    = "Major Fire"
)

var SeverityChoices = []string{SeverityMinor, SeverityModerate, SeverityMajor}

var RankChoices = []string{
	"Probationary Firefighter",
	"Firefighter I",
	"Firefighter II",
	"Firefighter III",
	"Driver",
	"Captain",
	"Battalion Chief",
}

var ExperienceChoices = []string{"Probationary", "Junior", "Mid-level", "Senior", "Veteran"}

func ValidSeverity(s string) bool   { return slices.Contains(SeverityChoices, s) }
func ValidRank(s string) bool       { return slices.Contains(RankChoices, s) }
func ValidExperience(s string) bool { return slices.Contains(ExperienceChoices, s) }

// All lists every model migrated at startup, parents first.
func All() []any {
	return []any{
		&User{},
		&Location{},
		&FireStation{},
		&Firefighter{},
		&FireTruck{},
		&Incident{},
		&WeatherCondition{},
	}
}
