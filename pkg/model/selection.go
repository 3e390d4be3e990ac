package model

import "slices"

// Session selection parameters. Both enumerations are closed: they only
// decide which session the external loader fetches and never influence
// the pipeline itself.

const (
	MinSeason = 2022
	MaxSeason = 2025
)

//nolint:lll // keep the venue list compact
var venues = []string{
	"Melbourne", "Jeddah", "Bahrain", "Suzuka", "Shanghai", "Miami", "Imola", "Monaco",
	"Montreal", "Barcelona", "Red Bull Ring", "Silverstone", "Hungaroring",
	"Spa-Francorchamps", "Zandvoort", "Monza", "Marina Bay", "Austin", "Mexico City",
	"São Paulo", "Las Vegas", "Losail", "Yas Marina", "Portimão", "Mugello",
	"Istanbul Park", "Nürburgring", "Sepang", "Hanoi",
}

// Seasons returns the selectable seasons, newest first.
func Seasons() []int {
	ret := make([]int, 0, MaxSeason-MinSeason+1)
	for y := MaxSeason; y >= MinSeason; y-- {
		ret = append(ret, y)
	}
	return ret
}

// Venues returns the selectable grand prix venues.
func Venues() []string {
	return slices.Clone(venues)
}

func ValidSeason(year int) bool {
	return year >= MinSeason && year <= MaxSeason
}

func ValidVenue(name string) bool {
	return slices.Contains(venues, name)
}
