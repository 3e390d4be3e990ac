package model

import "time"

// LapRecord is one per-lap timing record as delivered by the session
// provider. Nullable provider columns are pointers; nil means the value
// was not recorded for that lap.
type LapRecord struct {
	Driver    string         `json:"driver"`
	Team      string         `json:"team"`
	LapNumber int            `json:"lapNumber"`
	LapTime   *time.Duration `json:"lapTime,omitempty"`
	Compound  Compound       `json:"compound"`
	// Position is the track position at the end of the lap.
	Position   *int       `json:"position,omitempty"`
	PitInTime  *time.Time `json:"pitInTime,omitempty"`
	PitOutTime *time.Time `json:"pitOutTime,omitempty"`
	// SpeedTrap is the speed trap reading in km/h.
	SpeedTrap *float64 `json:"speedTrap,omitempty"`
}

// NormalizedLap is a LapRecord that survived normalization. LapSeconds is
// always defined, TyreLife counts laps on the current compound per driver
// (1-based, continuous across non-contiguous stints on the same compound).
type NormalizedLap struct {
	LapRecord

	LapSeconds float64 `json:"lapSeconds"`
	TyreLife   int     `json:"tyreLife"`
	DriverTeam string  `json:"driverTeam"`
}
