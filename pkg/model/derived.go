package model

// The derived tables computed by the pipeline. Optional statistics are
// pointers; nil means undefined (never a zero placeholder).

// SpeedTrapSummary holds the per-driver speed trap aggregate.
// Rank 1 is the fastest mean reading; drivers without any reading keep a
// nil AvgSpeed and rank behind every driver with one.
type SpeedTrapSummary struct {
	Driver     string   `json:"driver"`
	Team       string   `json:"team"`
	DriverTeam string   `json:"driverTeam"`
	AvgSpeed   *float64 `json:"avgSpeed,omitempty"`
	Rank       int      `json:"rank"`
	TeamColor  string   `json:"teamColor"`
}

// DragDownforcePoint is one driver in the drag/downforce tradeoff view.
// Result is the finishing position as a string or "DNF"; it stays empty
// when the driver is missing from the results table.
type DragDownforcePoint struct {
	Driver        string   `json:"driver"`
	AvgSpeed      *float64 `json:"avgSpeed,omitempty"`
	AvgLapSeconds float64  `json:"avgLapSeconds"`
	Result        string   `json:"result,omitempty"`
	Label         string   `json:"label"`
}

// CompoundDegradationPoint is the lap time aggregate of one
// (lap number, compound) group.
type CompoundDegradationPoint struct {
	LapNumber     int      `json:"lapNumber"`
	Compound      Compound `json:"compound"`
	AvgLapSeconds float64  `json:"avgLapSeconds"`
	// StdDevSeconds is the sample standard deviation; nil for
	// single-sample groups.
	StdDevSeconds *float64 `json:"stdDevSeconds,omitempty"`
	SampleCount   int      `json:"sampleCount"`
}

// PodiumLap is one lap of a podium finisher in the race pace trace.
type PodiumLap struct {
	Driver         string   `json:"driver"`
	Team           string   `json:"team"`
	DriverTeam     string   `json:"driverTeam"`
	LapNumber      int      `json:"lapNumber"`
	LapSeconds     float64  `json:"lapSeconds"`
	Compound       Compound `json:"compound"`
	Position       *int     `json:"position,omitempty"`
	FinishPosition int      `json:"finishPosition"`
	StartPosition  *int     `json:"startPosition,omitempty"`
	// PositionDelta is start minus current position; positive means
	// places gained. ChangeText renders it signed ("+4", "-2", "0").
	PositionDelta *int   `json:"positionDelta,omitempty"`
	ChangeText    string `json:"changeText,omitempty"`
	PitStop       bool   `json:"pitStop"`
}

// FastestLap identifies the overall fastest lap of the session.
type FastestLap struct {
	Driver     string  `json:"driver"`
	LapNumber  int     `json:"lapNumber"`
	LapSeconds float64 `json:"lapSeconds"`
}
