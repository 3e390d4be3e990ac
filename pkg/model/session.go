package model

// StatusFinished is the results status of a driver who saw the
// checkered flag. Everything else counts as DNF.
const StatusFinished = "Finished"

// ResultRow is one entry of the session results table.
type ResultRow struct {
	Driver   string `json:"driver"`
	Position *int   `json:"position,omitempty"`
	Status   string `json:"status"`
}

// SessionData is the immutable input of one pipeline run: the per-lap
// table plus the results table for a single race session.
type SessionData struct {
	Laps    []LapRecord `json:"laps"`
	Results []ResultRow `json:"results"`
}
