// Package podium isolates the top-3 finishers and annotates their laps
// with position changes and pit stop flags.
package podium

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/model"
)

type (
	Option    func(a *Annotator)
	Annotator struct {
		l *log.Logger
	}

	// Result is the annotated lap trace of the podium finishers plus the
	// subset of laps with a pit stop, used for overlay markers.
	Result struct {
		Traces   []model.PodiumLap `json:"traces"`
		PitStops []model.PodiumLap `json:"pitStops"`
	}

	driverPositions struct {
		start *int
		final *int
	}
)

func WithLogger(arg *log.Logger) Option {
	return func(a *Annotator) {
		a.l = arg
	}
}

func NewAnnotator(opts ...Option) *Annotator {
	a := &Annotator{l: log.Default().Named("podium")}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Annotate selects the drivers whose final recorded position is 1-3 and
// builds their lap trace. Classification uses the final position only; a
// driver momentarily running P1-P3 mid-race does not qualify. If the data
// anomalously reports the same podium position for two drivers, both are
// retained.
func (a *Annotator) Annotate(laps []model.NormalizedLap) *Result {
	positions := collectPositions(laps)

	type finisher struct {
		driver string
		pos    int
	}
	podium := make([]finisher, 0, 3)
	for driver, p := range positions {
		if p.final != nil && *p.final >= 1 && *p.final <= 3 {
			podium = append(podium, finisher{driver: driver, pos: *p.final})
		}
	}
	sort.Slice(podium, func(i, j int) bool {
		if podium[i].pos != podium[j].pos {
			return podium[i].pos < podium[j].pos
		}
		return podium[i].driver < podium[j].driver
	})
	if count := lo.CountValuesBy(podium, func(f finisher) int { return f.pos }); len(count) < len(podium) {
		a.l.Warn("shared podium position in results data", log.Any("podium", podium))
	}

	ret := &Result{Traces: []model.PodiumLap{}, PitStops: []model.PodiumLap{}}
	for _, fin := range podium {
		driverLaps := lo.Filter(laps, func(l model.NormalizedLap, _ int) bool {
			return l.Driver == fin.driver
		})
		sort.SliceStable(driverLaps, func(i, j int) bool {
			return driverLaps[i].LapNumber < driverLaps[j].LapNumber
		})
		start := positions[fin.driver].start
		for i := range driverLaps {
			entry := annotateLap(&driverLaps[i], fin.pos, start)
			ret.Traces = append(ret.Traces, entry)
			if entry.PitStop {
				ret.PitStops = append(ret.PitStops, entry)
			}
		}
	}
	return ret
}

func annotateLap(lap *model.NormalizedLap, finishPos int, start *int) model.PodiumLap {
	entry := model.PodiumLap{
		Driver:         lap.Driver,
		Team:           lap.Team,
		DriverTeam:     lap.DriverTeam,
		LapNumber:      lap.LapNumber,
		LapSeconds:     lap.LapSeconds,
		Compound:       lap.Compound,
		Position:       lap.Position,
		FinishPosition: finishPos,
		StartPosition:  start,
		PitStop:        lap.PitInTime != nil,
	}
	if start != nil && lap.Position != nil {
		delta := *start - *lap.Position
		entry.PositionDelta = &delta
		entry.ChangeText = changeText(delta)
	}
	return entry
}

// changeText renders gains with an explicit plus sign; losses keep their
// minus sign, zero renders as "0".
func changeText(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}

// collectPositions derives start and final position per driver as the
// first and last recorded (non-nil) position in lap-number order.
// Missing positions stay nil instead of failing the stage.
func collectPositions(laps []model.NormalizedLap) map[string]driverPositions {
	ordered := make([]model.NormalizedLap, len(laps))
	copy(ordered, laps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].LapNumber < ordered[j].LapNumber
	})
	ret := make(map[string]driverPositions)
	for i := range ordered {
		lap := &ordered[i]
		entry := ret[lap.Driver]
		if lap.Position != nil {
			if entry.start == nil {
				entry.start = lap.Position
			}
			entry.final = lap.Position
		}
		ret[lap.Driver] = entry
	}
	return ret
}
