// Package tradeoff joins per-driver pace and top speed with the race
// result into the drag/downforce scatter table.
package tradeoff

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/model"
)

type (
	Option func(j *Joiner)
	Joiner struct {
		l *log.Logger
	}

	driverAgg struct {
		driver   string
		lapSum   float64
		lapCount int
		trapSum  float64
		trapNum  int
	}
)

func WithLogger(arg *log.Logger) Option {
	return func(j *Joiner) {
		j.l = arg
	}
}

func NewJoiner(opts ...Option) *Joiner {
	j := &Joiner{l: log.Default().Named("tradeoff")}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Join computes mean lap time and mean speed trap reading per driver and
// left-joins the results table onto it. Every driver of the lap table
// appears exactly once; a driver missing from the results keeps an empty
// result label and is reported as a data-quality gap instead of being
// dropped.
func (j *Joiner) Join(
	laps []model.NormalizedLap,
	results []model.ResultRow,
) []model.DragDownforcePoint {
	byDriver := lo.KeyBy(results, func(r model.ResultRow) string { return r.Driver })

	aggs := collectDrivers(laps)
	ret := make([]model.DragDownforcePoint, 0, len(aggs))
	for i := range aggs {
		point := model.DragDownforcePoint{
			Driver:        aggs[i].driver,
			AvgLapSeconds: aggs[i].lapSum / float64(aggs[i].lapCount),
		}
		if aggs[i].trapNum > 0 {
			m := aggs[i].trapSum / float64(aggs[i].trapNum)
			point.AvgSpeed = &m
		}
		point.Result, point.Label = j.resultLabel(aggs[i].driver, byDriver)
		ret = append(ret, point)
	}
	return ret
}

// resultLabel derives "DNF" for any status other than Finished, the plain
// integer position otherwise. Missing join data yields an empty result
// and a bare driver label.
func (j *Joiner) resultLabel(
	driver string,
	results map[string]model.ResultRow,
) (result, label string) {
	row, ok := results[driver]
	if !ok {
		j.l.Warn("driver missing from results table", log.String("driver", driver))
		return "", driver
	}
	switch {
	case row.Status != model.StatusFinished:
		result = "DNF"
	case row.Position == nil:
		j.l.Warn("finished driver without position",
			log.String("driver", driver), log.String("status", row.Status))
		return "", driver
	default:
		result = strconv.Itoa(*row.Position)
	}
	return result, result + " - " + driver
}

func collectDrivers(laps []model.NormalizedLap) []driverAgg {
	index := make(map[string]int)
	ret := make([]driverAgg, 0)
	for i := range laps {
		pos, ok := index[laps[i].Driver]
		if !ok {
			pos = len(ret)
			index[laps[i].Driver] = pos
			ret = append(ret, driverAgg{driver: laps[i].Driver})
		}
		ret[pos].lapSum += laps[i].LapSeconds
		ret[pos].lapCount++
		if laps[i].SpeedTrap != nil {
			ret[pos].trapSum += *laps[i].SpeedTrap
			ret[pos].trapNum++
		}
	}
	return ret
}
