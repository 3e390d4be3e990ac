// Package degradation aggregates lap times by (lap number, compound) for
// the tyre degradation view.
package degradation

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/model"
)

type (
	Option     func(a *Aggregator)
	Aggregator struct {
		l *log.Logger
	}

	groupKey struct {
		lapNumber int
		compound  model.Compound
	}
)

func WithLogger(arg *log.Logger) Option {
	return func(a *Aggregator) {
		a.l = arg
	}
}

func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{l: log.Default().Named("degradation")}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate computes mean and sample standard deviation of the lap time
// per (lap number, compound) group. Laps without compound information are
// excluded. The standard deviation of a single-sample group is undefined
// and stays nil.
func (a *Aggregator) Aggregate(laps []model.NormalizedLap) []model.CompoundDegradationPoint {
	groups := lo.GroupBy(
		lo.Filter(laps, func(l model.NormalizedLap, _ int) bool {
			return l.Compound.Known()
		}),
		func(l model.NormalizedLap) groupKey {
			return groupKey{lapNumber: l.LapNumber, compound: l.Compound}
		})

	ret := make([]model.CompoundDegradationPoint, 0, len(groups))
	for key, members := range groups {
		point := model.CompoundDegradationPoint{
			LapNumber:   key.lapNumber,
			Compound:    key.compound,
			SampleCount: len(members),
		}
		point.AvgLapSeconds, point.StdDevSeconds = meanStd(members)
		if point.StdDevSeconds == nil {
			a.l.Debug("single-sample group without standard deviation",
				log.Int("lap", key.lapNumber), log.String("compound", string(key.compound)))
		}
		ret = append(ret, point)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].LapNumber != ret[j].LapNumber {
			return ret[i].LapNumber < ret[j].LapNumber
		}
		return ret[i].Compound < ret[j].Compound
	})
	return ret
}

func meanStd(laps []model.NormalizedLap) (mean float64, stddev *float64) {
	for i := range laps {
		mean += laps[i].LapSeconds
	}
	mean /= float64(len(laps))
	if len(laps) < 2 {
		return mean, nil
	}
	var sqSum float64
	for i := range laps {
		d := laps[i].LapSeconds - mean
		sqSum += d * d
	}
	sd := math.Sqrt(sqSum / float64(len(laps)-1))
	return mean, &sd
}
