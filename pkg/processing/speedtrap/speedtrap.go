// Package speedtrap computes the per-driver speed trap ranking and the
// categorical ordering used by the distribution view.
package speedtrap

import (
	"sort"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/model"
)

// DefaultPalette has a fixed size; team color assignment wraps around it.
var DefaultPalette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

type (
	Option     func(a *Aggregator)
	Aggregator struct {
		l       *log.Logger
		palette []string
	}

	// Result is the speed trap summary table plus the driver ordering
	// list consumers use to keep categorical axes consistent and the
	// per-team color assignment.
	Result struct {
		Summaries   []model.SpeedTrapSummary `json:"summaries"`
		DriverOrder []string                 `json:"driverOrder"`
		TeamColors  map[string]string        `json:"teamColors"`
	}

	driverAgg struct {
		driver string
		team   string
		sum    float64
		count  int
	}
)

func WithLogger(arg *log.Logger) Option {
	return func(a *Aggregator) {
		a.l = arg
	}
}

func WithPalette(arg []string) Option {
	return func(a *Aggregator) {
		if len(arg) > 0 {
			a.palette = arg
		}
	}
}

func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		l:       log.Default().Named("speedtrap"),
		palette: DefaultPalette,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate computes the mean speed trap reading per driver (nil readings
// ignored), ranks drivers descending by mean and assigns team colors by
// first-seen order in the ranked list. Drivers without any reading keep a
// nil mean and sort last, stable in input order.
func (a *Aggregator) Aggregate(laps []model.NormalizedLap) *Result {
	aggs := collectDrivers(laps)
	sort.SliceStable(aggs, func(i, j int) bool {
		if aggs[i].count == 0 {
			return false
		}
		if aggs[j].count == 0 {
			return true
		}
		return aggs[i].mean() > aggs[j].mean()
	})

	ret := &Result{
		Summaries:   make([]model.SpeedTrapSummary, 0, len(aggs)),
		DriverOrder: make([]string, 0, len(aggs)),
		TeamColors:  make(map[string]string),
	}
	for i := range aggs {
		if _, ok := ret.TeamColors[aggs[i].team]; !ok {
			ret.TeamColors[aggs[i].team] = a.palette[len(ret.TeamColors)%len(a.palette)]
		}
		summary := model.SpeedTrapSummary{
			Driver:     aggs[i].driver,
			Team:       aggs[i].team,
			DriverTeam: aggs[i].driver + " (" + aggs[i].team + ")",
			Rank:       i + 1,
			TeamColor:  ret.TeamColors[aggs[i].team],
		}
		if aggs[i].count > 0 {
			m := aggs[i].mean()
			summary.AvgSpeed = &m
		} else {
			a.l.Debug("driver without speed trap readings sorts last",
				log.String("driver", aggs[i].driver))
		}
		ret.Summaries = append(ret.Summaries, summary)
		ret.DriverOrder = append(ret.DriverOrder, aggs[i].driver)
	}
	return ret
}

func (d *driverAgg) mean() float64 {
	return d.sum / float64(d.count)
}

// collectDrivers keeps the first-seen input order, which is the
// tie-breaker of the ranking.
func collectDrivers(laps []model.NormalizedLap) []driverAgg {
	index := make(map[string]int)
	ret := make([]driverAgg, 0)
	for i := range laps {
		pos, ok := index[laps[i].Driver]
		if !ok {
			pos = len(ret)
			index[laps[i].Driver] = pos
			ret = append(ret, driverAgg{driver: laps[i].Driver, team: laps[i].Team})
		}
		if laps[i].SpeedTrap != nil {
			ret[pos].sum += *laps[i].SpeedTrap
			ret[pos].count++
		}
	}
	return ret
}
