// Package normalize validates the raw per-lap table and derives the base
// fields every later pipeline stage depends on.
package normalize

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/model"
)

// MalformedInputError signals that the per-lap input table cannot feed
// the pipeline: required fields are absent or no usable rows remain after
// filtering null lap times. It is deterministic for a given input and is
// surfaced to the caller instead of being retried.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed lap data: %s", e.Reason)
}

type (
	Option     func(n *Normalizer)
	Normalizer struct {
		l *log.Logger
	}

	compoundKey struct {
		driver   string
		compound model.Compound
	}
)

func WithLogger(arg *log.Logger) Option {
	return func(n *Normalizer) {
		n.l = arg
	}
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{l: log.Default().Named("normalize")}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize drops records without a lap time, converts lap times to
// seconds, assigns the running tyre life counter per (driver, compound)
// in lap-number order and builds the driver/team label. Output rows keep
// the input order.
func (n *Normalizer) Normalize(records []model.LapRecord) ([]model.NormalizedLap, error) {
	if len(records) == 0 {
		return nil, &MalformedInputError{Reason: "empty lap table"}
	}
	for i := range records {
		if err := checkRecord(&records[i]); err != nil {
			return nil, err
		}
	}
	timed := lo.Filter(records, func(r model.LapRecord, _ int) bool {
		return r.LapTime != nil
	})
	if len(timed) == 0 {
		return nil, &MalformedInputError{Reason: "no laps with a recorded lap time"}
	}
	if dropped := len(records) - len(timed); dropped > 0 {
		n.l.Debug("dropped laps without lap time", log.Int("count", dropped))
	}

	ret := make([]model.NormalizedLap, len(timed))
	for i := range timed {
		ret[i] = model.NormalizedLap{
			LapRecord:  timed[i],
			LapSeconds: timed[i].LapTime.Seconds(),
			DriverTeam: fmt.Sprintf("%s (%s)", timed[i].Driver, timed[i].Team),
		}
	}
	assignTyreLife(ret)
	return ret, nil
}

// tyre life is a 1-based counter per (driver, compound) in lap-number
// order, continuous across non-contiguous stints on the same compound
func assignTyreLife(laps []model.NormalizedLap) {
	byLap := make([]int, len(laps))
	for i := range byLap {
		byLap[i] = i
	}
	sort.SliceStable(byLap, func(a, b int) bool {
		return laps[byLap[a]].LapNumber < laps[byLap[b]].LapNumber
	})
	counter := make(map[compoundKey]int)
	for _, idx := range byLap {
		key := compoundKey{driver: laps[idx].Driver, compound: laps[idx].Compound}
		counter[key]++
		laps[idx].TyreLife = counter[key]
	}
}

func checkRecord(r *model.LapRecord) error {
	if r.Driver == "" {
		return &MalformedInputError{Reason: "record without driver id"}
	}
	if r.LapNumber < 1 {
		return &MalformedInputError{
			Reason: fmt.Sprintf("driver %s: invalid lap number %d", r.Driver, r.LapNumber),
		}
	}
	return nil
}
