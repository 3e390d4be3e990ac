// Package processing runs the derived-metrics pipeline: a fixed sequence
// of pure transforms from the per-lap table of one session to the derived
// tables behind each analytical view.
package processing

import (
	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/model"
	"github.com/openrace/raceview/pkg/processing/degradation"
	"github.com/openrace/raceview/pkg/processing/normalize"
	"github.com/openrace/raceview/pkg/processing/podium"
	"github.com/openrace/raceview/pkg/processing/speedtrap"
	"github.com/openrace/raceview/pkg/processing/tradeoff"
)

type (
	Option    func(p *Processor)
	Processor struct {
		l           *log.Logger
		normalizer  *normalize.Normalizer
		speedTrap   *speedtrap.Aggregator
		tradeoff    *tradeoff.Joiner
		degradation *degradation.Aggregator
		podium      *podium.Annotator
	}

	// Analysis bundles the derived tables of one pipeline run. All of it
	// is computed fresh per run and never mutated afterwards.
	Analysis struct {
		Laps        []model.NormalizedLap            `json:"laps"`
		SpeedTrap   *speedtrap.Result                `json:"speedTrap"`
		Tradeoff    []model.DragDownforcePoint       `json:"tradeoff"`
		Degradation []model.CompoundDegradationPoint `json:"degradation"`
		Podium      *podium.Result                   `json:"podium"`
		FastestLap  *model.FastestLap                `json:"fastestLap,omitempty"`
	}
)

func WithLogger(arg *log.Logger) Option {
	return func(p *Processor) {
		p.l = arg
	}
}

func WithSpeedTrapAggregator(arg *speedtrap.Aggregator) Option {
	return func(p *Processor) {
		p.speedTrap = arg
	}
}

func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		l:           log.Default().Named("processing"),
		normalizer:  normalize.NewNormalizer(),
		speedTrap:   speedtrap.NewAggregator(),
		tradeoff:    tradeoff.NewJoiner(),
		degradation: degradation.NewAggregator(),
		podium:      podium.NewAnnotator(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessSession runs the stages in dependency order. The only failure
// mode is a malformed input table (normalize.MalformedInputError); every
// later stage is total over normalized laps.
func (p *Processor) ProcessSession(data *model.SessionData) (*Analysis, error) {
	laps, err := p.normalizer.Normalize(data.Laps)
	if err != nil {
		return nil, err
	}
	p.l.Debug("normalized laps",
		log.Int("in", len(data.Laps)), log.Int("out", len(laps)))

	ret := &Analysis{
		Laps:        laps,
		SpeedTrap:   p.speedTrap.Aggregate(laps),
		Tradeoff:    p.tradeoff.Join(laps, data.Results),
		Degradation: p.degradation.Aggregate(laps),
		Podium:      p.podium.Annotate(laps),
		FastestLap:  fastestLap(laps),
	}
	return ret, nil
}

// laps is non-empty here (normalization would have failed otherwise)
func fastestLap(laps []model.NormalizedLap) *model.FastestLap {
	best := 0
	for i := range laps {
		if laps[i].LapSeconds < laps[best].LapSeconds {
			best = i
		}
	}
	return &model.FastestLap{
		Driver:     laps[best].Driver,
		LapNumber:  laps[best].LapNumber,
		LapSeconds: laps[best].LapSeconds,
	}
}
