package podium

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrace/raceview/pkg/model"
)

func posLap(driver string, lap int, pos *int) model.NormalizedLap {
	return model.NormalizedLap{
		LapRecord: model.LapRecord{
			Driver:    driver,
			LapNumber: lap,
			Position:  pos,
			Compound:  model.CompoundSoft,
		},
		LapSeconds: 80,
	}
}

func TestAnnotate_SelectsFinalPodium(t *testing.T) {
	laps := []model.NormalizedLap{
		// D leads lap 1 but retires: final recorded position is 12
		posLap("D", 1, lo.ToPtr(1)),
		posLap("D", 2, lo.ToPtr(12)),
		posLap("A", 1, lo.ToPtr(2)),
		posLap("A", 2, lo.ToPtr(1)),
		posLap("B", 1, lo.ToPtr(3)),
		posLap("B", 2, lo.ToPtr(2)),
		posLap("C", 1, lo.ToPtr(4)),
		posLap("C", 2, lo.ToPtr(3)),
	}
	got := NewAnnotator().Annotate(laps)

	drivers := lo.Uniq(lo.Map(got.Traces, func(l model.PodiumLap, _ int) string {
		return l.Driver
	}))
	assert.Equal(t, []string{"A", "B", "C"}, drivers)
}

func TestAnnotate_PositionDeltaAndChangeText(t *testing.T) {
	laps := []model.NormalizedLap{
		posLap("C", 1, lo.ToPtr(5)),
		posLap("C", 10, lo.ToPtr(1)),
	}
	got := NewAnnotator().Annotate(laps)

	require.Len(t, got.Traces, 2)
	last := got.Traces[1]
	require.NotNil(t, last.StartPosition)
	assert.Equal(t, 5, *last.StartPosition)
	require.NotNil(t, last.PositionDelta)
	assert.Equal(t, 4, *last.PositionDelta)
	assert.Equal(t, "+4", last.ChangeText)

	first := got.Traces[0]
	require.NotNil(t, first.PositionDelta)
	assert.Equal(t, 0, *first.PositionDelta)
	assert.Equal(t, "0", first.ChangeText)
}

func TestAnnotate_NegativeChangeKeepsSign(t *testing.T) {
	laps := []model.NormalizedLap{
		posLap("A", 1, lo.ToPtr(1)),
		posLap("A", 2, lo.ToPtr(3)),
	}
	got := NewAnnotator().Annotate(laps)

	require.Len(t, got.Traces, 2)
	assert.Equal(t, "-2", got.Traces[1].ChangeText)
}

func TestAnnotate_MissingPositionsStayUndefined(t *testing.T) {
	laps := []model.NormalizedLap{
		posLap("A", 1, nil),
		posLap("A", 2, lo.ToPtr(1)),
	}
	got := NewAnnotator().Annotate(laps)

	require.Len(t, got.Traces, 2)
	// lap without recorded position has no delta
	assert.Nil(t, got.Traces[0].PositionDelta)
	assert.Empty(t, got.Traces[0].ChangeText)
	// start position is the first recorded one
	require.NotNil(t, got.Traces[1].StartPosition)
	assert.Equal(t, 1, *got.Traces[1].StartPosition)
}

func TestAnnotate_PitStopFlagAndSubset(t *testing.T) {
	pitIn := time.Date(2024, 9, 1, 14, 30, 0, 0, time.UTC)
	withPit := posLap("A", 2, lo.ToPtr(1))
	withPit.PitInTime = &pitIn

	laps := []model.NormalizedLap{
		posLap("A", 1, lo.ToPtr(1)),
		withPit,
		posLap("A", 3, lo.ToPtr(1)),
	}
	got := NewAnnotator().Annotate(laps)

	flags := lo.Map(got.Traces, func(l model.PodiumLap, _ int) bool { return l.PitStop })
	assert.Equal(t, []bool{false, true, false}, flags)
	require.Len(t, got.PitStops, 1)
	assert.Equal(t, 2, got.PitStops[0].LapNumber)
}

// a shared podium position is a data anomaly; both drivers stay in
func TestAnnotate_SharedPositionKeepsBothDrivers(t *testing.T) {
	laps := []model.NormalizedLap{
		posLap("A", 1, lo.ToPtr(1)),
		posLap("B", 1, lo.ToPtr(2)),
		posLap("C", 1, lo.ToPtr(2)),
	}
	got := NewAnnotator().Annotate(laps)

	drivers := lo.Uniq(lo.Map(got.Traces, func(l model.PodiumLap, _ int) string {
		return l.Driver
	}))
	assert.Equal(t, []string{"A", "B", "C"}, drivers)
}
