package tradeoff

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrace/raceview/pkg/model"
)

func paceLap(driver string, secs float64, trap *float64) model.NormalizedLap {
	return model.NormalizedLap{
		LapRecord: model.LapRecord{
			Driver:    driver,
			LapNumber: 1,
			SpeedTrap: trap,
		},
		LapSeconds: secs,
	}
}

func TestJoin_OnePointPerDriver(t *testing.T) {
	laps := []model.NormalizedLap{
		paceLap("A", 80, lo.ToPtr(300.0)),
		paceLap("B", 82, lo.ToPtr(310.0)),
		paceLap("A", 84, lo.ToPtr(310.0)),
	}
	results := []model.ResultRow{
		{Driver: "A", Position: lo.ToPtr(1), Status: model.StatusFinished},
		{Driver: "B", Position: lo.ToPtr(2), Status: model.StatusFinished},
	}
	got := NewJoiner().Join(laps, results)

	require.Len(t, got, 2)
	drivers := lo.Map(got, func(p model.DragDownforcePoint, _ int) string { return p.Driver })
	assert.Equal(t, []string{"A", "B"}, drivers)
	assert.InDelta(t, 82.0, got[0].AvgLapSeconds, 1e-9)
	require.NotNil(t, got[0].AvgSpeed)
	assert.InDelta(t, 305.0, *got[0].AvgSpeed, 1e-9)
	assert.Equal(t, "1", got[0].Result)
	assert.Equal(t, "1 - A", got[0].Label)
}

func TestJoin_DNFLabel(t *testing.T) {
	laps := []model.NormalizedLap{paceLap("B", 81, lo.ToPtr(305.0))}
	results := []model.ResultRow{
		// a recorded position does not matter once the status says retired
		{Driver: "B", Position: lo.ToPtr(15), Status: "Retired"},
	}
	got := NewJoiner().Join(laps, results)

	require.Len(t, got, 1)
	assert.Equal(t, "DNF", got[0].Result)
	assert.Equal(t, "DNF - B", got[0].Label)
}

func TestJoin_MissingResultsKeepRow(t *testing.T) {
	laps := []model.NormalizedLap{
		paceLap("A", 80, lo.ToPtr(300.0)),
		paceLap("C", 83, nil),
	}
	results := []model.ResultRow{
		{Driver: "A", Position: lo.ToPtr(1), Status: model.StatusFinished},
	}
	got := NewJoiner().Join(laps, results)

	require.Len(t, got, 2)
	assert.Equal(t, "C", got[1].Driver)
	assert.Empty(t, got[1].Result)
	assert.Equal(t, "C", got[1].Label)
	assert.Nil(t, got[1].AvgSpeed)
}

func TestJoin_FinishedWithoutPosition(t *testing.T) {
	laps := []model.NormalizedLap{paceLap("A", 80, nil)}
	results := []model.ResultRow{
		{Driver: "A", Status: model.StatusFinished},
	}
	got := NewJoiner().Join(laps, results)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Result)
	assert.Equal(t, "A", got[0].Label)
}
