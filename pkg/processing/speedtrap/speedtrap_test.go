package speedtrap

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrace/raceview/pkg/model"
)

func trapLap(driver, team string, trap *float64) model.NormalizedLap {
	return model.NormalizedLap{
		LapRecord: model.LapRecord{
			Driver:    driver,
			Team:      team,
			LapNumber: 1,
			SpeedTrap: trap,
		},
		LapSeconds: 80,
		DriverTeam: driver + " (" + team + ")",
	}
}

func TestAggregate_RankByMeanDescending(t *testing.T) {
	laps := []model.NormalizedLap{
		trapLap("A", "T1", lo.ToPtr(300.0)),
		trapLap("B", "T2", lo.ToPtr(320.0)),
		trapLap("C", "T3", lo.ToPtr(305.0)),
		trapLap("C", "T3", lo.ToPtr(315.0)),
	}
	got := NewAggregator().Aggregate(laps)

	assert.Equal(t, []string{"B", "C", "A"}, got.DriverOrder)
	require.Len(t, got.Summaries, 3)
	for i := range got.Summaries {
		assert.Equal(t, i+1, got.Summaries[i].Rank)
	}
	require.NotNil(t, got.Summaries[1].AvgSpeed)
	assert.InDelta(t, 310.0, *got.Summaries[1].AvgSpeed, 1e-9)
}

func TestAggregate_TiesKeepInputOrder(t *testing.T) {
	laps := []model.NormalizedLap{
		trapLap("A", "T1", lo.ToPtr(300.0)),
		trapLap("B", "T2", lo.ToPtr(300.0)),
		trapLap("C", "T3", lo.ToPtr(300.0)),
	}
	got := NewAggregator().Aggregate(laps)
	assert.Equal(t, []string{"A", "B", "C"}, got.DriverOrder)
}

func TestAggregate_AllNullReadingsSortLast(t *testing.T) {
	laps := []model.NormalizedLap{
		trapLap("A", "T1", nil),
		trapLap("B", "T2", lo.ToPtr(280.0)),
		trapLap("A", "T1", nil),
		trapLap("C", "T3", nil),
	}
	got := NewAggregator().Aggregate(laps)

	assert.Equal(t, []string{"B", "A", "C"}, got.DriverOrder)
	assert.Nil(t, got.Summaries[1].AvgSpeed)
	assert.Nil(t, got.Summaries[2].AvgSpeed)
	// undefined means still extend the rank permutation
	assert.Equal(t, 3, got.Summaries[2].Rank)
}

func TestAggregate_TeamColors(t *testing.T) {
	laps := []model.NormalizedLap{
		trapLap("A", "T1", lo.ToPtr(310.0)),
		trapLap("B", "T2", lo.ToPtr(320.0)),
		trapLap("C", "T1", lo.ToPtr(300.0)),
	}
	got := NewAggregator().Aggregate(laps)

	// first-seen order in the ranked list: T2 (via B), then T1
	assert.Equal(t, DefaultPalette[0], got.TeamColors["T2"])
	assert.Equal(t, DefaultPalette[1], got.TeamColors["T1"])
	// teammates share a color
	assert.Equal(t, got.Summaries[1].TeamColor, got.Summaries[2].TeamColor)
}

func TestAggregate_PaletteWrapsAround(t *testing.T) {
	palette := []string{"#111", "#222"}
	laps := []model.NormalizedLap{
		trapLap("A", "T1", lo.ToPtr(330.0)),
		trapLap("B", "T2", lo.ToPtr(320.0)),
		trapLap("C", "T3", lo.ToPtr(310.0)),
	}
	got := NewAggregator(WithPalette(palette)).Aggregate(laps)
	assert.Equal(t, "#111", got.TeamColors["T1"])
	assert.Equal(t, "#222", got.TeamColors["T2"])
	assert.Equal(t, "#111", got.TeamColors["T3"])
}
