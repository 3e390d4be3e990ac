package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrace/raceview/pkg/metrics"
	"github.com/openrace/raceview/pkg/model"
	"github.com/openrace/raceview/pkg/processing"
	"github.com/openrace/raceview/pkg/session"
)

type fakeSource struct {
	data *model.SessionData
	err  error
}

func (f *fakeSource) Fetch(
	_ context.Context, _ session.Selector,
) (*model.SessionData, error) {
	return f.data, f.err
}

func newTestRouter(src session.Source) http.Handler {
	return New(&Dependencies{
		Loader:    session.NewLoader(src),
		Processor: processing.NewProcessor(),
		Metrics:   metrics.NewManager(),
	})
}

func sessionFixture() *model.SessionData {
	lap := func(driver, team string, num int, secs, trap float64, pos int) model.LapRecord {
		return model.LapRecord{
			Driver:    driver,
			Team:      team,
			LapNumber: num,
			LapTime:   lo.ToPtr(time.Duration(secs * float64(time.Second))),
			Compound:  model.CompoundMedium,
			Position:  lo.ToPtr(pos),
			SpeedTrap: lo.ToPtr(trap),
		}
	}
	return &model.SessionData{
		Laps: []model.LapRecord{
			lap("VER", "Red Bull", 1, 92.1, 328.0, 1),
			lap("VER", "Red Bull", 2, 91.8, 330.5, 1),
			lap("LEC", "Ferrari", 1, 92.6, 331.2, 2),
			lap("LEC", "Ferrari", 2, 92.4, 329.9, 2),
		},
		Results: []model.ResultRow{
			{Driver: "VER", Position: lo.ToPtr(1), Status: model.StatusFinished},
			{Driver: "LEC", Position: lo.ToPtr(2), Status: model.StatusFinished},
		},
	}
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	rec := doGet(t, newTestRouter(&fakeSource{data: sessionFixture()}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Seasons(t *testing.T) {
	rec := doGet(t, newTestRouter(&fakeSource{data: sessionFixture()}), "/api/v1/seasons")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Seasons []int `json:"seasons"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, model.Seasons(), body.Seasons)
}

func TestServer_SpeedTrap(t *testing.T) {
	rec := doGet(t, newTestRouter(&fakeSource{data: sessionFixture()}),
		"/api/v1/seasons/2024/events/Monza/race/speedtrap")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Summaries []struct {
			Driver   string   `json:"driver"`
			AvgSpeed *float64 `json:"avgSpeed"`
			Rank     int      `json:"rank"`
		} `json:"summaries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Summaries, 2)
	// LEC averages 330.55 kph vs VER's 329.25 and ranks first.
	assert.Equal(t, "LEC", body.Summaries[0].Driver)
	assert.Equal(t, 1, body.Summaries[0].Rank)
	require.NotNil(t, body.Summaries[0].AvgSpeed)
	assert.InDelta(t, 330.55, *body.Summaries[0].AvgSpeed, 1e-9)
}

func TestServer_Tradeoff(t *testing.T) {
	rec := doGet(t, newTestRouter(&fakeSource{data: sessionFixture()}),
		"/api/v1/seasons/2024/events/Monza/race/tradeoff")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Points []model.DragDownforcePoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	labels := lo.Map(body.Points, func(p model.DragDownforcePoint, _ int) string {
		return p.Label
	})
	assert.ElementsMatch(t, []string{"1 - VER", "2 - LEC"}, labels)
}

func TestServer_BadSelector(t *testing.T) {
	router := newTestRouter(&fakeSource{data: sessionFixture()})

	rec := doGet(t, router, "/api/v1/seasons/2024/events/Atlantis/race/podium")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, router, "/api/v1/seasons/1984/events/Monza/race/podium")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, router, "/api/v1/seasons/current/events/Monza/race/podium")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_SourceError(t *testing.T) {
	router := newTestRouter(&fakeSource{err: fmt.Errorf("provider down")})
	rec := doGet(t, router, "/api/v1/seasons/2024/events/Monza/race/laps")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_UnusableSession(t *testing.T) {
	// Laps without any recorded times cannot be normalized.
	data := sessionFixture()
	for i := range data.Laps {
		data.Laps[i].LapTime = nil
	}
	router := newTestRouter(&fakeSource{data: data})
	rec := doGet(t, router, "/api/v1/seasons/2024/events/Monza/race")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
