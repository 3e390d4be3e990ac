// Package api implements the session source against the timing
// provider's HTTP JSON endpoints. Wire column names live here only; the
// core depends on the semantic fields of model.LapRecord.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/model"
	"github.com/openrace/raceview/pkg/session"
)

const defaultTimeout = 60 * time.Second

type (
	Option func(c *Client)
	Client struct {
		baseURL string
		hc      *http.Client
		l       *log.Logger
	}

	lapDTO struct {
		Driver       string     `json:"driver"`
		Team         string     `json:"team"`
		LapNumber    int        `json:"lapNumber"`
		LapTimeMs    *float64   `json:"lapTimeMs"`
		Compound     string     `json:"compound"`
		Position     *int       `json:"position"`
		PitInTime    *time.Time `json:"pitInTime"`
		PitOutTime   *time.Time `json:"pitOutTime"`
		SpeedTrapKph *float64   `json:"speedTrapKph"`
	}

	resultDTO struct {
		Abbreviation string `json:"abbreviation"`
		Position     *int   `json:"position"`
		Status       string `json:"status"`
	}
)

func WithHTTPClient(arg *http.Client) Option {
	return func(c *Client) {
		c.hc = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(c *Client) {
		c.l = arg
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: defaultTimeout},
		l:       log.Default().Named("session.api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ session.Source = (*Client)(nil)

// Fetch loads the lap and results tables of one session. Both requests
// honor ctx; a session fetch may be long-running on the provider side.
func (c *Client) Fetch(
	ctx context.Context,
	sel session.Selector,
) (*model.SessionData, error) {
	var laps []lapDTO
	if err := c.getJSON(ctx, c.sessionURL(sel, "laps"), &laps); err != nil {
		return nil, fmt.Errorf("laps: %w", err)
	}
	var results []resultDTO
	if err := c.getJSON(ctx, c.sessionURL(sel, "results"), &results); err != nil {
		return nil, fmt.Errorf("results: %w", err)
	}
	c.l.Debug("session fetched",
		log.String("session", sel.String()),
		log.Int("laps", len(laps)),
		log.Int("results", len(results)))

	ret := &model.SessionData{
		Laps:    make([]model.LapRecord, 0, len(laps)),
		Results: make([]model.ResultRow, 0, len(results)),
	}
	for i := range laps {
		ret.Laps = append(ret.Laps, laps[i].toModel())
	}
	for i := range results {
		ret.Results = append(ret.Results, model.ResultRow{
			Driver:   results[i].Abbreviation,
			Position: results[i].Position,
			Status:   results[i].Status,
		})
	}
	return ret, nil
}

func (c *Client) sessionURL(sel session.Selector, table string) string {
	return fmt.Sprintf("%s/seasons/%d/events/%s/race/%s",
		c.baseURL, sel.Season, url.PathEscape(sel.GrandPrix), table)
}

func (c *Client) getJSON(ctx context.Context, rawURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", rawURL, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

func (d *lapDTO) toModel() model.LapRecord {
	ret := model.LapRecord{
		Driver:     d.Driver,
		Team:       d.Team,
		LapNumber:  d.LapNumber,
		Compound:   model.ParseCompound(d.Compound),
		Position:   d.Position,
		PitInTime:  d.PitInTime,
		PitOutTime: d.PitOutTime,
		SpeedTrap:  d.SpeedTrapKph,
	}
	if d.LapTimeMs != nil {
		lt := time.Duration(*d.LapTimeMs * float64(time.Millisecond))
		ret.LapTime = &lt
	}
	return ret
}
