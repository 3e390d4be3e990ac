// Package analyze provides the one-shot CLI analysis of a session.
package analyze

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	cmdutil "github.com/openrace/raceview/pkg/cmd/util"
	"github.com/openrace/raceview/pkg/config"
	"github.com/openrace/raceview/pkg/processing"
	"github.com/openrace/raceview/pkg/session"
)

var view string

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "loads a session and prints the derived tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&config.Season,
		"season",
		2024,
		"season to analyze")
	cmd.Flags().StringVar(&config.GrandPrix,
		"gp",
		"Monza",
		"grand prix venue to analyze")
	cmd.Flags().StringVar(&view,
		"view",
		"all",
		"view to print (all, speedtrap, tradeoff, degradation, podium)")
	return cmd
}

func runAnalysis(ctx context.Context) error {
	cmdutil.SetupLogger()
	loader, err := cmdutil.NewSessionLoader()
	if err != nil {
		return err
	}
	sel := session.Selector{Season: config.Season, GrandPrix: config.GrandPrix}
	data, err := loader.Load(ctx, sel)
	if err != nil {
		return err
	}
	analysis, err := processing.NewProcessor().ProcessSession(data)
	if err != nil {
		return err
	}

	fmt.Printf("%s - race analysis\n\n", sel)
	if view == "all" || view == "speedtrap" {
		printSpeedTrap(analysis)
	}
	if view == "all" || view == "tradeoff" {
		printTradeoff(analysis)
	}
	if view == "all" || view == "degradation" {
		printDegradation(analysis)
	}
	if view == "all" || view == "podium" {
		printPodium(analysis)
	}
	if analysis.FastestLap != nil {
		fmt.Printf("Fastest lap: %s on lap %d (%.3fs)\n",
			analysis.FastestLap.Driver,
			analysis.FastestLap.LapNumber,
			analysis.FastestLap.LapSeconds)
	}
	return nil
}

func newTable(title string, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	t.AppendHeader(header)
	return t
}

func printSpeedTrap(a *processing.Analysis) {
	t := newTable("Speed trap ranking",
		table.Row{"#", "Driver", "Team", "Avg Speed (km/h)"})
	for i := range a.SpeedTrap.Summaries {
		s := &a.SpeedTrap.Summaries[i]
		t.AppendRow(table.Row{s.Rank, s.Driver, s.Team, optFloat(s.AvgSpeed, 1)})
	}
	t.Render()
	fmt.Println()
}

func printTradeoff(a *processing.Analysis) {
	t := newTable("Drag vs downforce",
		table.Row{"Driver", "Avg Lap (s)", "Avg Speed (km/h)", "Result"})
	for i := range a.Tradeoff {
		p := &a.Tradeoff[i]
		t.AppendRow(table.Row{
			p.Label,
			fmt.Sprintf("%.3f", p.AvgLapSeconds),
			optFloat(p.AvgSpeed, 1),
			p.Result,
		})
	}
	t.Render()
	fmt.Println()
}

func printDegradation(a *processing.Analysis) {
	t := newTable("Tyre degradation",
		table.Row{"Lap", "Compound", "Avg Lap (s)", "Std Dev (s)", "Samples"})
	for i := range a.Degradation {
		p := &a.Degradation[i]
		t.AppendRow(table.Row{
			p.LapNumber,
			string(p.Compound),
			fmt.Sprintf("%.3f", p.AvgLapSeconds),
			optFloat(p.StdDevSeconds, 3),
			p.SampleCount,
		})
	}
	t.Render()
	fmt.Println()
}

func printPodium(a *processing.Analysis) {
	t := newTable("Podium race pace",
		table.Row{"Driver", "Lap", "Lap Time (s)", "Tyre", "Pos", "Change", "Pit"})
	for i := range a.Podium.Traces {
		p := &a.Podium.Traces[i]
		pit := ""
		if p.PitStop {
			pit = "X"
		}
		pos := "-"
		if p.Position != nil {
			pos = strconv.Itoa(*p.Position)
		}
		t.AppendRow(table.Row{
			p.Driver,
			p.LapNumber,
			fmt.Sprintf("%.3f", p.LapSeconds),
			string(p.Compound),
			pos,
			p.ChangeText,
			pit,
		})
	}
	t.Render()
	fmt.Println()
}

func optFloat(val *float64, prec int) string {
	if val == nil {
		return "-"
	}
	return strconv.FormatFloat(*val, 'f', prec, 64)
}
