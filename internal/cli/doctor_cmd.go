package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/marty/internal/cli/formatter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const doctorProbeTimeout = 3 * time.Second

var errChecksFailed = errors.New("some checks failed")

func newDoctorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the config, calendar store and language model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := runProbes(cmd.Context(), app)
			if err := formatter.RenderHealth(cmd.OutOrStdout(), rows); err != nil {
				return err
			}
			for _, r := range rows {
				if !r.OK {
					return errChecksFailed
				}
			}
			return nil
		},
	}
}

// runProbes checks each dependency concurrently. A failing probe is
// reported in its row, never as an error, so every row is filled.
func runProbes(ctx context.Context, app *App) []formatter.HealthRow {
	probes := []func(context.Context) formatter.HealthRow{
		func(context.Context) formatter.HealthRow { return probeConfig(app) },
		func(ctx context.Context) formatter.HealthRow { return probeCalendar(ctx, app) },
		func(ctx context.Context) formatter.HealthRow { return probeLLM(ctx, app) },
	}

	rows := make([]formatter.HealthRow, len(probes))
	g, gctx := errgroup.WithContext(ctx)
	for i, probe := range probes {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(gctx, doctorProbeTimeout)
			defer cancel()
			rows[i] = probe(pctx)
			return nil
		})
	}
	_ = g.Wait()
	return rows
}

func probeConfig(app *App) formatter.HealthRow {
	row := formatter.HealthRow{Check: "config", OK: true, Detail: "built-in defaults"}
	if app.Config.File != "" {
		row.Detail = app.Config.File
	}
	return row
}

func probeCalendar(ctx context.Context, app *App) formatter.HealthRow {
	row := formatter.HealthRow{Check: "calendar"}
	n, err := app.Calendar.Count(ctx)
	if err != nil {
		row.Detail = err.Error()
		return row
	}
	row.OK = true
	row.Detail = fmt.Sprintf("%d events in %s", n, app.Config.DBPath)
	return row
}

func probeLLM(ctx context.Context, app *App) formatter.HealthRow {
	row := formatter.HealthRow{Check: "llm"}
	if app.LLM == nil {
		row.OK = true
		row.Detail = "disabled (chat off, keyword confirmations)"
		return row
	}
	target := fmt.Sprintf("%s %s", app.Config.LLM.Provider, app.Config.LLM.Model)
	if !app.LLM.Available(ctx) {
		row.Detail = target + " unreachable"
		return row
	}
	row.OK = true
	row.Detail = target
	return row
}
