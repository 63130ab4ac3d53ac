package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/marty/internal/cli/formatter"
	"github.com/alexanderramin/marty/internal/conversation"
	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/scheduler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type planBlock struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Hours float64   `json:"hours" yaml:"hours"`
}

type planOutput struct {
	Hours    float64     `json:"hours" yaml:"hours"`
	Deadline time.Time   `json:"deadline" yaml:"deadline"`
	Window   string      `json:"window" yaml:"window"`
	Feasible bool        `json:"feasible" yaml:"feasible"`
	Blocks   []planBlock `json:"blocks" yaml:"blocks"`
}

func newPlanCmd(app *App) *cobra.Command {
	var (
		hours    float64
		deadline string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview work blocks for a task without touching the calendar",
		Example: `  marty plan --hours 6
  marty plan --hours 3.5 --deadline "next tuesday" --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !scheduler.ValidHours(hours) {
				return fmt.Errorf("--hours must be positive and at most %d, got %g", scheduler.MaxRequiredHours, hours)
			}
			switch format {
			case "table", "json", "yaml":
			default:
				return fmt.Errorf("unknown --format %q (want table, json or yaml)", format)
			}
			if deadline == "" {
				deadline = app.Config.Planner.DeadlinePhrase
			}

			now := app.now()
			due := scheduler.ResolveDeadline(deadline, now)
			busy, err := app.Calendar.ListBusy(cmd.Context(), now, due)
			if err != nil {
				return fmt.Errorf("reading calendar: %w", err)
			}

			window := app.Config.Window()
			blocks := scheduler.PlanBlocks(scheduler.PlanRequest{
				RequiredHours: hours,
				Deadline:      due,
				Now:           now,
				Busy:          busy,
				Window:        window,
				BlockHours:    app.Config.Planner.BlockHours,
			})
			app.Log.Debug("plan preview",
				zap.Float64("hours", hours),
				zap.Time("deadline", due),
				zap.Int("busy", len(busy)),
				zap.Int("blocks", len(blocks)),
			)

			out := planOutput{
				Hours:    hours,
				Deadline: due,
				Window:   window.String(),
				Feasible: len(blocks) > 0,
				Blocks:   make([]planBlock, 0, len(blocks)),
			}
			for _, b := range blocks {
				out.Blocks = append(out.Blocks, planBlock{Start: b.Start, End: b.End, Hours: b.Hours()})
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(out); err != nil {
					return err
				}
				return enc.Close()
			default:
				return renderPlan(w, out, blocks, now.Location())
			}
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "estimated hours of work (required)")
	cmd.Flags().StringVar(&deadline, "deadline", "", `deadline phrase, e.g. "next tuesday" (default from planner.deadline_phrase)`)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func renderPlan(w io.Writer, out planOutput, blocks []domain.WorkBlock, loc *time.Location) error {
	fmt.Fprintln(w, formatter.Header("Plan"))
	fmt.Fprintf(w, "%s of work before %s, inside %s\n\n",
		formatter.Bold(conversation.FormatHours(out.Hours)+"h"),
		out.Deadline.In(loc).Format("Monday Jan 2 15:04"),
		out.Window,
	)
	if !out.Feasible {
		fmt.Fprintln(w, formatter.StyleYellow.Render("No way to fit that in before the deadline. Something has to give."))
		return nil
	}
	return formatter.RenderBlocks(w, blocks, loc)
}
