package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/marty/internal/cli/formatter"
	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/repository"
	"github.com/alexanderramin/marty/internal/tools"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Inspect and edit the local calendar MARTY plans against",
	}
	cmd.AddCommand(
		newCalendarListCmd(app),
		newCalendarTodayCmd(app),
		newCalendarAddCmd(app),
		newCalendarImportCmd(app),
		newCalendarRemoveCmd(app),
	)
	return cmd
}

func newCalendarListCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally between two dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			loc := app.now().Location()

			var (
				events []domain.Event
				err    error
			)
			if from == "" && to == "" {
				events, err = app.Calendar.All(ctx)
			} else {
				r, rerr := dateRange(from, to, app)
				if rerr != nil {
					return rerr
				}
				events, err = app.Calendar.ListEvents(ctx, r.Start, r.End)
			}
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(w, formatter.Dim("No events."))
				return nil
			}
			return formatter.RenderEvents(w, events, loc)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day to include (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", "last day to include (YYYY-MM-DD, default a week after --from)")
	return cmd
}

// dateRange turns inclusive --from/--to days into a half-open range.
func dateRange(from, to string, app *App) (domain.Interval, error) {
	now := app.now()
	loc := now.Location()

	start, _ := tools.Today(now)
	if from != "" {
		d, err := parseDate(from, loc)
		if err != nil {
			return domain.Interval{}, err
		}
		start = d
	}

	end := start.AddDate(0, 0, 7)
	if to != "" {
		d, err := parseDate(to, loc)
		if err != nil {
			return domain.Interval{}, err
		}
		end = d.AddDate(0, 0, 1)
	}
	if !start.Before(end) {
		return domain.Interval{}, fmt.Errorf("--to %s is before --from %s", to, start.Format(dateLayout))
	}
	return domain.Interval{Start: start, End: end}, nil
}

func newCalendarTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			start, end := tools.Today(now)
			events, err := app.Calendar.ListEvents(cmd.Context(), start, end)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, formatter.Header(now.Format("Monday Jan 2")))
			if len(events) == 0 {
				fmt.Fprintln(w, formatter.Dim("Nothing on your calendar today."))
				return nil
			}
			return formatter.RenderEvents(w, events, now.Location())
		},
	}
}

func newCalendarAddCmd(app *App) *cobra.Command {
	var fields eventFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		Example: `  marty calendar add --title "Dentist" --start "2025-03-12 09:00" --end "2025-03-12 10:00"
  marty calendar add        # asks for the missing fields on a terminal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			if !fields.complete() {
				if !app.interactive() {
					return errors.New("--title, --start and --end are required")
				}
				if err := eventForm(&fields, now).Run(); err != nil {
					return err
				}
			}

			loc := now.Location()
			start, err := parseLocalTime(fields.Start, loc)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			end, err := parseLocalTime(fields.End, loc)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			id, err := app.Calendar.InsertEvent(cmd.Context(), domain.NewEvent{
				Title:       strings.TrimSpace(fields.Title),
				Description: strings.TrimSpace(fields.Description),
				Start:       start,
				End:         end,
			})
			if err != nil {
				return fmt.Errorf("adding event: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n",
				formatter.Bold(fields.Title),
				start.In(loc).Format("Mon Jan 2 15:04"),
				formatter.Dim(id),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.Title, "title", "", "event title")
	cmd.Flags().StringVar(&fields.Start, "start", "", "start time (YYYY-MM-DD HH:MM or RFC3339)")
	cmd.Flags().StringVar(&fields.End, "end", "", "end time (YYYY-MM-DD HH:MM or RFC3339)")
	cmd.Flags().StringVarP(&fields.Description, "description", "d", "", "optional notes")
	return cmd
}

func newCalendarImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import events from a YAML file (all or nothing)",
		Long: `Import events from a YAML file of the form

  events:
    - title: Standup
      start: 2025-03-10T09:00:00Z
      end: 2025-03-10T09:15:00Z
      description: optional

Every event is checked before anything is written; one bad entry
rejects the whole file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := app.Calendar.Import(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events\n", n)
			return nil
		},
	}
}

func newCalendarRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an event by ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := app.Calendar.Delete(cmd.Context(), id); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("no event with ID %s", id)
				}
				return fmt.Errorf("removing event: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			return nil
		},
	}
}
