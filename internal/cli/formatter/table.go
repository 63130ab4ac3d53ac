package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/marty/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// NewTable returns a borderless, left-aligned table writing to w.
func NewTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// RenderEvents writes events as a table, times shown in loc.
func RenderEvents(w io.Writer, events []domain.Event, loc *time.Location) error {
	table := NewTable(w, "Day", "Time", "Title", "ID")
	for _, e := range events {
		start, end := e.StartAt.In(loc), e.EndAt.In(loc)
		if err := table.Append([]string{
			start.Format("Mon Jan 2"),
			timeRange(start, end),
			e.Title,
			e.ID,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// RenderBlocks writes proposed work blocks as a numbered table.
func RenderBlocks(w io.Writer, blocks []domain.WorkBlock, loc *time.Location) error {
	table := NewTable(w, "#", "Day", "Time", "Hours")
	for i, b := range blocks {
		start, end := b.Start.In(loc), b.End.In(loc)
		if err := table.Append([]string{
			fmt.Sprintf("%d", i+1),
			start.Format("Mon Jan 2"),
			timeRange(start, end),
			fmt.Sprintf("%g", b.Hours()),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// HealthRow is one line of the doctor report.
type HealthRow struct {
	Check  string
	OK     bool
	Detail string
}

func RenderHealth(w io.Writer, rows []HealthRow) error {
	table := NewTable(w, "Check", "Status", "Detail")
	for _, r := range rows {
		status := StyleGreen.Render("ok")
		if !r.OK {
			status = StyleRed.Render("fail")
		}
		if err := table.Append([]string{r.Check, status, r.Detail}); err != nil {
			return err
		}
	}
	return table.Render()
}

func timeRange(start, end time.Time) string {
	if start.YearDay() != end.YearDay() || start.Year() != end.Year() {
		return start.Format("15:04") + "–" + end.Format("Mon 15:04")
	}
	return start.Format("15:04") + "–" + end.Format("15:04")
}
