package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/marty/internal/db"
	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/repository"
	"gopkg.in/yaml.v3"
)

// ImportFile is the YAML document accepted by Import:
//
//	events:
//	  - title: Dinner with Sam
//	    start: 2025-03-11T18:00:00Z
//	    end: 2025-03-11T20:00:00Z
type ImportFile struct {
	Events []ImportEvent `yaml:"events"`
}

type ImportEvent struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
}

// Import reads an ImportFile and inserts its events in one transaction.
// Any invalid entry aborts the whole import.
func (c *LocalCalendar) Import(ctx context.Context, r io.Reader) (int, error) {
	var doc ImportFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("decoding calendar file: %w", err)
	}

	events := make([]domain.NewEvent, 0, len(doc.Events))
	for i, raw := range doc.Events {
		ev, err := raw.parse()
		if err != nil {
			return 0, fmt.Errorf("event %d (%q): %w", i+1, raw.Title, err)
		}
		if err := validate(ev); err != nil {
			return 0, fmt.Errorf("event %d (%q): %w", i+1, raw.Title, err)
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		return 0, nil
	}

	err := c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteEventRepo(tx)
		for i, ev := range events {
			if err := repo.Create(ctx, toEvent(ev)); err != nil {
				return fmt.Errorf("event %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("importing calendar: %w", err)
	}
	return len(events), nil
}

func (e ImportEvent) parse() (domain.NewEvent, error) {
	start, err := time.Parse(time.RFC3339, e.Start)
	if err != nil {
		return domain.NewEvent{}, fmt.Errorf("start %q: %w", e.Start, ErrInvalidEvent)
	}
	end, err := time.Parse(time.RFC3339, e.End)
	if err != nil {
		return domain.NewEvent{}, fmt.Errorf("end %q: %w", e.End, ErrInvalidEvent)
	}
	return domain.NewEvent{
		Title:       e.Title,
		Description: e.Description,
		Start:       start,
		End:         end,
	}, nil
}
