package cli

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/marty/internal/app"
	"github.com/alexanderramin/marty/internal/assistant"
	"github.com/alexanderramin/marty/internal/config"
	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/llm"
	"go.uber.org/zap"
)

// CalendarStore is everything the calendar commands need from the local
// store.
type CalendarStore interface {
	app.CalendarGateway
	app.AgendaReader
	All(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Import(ctx context.Context, r io.Reader) (int, error)
}

// App holds what the commands run against. It is filled in by a BuildFunc
// once flags and config are known.
type App struct {
	Config    *config.Config
	Log       *zap.Logger
	Calendar  CalendarStore
	Assistant *assistant.Assistant

	// LLM is nil when llm.enabled is false.
	LLM llm.LLMClient

	Now           func() time.Time
	IsInteractive func() bool
}

// BuildFunc wires an App from resolved configuration.
type BuildFunc func(ctx context.Context, cfg *config.Config) (*App, error)

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
