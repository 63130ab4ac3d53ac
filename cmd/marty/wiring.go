package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/marty/internal/assistant"
	"github.com/alexanderramin/marty/internal/calendar"
	"github.com/alexanderramin/marty/internal/cli"
	"github.com/alexanderramin/marty/internal/config"
	"github.com/alexanderramin/marty/internal/conversation"
	"github.com/alexanderramin/marty/internal/db"
	"github.com/alexanderramin/marty/internal/intelligence"
	"github.com/alexanderramin/marty/internal/llm"
	"github.com/alexanderramin/marty/internal/logging"
	"github.com/alexanderramin/marty/internal/tools"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

// wiring builds the App once config is known and remembers what has to be
// released on exit.
type wiring struct {
	closers []func() error
}

func (w *wiring) Build(ctx context.Context, cfg *config.Config) (*cli.App, error) {
	log, err := logging.New(logging.Options{File: cfg.LogFile, Verbose: cfg.Verbose})
	if err != nil {
		return nil, err
	}
	w.closers = append(w.closers, func() error {
		_ = log.Sync()
		return nil
	})

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	w.closers = append(w.closers, database.Close)

	cal := calendar.NewLocal(database, calendar.WithTimeout(cfg.CalendarTimeout()))

	var (
		client     llm.LLMClient
		chat       intelligence.ChatService
		classifier intelligence.Classifier = intelligence.KeywordClassifier{}
	)
	llmCfg := cfg.LLMClientConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(log.Named("llm"))
		}
		client, err = llm.NewClient(ctx, llmCfg, observer)
		if err != nil {
			return nil, fmt.Errorf("creating %s client: %w", llmCfg.Provider, err)
		}
		chat = intelligence.NewChatService(client)
		classifier = intelligence.NewLLMClassifier(client, log.Named("classifier"))
	}

	planner := conversation.NewController(classifier, cal, cfg.PlannerSettings(),
		conversation.WithLogger(log.Named("planner")),
	)
	dispatcher := tools.NewDispatcher(tools.NewSystemLauncher(), cal, cfg.Tools.AllowedApps,
		tools.WithLogger(log.Named("tools")),
	)

	log.Info("marty started",
		zap.String("db", cfg.DBPath),
		zap.Bool("llm", llmCfg.Enabled),
		zap.String("provider", string(llmCfg.Provider)),
	)

	return &cli.App{
		Config:    cfg,
		Log:       log,
		Calendar:  cal,
		Assistant: assistant.New(planner, chat, dispatcher, log.Named("assistant")),
		LLM:       client,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}, nil
}

// Close releases resources in reverse order of acquisition.
func (w *wiring) Close() error {
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		errs = append(errs, w.closers[i]())
	}
	w.closers = nil
	return errors.Join(errs...)
}
