package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to MARTY (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, app)
		},
	}
}

// runChat uses the full-screen chat on a terminal and a plain line loop
// otherwise, so MARTY can be scripted through a pipe.
func runChat(cmd *cobra.Command, app *App) error {
	hist := loadHistory(app.Config.UI.HistoryFile)
	ctx := cmd.Context()

	if app.interactive() {
		model := newChatModel(ctx, app.Assistant, app.Assistant.ChatEnabled(), hist)
		_, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}

	repl := &lineREPL{
		in:        cmd.InOrStdin(),
		out:       cmd.OutOrStdout(),
		responder: app.Assistant,
		delay:     app.Config.TypewriterDelay(),
		history:   hist,
	}
	return repl.Run(ctx)
}
