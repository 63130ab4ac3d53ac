package cli

import (
	"github.com/alexanderramin/marty/internal/config"
	"github.com/spf13/cobra"
)

// RootOption adjusts how the root command loads configuration.
type RootOption func(*config.Options)

// WithHome makes config lookups relative to dir instead of the user's
// home directory.
func WithHome(dir string) RootOption {
	return func(o *config.Options) { o.Home = dir }
}

// NewRootCmd creates the top-level "marty" command. Configuration is loaded
// and build is called once flags are parsed, before any subcommand runs.
func NewRootCmd(build BuildFunc, opts ...RootOption) *cobra.Command {
	app := &App{}
	var configFile string

	root := &cobra.Command{
		Use:   "marty",
		Short: "A slightly sarcastic assistant that finds time for your deadlines",
		Long: `MARTY chats, opens a few apps, and turns "I have an exam on Tuesday"
into work blocks on your calendar.

Run without a subcommand to start a chat.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loadOpts := config.Options{ConfigFile: configFile, Flags: cmd.Flags()}
			for _, opt := range opts {
				opt(&loadOpts)
			}
			cfg, err := config.Load(loadOpts)
			if err != nil {
				return err
			}
			built, err := build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if built.Config == nil {
				built.Config = cfg
			}
			*app = *built
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, app)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.config/marty/config.yaml)")
	root.PersistentFlags().String("db", "", "calendar database path (default ~/.marty/marty.db)")
	root.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	root.AddCommand(
		newChatCmd(app),
		newPlanCmd(app),
		newCalendarCmd(app),
		newDoctorCmd(app),
	)

	return root
}
