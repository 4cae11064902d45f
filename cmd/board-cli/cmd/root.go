package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nfrund/signupboard/internal/activityapi"
	"github.com/nfrund/signupboard/internal/config"
	"github.com/nfrund/signupboard/internal/logging"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	apiURL  string
	timeout time.Duration
	verbose bool
}

func (o *rootOptions) client() *activityapi.Client {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	logger := slog.New(logging.NewHandler(os.Stderr, "text", logging.ParseLevel(level)))
	return activityapi.New(o.apiURL,
		activityapi.WithTimeout(o.timeout),
		activityapi.WithLogger(logger),
	)
}

// NewRootCmd builds the board-cli command tree.
func NewRootCmd() *cobra.Command {
	_ = godotenv.Load()

	opts := &rootOptions{}
	defaults := &config.Config{APIBaseURL: "http://localhost:8000", APITimeout: 10 * time.Second}
	if cfg, err := config.Parse(); err == nil {
		defaults.APIBaseURL = cfg.GetAPIBaseURL()
		if cfg.GetAPITimeout() > 0 {
			defaults.APITimeout = cfg.GetAPITimeout()
		}
	}

	root := &cobra.Command{
		Use:   "board-cli",
		Short: "Mergington High School activities from the terminal",
		Long: `board-cli talks to the activities service the sign-up board uses.

Available commands:
  list      Show every activity with its capacity and participants
  signup    Sign a student up for an activity
  remove    Unregister a student from an activity
  version   Print the version

Use "board-cli [command] --help" for more information about a command.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api", defaults.APIBaseURL, "base URL of the activities service")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaults.APITimeout, "request timeout, 0 for none")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newListCmd(opts),
		newSignupCmd(opts),
		newRemoveCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
