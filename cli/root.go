// Package cli holds the edu-copilot commands: the HTTP server plus a few
// offline tools that exercise the same packages.
package cli

import (
	"clementus360/edu-copilot/config"
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "edu-copilot",
		Short:         "Educational assistant backend for teachers and students",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			if logLevel != "" {
				config.InitLogger(logLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	root.AddCommand(serveCmd())
	root.AddCommand(gradeCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(sessionsCmd())

	return root
}

// loadSettings reads the configuration and applies its log level unless the
// flag already did.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flag := cmd.Flags().Lookup("log-level"); flag == nil || !flag.Changed {
		config.InitLogger(settings.LogLevel)
	}
	return settings, nil
}

func fatalError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return err
}
