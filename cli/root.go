// Package cli implements the tingle command line.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/tingle/log"
)

var version = "dev"

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

// NewRootCmd builds the tingle command tree. Log records go to stderr.
func NewRootCmd() *cobra.Command {
	var logLevel string
	var logger *slog.Logger

	root := &cobra.Command{
		Use:   "tingle",
		Short: "Build, fill and preview form dialogs",
		Long: `tingle - builds modal dialogs from YAML, TOML or JSON definitions.

A definition names the dialog content, its footer buttons and the entities
bound to its form controls. Data files fill the entities through JSONPath
expressions and scripts drive the dialog through the tingle.modal API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.SetLevel(logLevel); err != nil {
				return err
			}
			logger = log.New(cmd.ErrOrStderr(), "tingle")
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	getLogger := func() *slog.Logger { return logger }
	root.AddCommand(
		newRenderCmd(getLogger),
		newExtractCmd(getLogger),
		newPreviewCmd(getLogger),
	)
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
