package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newExtractCmd(logger func() *slog.Logger) *cobra.Command {
	var flags sessionFlags
	var filled string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the entities of a dialog as JSON",
		Long: `Builds the dialog, optionally replaces its content with filled-in form
markup, pulls every entity from the form and prints the entities as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), &flags, logger())
			if err != nil {
				return err
			}
			if filled != "" {
				res, err := s.loader.Load(cmd.Context(), filled)
				if err != nil {
					return fmt.Errorf("load form: %w", err)
				}
				if err := s.modal.SetContent(res.AsString()); err != nil {
					return fmt.Errorf("set content: %w", err)
				}
			}

			out := make(map[string]map[string]interface{})
			for key, e := range s.modal.Entities(true) {
				out[key] = e.ToMap()
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&filled, "form", "", "HTML of the filled-in dialog content")
	return cmd
}
