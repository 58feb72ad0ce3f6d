package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/tingle/dom"
)

func newRenderCmd(logger func() *slog.Logger) *cobra.Command {
	var flags sessionFlags
	var page bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the HTML of a dialog",
		Long: `Builds the dialog, binds the data, runs the scripts and prints the
dialog markup with the live state of its form controls.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), &flags, logger())
			if err != nil {
				return err
			}
			out := s.modal.HTML()
			if page {
				out = dom.Serialize(s.doc.AsNode(), dom.SerializeOptions{ReflectState: true})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&page, "whole-page", false, "print the whole host page")
	return cmd
}
