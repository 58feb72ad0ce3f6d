package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/tingle/ui"
)

func newPreviewCmd(logger func() *slog.Logger) *cobra.Command {
	var flags sessionFlags
	var window ui.Window

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show a dialog in a native window",
		Long: `Builds the dialog and shows its form in a window. Closing the dialog,
through a footer button or Escape, closes the window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), &flags, logger())
			if err != nil {
				return err
			}
			ui.NewPreview(s.modal, window, logger()).ShowAndRun()
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&window.Width, "width", 0, "window width")
	cmd.Flags().IntVar(&window.Height, "height", 0, "window height")
	cmd.Flags().StringVar(&window.Title, "title", "", "window title")
	return cmd
}
