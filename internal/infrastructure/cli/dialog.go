package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/logging"
	"github.com/felixgeelhaar/studiorate/internal/infrastructure/tui"
)

var dialogCmd = &cobra.Command{
	Use:   "dialog",
	Short: "Show the studio page with the rating dialog in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, _, err := loadServices(logging.ForTerminalUI)
		if err != nil {
			return err
		}
		defer func() { _ = services.Logger.Sync() }()

		page, err := tui.NewPageModel(cmd.Context(), services.Config, services.Submitter, services.Logger, services.DialogOptions...)
		if err != nil {
			return err
		}
		if os.Getenv("STUDIORATE_SKIP_TUI_RUN") == "true" {
			return nil
		}

		p := tea.NewProgram(page, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dialog run failed: %w", err)
		}
		if avg, ok := page.LastAverage(); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", services.Config.Copy.Thanks, avg)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dialogCmd)
}
