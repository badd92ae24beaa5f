package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List the studio's social links",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if len(cfg.Social) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No social links configured.")
			return nil
		}

		rows := make([][]string, 0, len(cfg.Social))
		for _, b := range cfg.Social {
			rows = append(rows, []string{b.Label, b.AccessibleName(), b.Href})
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
			Headers("LABEL", "ACCESSIBLE NAME", "URL").
			Rows(rows...)
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(linksCmd)
}
