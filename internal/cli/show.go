package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jwulff/slider/internal/app"
	"github.com/jwulff/slider/internal/deck"
)

var showCmd = &cobra.Command{
	Use:   "show [deck]",
	Short: "Present a deck in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) == 1 {
			arg = args[0]
		}
		load := func() (deck.Deck, error) { return resolveDeck(arg) }

		p := tea.NewProgram(app.New(load, cfg.CycleOptions()), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
