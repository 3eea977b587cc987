package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jwulff/slider/internal/db"
	"github.com/jwulff/slider/internal/deck"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Store a YAML deck or image directory in the deck catalogue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := deck.Load(args[0])
		if err != nil {
			return err
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			d.Name = name
		}

		store, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SaveDeck(d); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%d slides)\n", d.Name, d.Len())
		return nil
	},
}

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List stored decks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		infos, err := store.Decks()
		if err != nil {
			return err
		}
		return printDecks(cmd.OutOrStdout(), infos)
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a stored deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteDeck(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().String("name", "", "store under this name instead of the file name")
	rootCmd.AddCommand(importCmd, decksCmd, rmCmd)
}

func printDecks(out io.Writer, infos []db.DeckInfo) error {
	if len(infos) == 0 {
		_, err := fmt.Fprintln(out, "No decks stored.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSLIDES\tUPDATED")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%d\t%s\n", info.Name, info.Slides, info.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
