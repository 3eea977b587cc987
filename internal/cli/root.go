// Package cli provides the command-line interface for slider.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwulff/slider/internal/config"
	"github.com/jwulff/slider/internal/db"
	"github.com/jwulff/slider/internal/deck"
)

// Version is reported by the MCP server and `slider --version`.
var Version = "dev"

var cfg config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slider",
	Short: "Slider presents slide decks in the terminal with timed auto-advance.",
	Long: `Slider presents slide decks in the terminal with timed auto-advance. ` +
		`Decks come from a YAML file, a directory of images, or the local deck ` +
		`catalogue. A headless session can be driven over a Unix socket or MCP.`,
	Version:           Version,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to a YAML config file")
	flags.String("db", "", "path to the deck database")
	flags.String("socket", "", "path to the control socket")
	flags.Duration("period", 0, "auto-advance interval (default 5s)")
	flags.Bool("stop-on-next", false, "stop auto-advance on manual next as well as previous")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		loaded.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("socket") {
		loaded.Socket, _ = flags.GetString("socket")
	}
	if flags.Changed("period") {
		var p time.Duration
		p, _ = flags.GetDuration("period")
		loaded.Period = p
	}
	if flags.Changed("stop-on-next") {
		loaded.StopOnNext, _ = flags.GetBool("stop-on-next")
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	return nil
}

// resolveDeck loads the deck named by arg, falling back to the configured
// deck. An existing file or directory wins over a catalogue name.
func resolveDeck(arg string) (deck.Deck, error) {
	name := arg
	if name == "" {
		name = cfg.Deck
	}
	if name == "" {
		return deck.Deck{}, fmt.Errorf("no deck given: pass a path or a stored deck name")
	}

	if _, err := os.Stat(name); err == nil {
		return deck.Load(name)
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return deck.Deck{}, err
	}
	defer store.Close()
	return store.LoadDeck(name)
}
