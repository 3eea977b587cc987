package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jwulff/slider/internal/control"
	"github.com/jwulff/slider/internal/remote"
	"github.com/jwulff/slider/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve [deck]",
	Short: "Run a headless slideshow controlled over a socket or MCP",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) == 1 {
			arg = args[0]
		}
		useMCP, _ := cmd.Flags().GetBool("mcp")

		// stdout belongs to the MCP transport when it is enabled.
		logger := log.New(os.Stderr, "slider: ", log.LstdFlags)

		d, err := resolveDeck(arg)
		if err != nil {
			return err
		}
		logger.Printf("serving deck %q (%d slides, period %s)", d.Name, d.Len(), cfg.Period)

		sess := session.New(d, cfg.CycleOptions(), logger)
		srv, err := remote.Listen(cfg.Socket, sess, logger)
		if err != nil {
			return err
		}
		logger.Printf("control socket: %s", srv.Path())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := sess.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		})
		g.Go(func() error { return srv.Serve(ctx) })
		if useMCP {
			g.Go(func() error {
				// The MCP peer closing stdin ends the whole session.
				defer stop()
				return control.ServeStdio(control.NewServer(sess, Version))
			})
		}
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().Bool("mcp", false, "also serve MCP tools on stdin/stdout")
	rootCmd.AddCommand(serveCmd)
}

