package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jwulff/slider/internal/remote"
)

var ctlCmd = &cobra.Command{
	Use:   "ctl",
	Short: "Control a running `slider serve` over its socket",
}

func simpleCtl(use, short, name string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sendAndPrint(cmd.OutOrStdout(), remote.Command{Cmd: name})
		},
	}
}

var ctlShowCmd = &cobra.Command{
	Use:   "show N",
	Short: "Jump to slide N (1-based; 0 and negatives wrap from the end)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseSlideNumber(args[0])
		if err != nil {
			return err
		}
		return sendAndPrint(cmd.OutOrStdout(), remote.Command{Cmd: remote.CmdShow, Index: remote.IntPtr(index)})
	},
}

var ctlWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print every slide change until the server stops",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := remote.Connect(cfg.Socket)
		if err != nil {
			return err
		}
		defer client.Close()

		resp, err := client.SendCommand(remote.Command{Cmd: remote.CmdSubscribe})
		if err != nil {
			return err
		}
		if !resp.OK {
			return fmt.Errorf("subscribe: %s", resp.Error)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, formatStatus(resp.Cursor, resp.Total, resp.AutoAdvance, resp.Title))

		for {
			ev, err := client.ReadEvent()
			if err != nil {
				// The server going away ends the watch.
				return nil
			}
			if ev.Event != remote.EventSlide {
				continue
			}
			fmt.Fprintln(out, formatStatus(ev.Cursor, ev.Total, ev.AutoAdvance, ev.Title))
		}
	},
}

func init() {
	ctlCmd.AddCommand(
		simpleCtl("next", "Go to the next slide", remote.CmdNext),
		simpleCtl("prev", "Go to the previous slide and stop auto-advance", remote.CmdPrev),
		simpleCtl("pause", "Stop auto-advance", remote.CmdPause),
		simpleCtl("resume", "Restart auto-advance", remote.CmdResume),
		simpleCtl("status", "Print the current slide", remote.CmdStatus),
		ctlShowCmd,
		ctlWatchCmd,
	)
	rootCmd.AddCommand(ctlCmd)
}

func sendAndPrint(out io.Writer, c remote.Command) error {
	client, err := remote.Connect(cfg.Socket)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := client.SendCommand(c)
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("%s: %s", c.Cmd, resp.Error)
	}
	fmt.Fprintln(out, formatStatus(resp.Cursor, resp.Total, resp.AutoAdvance, resp.Title))
	return nil
}

// parseSlideNumber turns a 1-based slide number into a cycle index.
func parseSlideNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid slide number %q", s)
	}
	return n - 1, nil
}

func formatStatus(cursor, total *int, auto *bool, title string) string {
	if total == nil || *total == 0 || cursor == nil {
		return "No slides loaded."
	}
	state := "paused"
	if auto != nil && *auto {
		state = "auto-advancing"
	}
	return fmt.Sprintf("Slide %d of %d: %s (%s)", *cursor+1, *total, title, state)
}
