// ABOUTME: UI command launching the interactive TUI
// ABOUTME: Wires config, session, client, and the optional debug log together

package cmd

import (
	"fmt"
	"os"

	"github.com/leavedesk/leavectl/internal/tui"
	"github.com/leavedesk/leavectl/internal/tui/debuglog"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive TUI",
	Long: `Launch the interactive terminal UI.

A stored session is restored silently when its token is still accepted;
otherwise the login screen is shown. Set LEAVECTL_DEBUG=true to write a
debug log into the config directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		c, sess, cfg := newClient()

		if cfg.Debug {
			if err := debuglog.Init(cfg.ConfigDir); err == nil {
				defer debuglog.Close()
			}
		}

		if err := tui.Run(c, sess, cfg.PageSize); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
