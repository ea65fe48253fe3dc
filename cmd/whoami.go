// ABOUTME: Whoami and ping commands for the leavectl CLI
// ABOUTME: Shows the authenticated profile and verifies backend reachability

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check backend connectivity and token validity",
	Long: `Check that the backend is reachable and the stored token is accepted.

Exit codes:
  0 - Backend reachable, token valid
  1 - Backend reachable, token missing or rejected
  2 - Backend unreachable`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPing(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(pingCmd)
}

// runWhoami fetches and prints the current profile
func runWhoami(ctx context.Context, w io.Writer) int {
	c, _, _ := newClient()

	user, err := c.Me(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "%s (%s)\n", user.Username, user.Role)
		fmt.Fprintf(w, "Balance: %s\n", strconv.FormatFloat(user.LeaveBalance, 'f', -1, 64))
	}
	return 0
}

// runPing verifies the backend accepts the stored token
func runPing(ctx context.Context, w io.Writer) int {
	c, sess, cfg := newClient()

	if sess.Token() == "" {
		fmt.Fprintln(w, "Not logged in. Run 'leavectl login' first.")
		return 1
	}

	user, err := c.Me(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	fmt.Fprintf(w, "%s OK: authenticated as %s against %s\n", "✓", user.Username, cfg.APIURL)
	return 0
}
