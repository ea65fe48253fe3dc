// ABOUTME: Balance command for the leavectl CLI
// ABOUTME: Prints the current leave balance

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

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the current leave balance",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBalance(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

// formatBalance renders the balance line shown to the user
func formatBalance(balance float64) string {
	return "Balance: " + strconv.FormatFloat(balance, 'f', -1, 64)
}

// runBalance fetches and prints the balance
func runBalance(ctx context.Context, w io.Writer) int {
	c, _, _ := newClient()

	resp, err := c.Balance(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatBalance(resp.LeaveBalance))
	}
	return 0
}
