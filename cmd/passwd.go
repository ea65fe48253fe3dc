// ABOUTME: Password change command for the leavectl CLI
// ABOUTME: Calls the change-password endpoint for the authenticated user

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	passwdOld string
	passwdNew string
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the current user's password",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPasswd(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(passwdCmd)
	passwdCmd.Flags().StringVar(&passwdOld, "old", "", "Current password")
	passwdCmd.Flags().StringVar(&passwdNew, "new", "", "New password")
}

// runPasswd changes the password for the authenticated user
func runPasswd(ctx context.Context, w io.Writer) int {
	if passwdOld == "" || passwdNew == "" {
		fmt.Fprintln(w, "Error: --old and --new are required")
		return 2
	}

	c, _, _ := newClient()

	msg, err := c.ChangePassword(ctx, passwdOld, passwdNew)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	fmt.Fprintln(w, msg.Message)
	return 0
}
