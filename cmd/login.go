// ABOUTME: Login and logout commands for the leavectl CLI
// ABOUTME: Stores and clears the persisted bearer token

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
	loginRegister bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store the session token",
	Long: `Authenticate against the backend and persist the issued token.

With --register a new account is created instead; the backend issues a
token for it the same way.

Exit codes:
  0 - Logged in
  1 - Backend rejected the credentials
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
	loginCmd.Flags().BoolVar(&loginRegister, "register", false, "Create a new account instead of logging in")
}

// runLogin executes the auth flow and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if loginUsername == "" || loginPassword == "" {
		fmt.Fprintln(w, "Error: --username and --password are required")
		return 2
	}

	c, sess, _ := newClient()

	var (
		token string
		err   error
	)
	if loginRegister {
		resp, rerr := c.Register(ctx, loginUsername, loginPassword)
		if rerr == nil {
			token = resp.AccessToken
		}
		err = rerr
	} else {
		resp, lerr := c.Login(ctx, loginUsername, loginPassword)
		if lerr == nil {
			token = resp.AccessToken
		}
		err = lerr
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	if err := sess.SetToken(token); err != nil {
		fmt.Fprintf(w, "Error: failed to store token: %v\n", err)
		return 2
	}

	user, err := c.Me(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	sess.SetUser(user)

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s (%s)\n", user.Username, user.Role)
	}
	return 0
}

// runLogout removes the durable token and returns an exit code
func runLogout(w io.Writer) int {
	cfg := loadConfig()
	sess := newSession(cfg)
	if err := sess.Clear(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Logged out")
	return 0
}
