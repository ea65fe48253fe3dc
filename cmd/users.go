// ABOUTME: Admin user commands for the leavectl CLI
// ABOUTME: Lists users, creates and updates accounts, and adjusts balances

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

	"github.com/leavedesk/leavectl/internal/client"
	"github.com/leavedesk/leavectl/internal/tui/views"
	"github.com/spf13/cobra"
)

var (
	newUserName     string
	newUserPassword string

	adjustUserID int
	adjustAmount float64
	adjustNote   string

	updateActivate   bool
	updateDeactivate bool
	updateRole       string
	updateBalance    float64
	updateBalanceSet bool
	updateResetPass  string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all users (admin only)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsers(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user account (admin only)",
	Long: `Create a new user account.

New accounts always get the "user" role and a zero starting balance;
use "leavectl users adjust" to grant leave afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsersCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update a user account (admin only)",
	Long: `Update a user account.

Only the fields given as flags change; everything else keeps its stored
value. Deactivated accounts can no longer authenticate.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		updateBalanceSet = cmd.Flags().Changed("balance")

		exitCode := runUsersUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usersAdjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Adjust a user's leave balance (admin only)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsersAdjust(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersAdjustCmd)
	usersCreateCmd.Flags().StringVarP(&newUserName, "username", "u", "", "Username for the new account")
	usersCreateCmd.Flags().StringVarP(&newUserPassword, "password", "p", "", "Password for the new account")
	usersUpdateCmd.Flags().BoolVar(&updateActivate, "activate", false, "Re-enable the account")
	usersUpdateCmd.Flags().BoolVar(&updateDeactivate, "deactivate", false, "Disable the account")
	usersUpdateCmd.Flags().StringVar(&updateRole, "role", "", "New role (admin or user)")
	usersUpdateCmd.Flags().Float64Var(&updateBalance, "balance", 0, "New leave balance")
	usersUpdateCmd.Flags().StringVar(&updateResetPass, "reset-password", "", "New password for the account")
	usersAdjustCmd.Flags().IntVar(&adjustUserID, "user-id", 0, "ID of the user to adjust")
	usersAdjustCmd.Flags().Float64Var(&adjustAmount, "amount", 0, "Balance change (positive grants, negative removes)")
	usersAdjustCmd.Flags().StringVar(&adjustNote, "note", "", "Optional note for the adjustment")
}

// formatUserLines renders the user listing
func formatUserLines(users []client.User) string {
	if len(users) == 0 {
		return "No users"
	}

	var output string
	for i := range users {
		u := &users[i]
		line := views.UserLine(u)
		if !u.IsActive {
			line += " (disabled)"
		}
		output += line + "\n"
	}
	return output[:len(output)-1]
}

// runUsers fetches and prints the user list
func runUsers(ctx context.Context, w io.Writer) int {
	c, _, _ := newClient()

	users, err := c.Users(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(users, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatUserLines(users))
	}
	return 0
}

// runUsersCreate creates an account with the fixed defaults
func runUsersCreate(ctx context.Context, w io.Writer) int {
	if newUserName == "" || newUserPassword == "" {
		fmt.Fprintln(w, "Error: --username and --password are required")
		return 2
	}

	c, _, _ := newClient()

	user, err := c.CreateUser(ctx, &client.CreateUserInput{
		Username:     newUserName,
		Password:     newUserPassword,
		Role:         "user",
		LeaveBalance: 0,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Created user %s (id %d)\n", user.Username, user.ID)
	}
	return 0
}

// runUsersUpdate patches an account; only flagged fields change
func runUsersUpdate(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: user id must be a number, got %q\n", arg)
		return 2
	}
	if updateActivate && updateDeactivate {
		fmt.Fprintln(w, "Error: --activate and --deactivate are mutually exclusive")
		return 2
	}

	input := &client.PatchUserInput{}
	if updateActivate || updateDeactivate {
		active := updateActivate
		input.IsActive = &active
	}
	if updateRole != "" {
		role := updateRole
		input.Role = &role
	}
	if updateBalanceSet {
		balance := updateBalance
		input.LeaveBalance = &balance
	}
	if updateResetPass != "" {
		password := updateResetPass
		input.ResetPassword = &password
	}
	if input.IsActive == nil && input.Role == nil && input.LeaveBalance == nil && input.ResetPassword == nil {
		fmt.Fprintln(w, "Error: nothing to update; pass at least one of --activate, --deactivate, --role, --balance, --reset-password")
		return 2
	}

	c, _, _ := newClient()

	user, err := c.PatchUser(ctx, id, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Updated user %s (id %d)\n", user.Username, user.ID)
	}
	return 0
}

// runUsersAdjust applies a balance change to a user
func runUsersAdjust(ctx context.Context, w io.Writer) int {
	if adjustUserID <= 0 {
		fmt.Fprintln(w, "Error: --user-id is required")
		return 2
	}

	c, _, _ := newClient()

	input := &client.AdjustLeaveInput{
		UserID:       adjustUserID,
		ChangeAmount: adjustAmount,
	}
	if adjustNote != "" {
		note := adjustNote
		input.Note = &note
	}

	result, err := c.AdjustLeave(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	fmt.Fprintf(w, "%s: new balance %s\n", result.Message,
		strconv.FormatFloat(result.Balance, 'f', -1, 64))
	return 0
}
