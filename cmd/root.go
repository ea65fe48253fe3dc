// ABOUTME: Root command for the leavectl CLI
// ABOUTME: Handles global flags, configuration, and shared client wiring

package cmd

import (
	"errors"

	"github.com/leavedesk/leavectl/internal/client"
	"github.com/leavedesk/leavectl/internal/config"
	"github.com/leavedesk/leavectl/internal/session"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "leavectl",
	Short: "Client for the LeaveDesk leave-management API",
	Long: `leavectl is a terminal client for the LeaveDesk leave-management API.

It covers the personal flows (balance, leave requests, record listing) and
the admin flows (user management, balance adjustment), plus an interactive
TUI via "leavectl ui".

Environment Variables:
  LEAVECTL_API_URL     Backend API URL (default: http://localhost:8000/api)
  LEAVECTL_PAGE_SIZE   Page size for record listings (default: 20)
  LEAVECTL_CONFIG_DIR  Directory for the token file and debug log`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides LEAVECTL_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig resolves configuration with the --api-url flag taking priority
// over the environment.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{}
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	cfg.Sanitize()
	return cfg
}

// newSession builds the session rooted at the configured directory.
func newSession(cfg *config.Config) *session.Session {
	return session.New(cfg.ConfigDir)
}

// newClient builds the API client backed by the persisted session.
func newClient() (*client.Client, *session.Session, *config.Config) {
	cfg := loadConfig()
	sess := newSession(cfg)
	sess.Restore()
	return client.New(cfg.APIURL, sess), sess, cfg
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// exitCodeFor maps an error to the command exit code: 0 success,
// 1 backend rejection, 2 transport or local failure.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return 1
	}
	return 2
}
