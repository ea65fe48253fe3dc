// ABOUTME: Request command for the leavectl CLI
// ABOUTME: Submits a leave record, then refreshes balance and records concurrently

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/leavedesk/leavectl/internal/client"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	requestType      string
	requestStart     string
	requestEnd       string
	requestStartHalf string
	requestEndHalf   string
	requestMinutes   int
	requestNote      string
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Submit a leave record",
	Long: `Submit a leave record to the backend.

Dates are date-only values (YYYY-MM-DD) and become midnight timestamps;
omitted dates stay absent and the backend decides what each record type
requires. Minutes apply to LATE and EARLY records.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRequest(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(requestCmd)
	requestCmd.Flags().StringVar(&requestType, "type", client.RecordFullDay, "Record type (FULL_DAY, HALF_AM, HALF_PM, RANGE, LATE, EARLY)")
	requestCmd.Flags().StringVar(&requestStart, "start", "", "Start date (YYYY-MM-DD)")
	requestCmd.Flags().StringVar(&requestEnd, "end", "", "End date (YYYY-MM-DD)")
	requestCmd.Flags().StringVar(&requestStartHalf, "start-half", "AM", "Start half-day marker (AM or PM)")
	requestCmd.Flags().StringVar(&requestEndHalf, "end-half", "PM", "End half-day marker (AM or PM)")
	requestCmd.Flags().IntVar(&requestMinutes, "minutes", 0, "Minutes for LATE/EARLY records")
	requestCmd.Flags().StringVar(&requestNote, "note", "", "Optional note")
}

// composeRequest builds the submission payload from the flag values
func composeRequest() *client.LeaveRecordInput {
	input := &client.LeaveRecordInput{
		RecordType: requestType,
		StartDate:  client.MidnightTimestamp(requestStart),
		EndDate:    client.MidnightTimestamp(requestEnd),
		StartHalf:  requestStartHalf,
		EndHalf:    requestEndHalf,
	}
	if requestMinutes > 0 {
		minutes := requestMinutes
		input.Minutes = &minutes
	}
	if requestNote != "" {
		note := requestNote
		input.Note = &note
	}
	return input
}

// runRequest submits the record and prints the refreshed state
func runRequest(ctx context.Context, w io.Writer) int {
	c, _, cfg := newClient()

	record, err := c.CreateRecord(ctx, composeRequest())
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(record, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, "Saved")

	// Refresh balance and records together. Both requests go out before
	// either is awaited; a failure in one leaves the other's output intact.
	var (
		balance *client.BalanceResponse
		page    *client.RecordPage
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		balance, err = c.Balance(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		page, err = c.MyRecords(ctx, 1, cfg.PageSize)
		return err
	})
	_ = g.Wait()

	if balance != nil {
		fmt.Fprintln(w, formatBalance(balance.LeaveBalance))
	}
	if page != nil {
		fmt.Fprintln(w, formatRecordLines(page.Items))
	}
	return 0
}
