// ABOUTME: Record listing and deletion commands for the leavectl CLI
// ABOUTME: Covers personal records, the admin all-records view, and deletes

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
	"github.com/spf13/cobra"
)

var (
	recordsAll      bool
	recordsPage     int
	recordsPageSize int
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List leave records",
	Long: `List your leave records in the order the backend returns them.

With --all the admin-scoped listing across all users is fetched instead
(requires the admin role).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRecords(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <record-id>",
	Short: "Delete one of your leave records",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRecordsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
	recordsCmd.Flags().BoolVar(&recordsAll, "all", false, "List records for all users (admin only)")
	recordsCmd.Flags().IntVar(&recordsPage, "page", 1, "Page number")
	recordsCmd.Flags().IntVar(&recordsPageSize, "page-size", 0, "Page size (default from LEAVECTL_PAGE_SIZE)")
}

// formatRecordLines renders records the way the TUI list does
func formatRecordLines(items []client.LeaveRecord) string {
	if len(items) == 0 {
		return "No records"
	}

	var output string
	for i := range items {
		r := &items[i]
		output += fmt.Sprintf("#%d %s - %s day(s)\n", r.ID, r.RecordType,
			strconv.FormatFloat(r.TotalLeaveDays, 'f', -1, 64))
		detail := r.StartDate()
		if r.Note != nil && *r.Note != "" {
			detail += " " + *r.Note
		}
		output += "  " + detail + "\n"
	}
	return output[:len(output)-1]
}

// runRecords fetches and prints a record listing
func runRecords(ctx context.Context, w io.Writer) int {
	c, _, cfg := newClient()

	pageSize := recordsPageSize
	if pageSize <= 0 {
		pageSize = cfg.PageSize
	}

	var (
		page *client.RecordPage
		err  error
	)
	if recordsAll {
		page, err = c.AllRecords(ctx, recordsPage, pageSize)
	} else {
		page, err = c.MyRecords(ctx, recordsPage, pageSize)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatRecordLines(page.Items))
		fmt.Fprintf(w, "\nPage %d of %d record(s) total\n", page.Page, page.Total)
	}
	return 0
}

// runRecordsDelete deletes a record by id
func runRecordsDelete(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: record id must be a number, got %q\n", arg)
		return 2
	}

	c, _, _ := newClient()

	msg, err := c.DeleteRecord(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	fmt.Fprintln(w, msg.Message)
	return 0
}
