// ABOUTME: Entry point for the leavectl CLI
// ABOUTME: Terminal client for the LeaveDesk leave-management API

package main

import (
	"fmt"
	"os"

	"github.com/leavedesk/leavectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
