package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect recorded API request events",
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent request events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		events, err := e.store.EventRepo().Recent(limit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No request events recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-7s  %-40s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Method", "Path", "Status", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))
		for _, ev := range events {
			ok := "✓"
			if !ev.Success {
				ok = "✗"
			}
			path := ev.Path
			if len(path) > 40 {
				path = path[:40]
			}
			fmt.Printf("%-5d  %-19s  %-7s  %-40s  %-6d  %-7d  %s\n",
				ev.ID,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Method,
				path,
				ev.Status,
				ev.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var logViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View one request event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		ev, err := e.store.EventRepo().Get(id)
		if err != nil {
			return err
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fmt.Printf("ID:       %d\n", ev.ID)
		fmt.Printf("Time:     %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Request:  %s %s\n", ev.Method, ev.Path)
		fmt.Printf("Status:   %d\n", ev.Status)
		fmt.Printf("Latency:  %dms\n", ev.LatencyMs)
		fmt.Printf("Success:  %v\n", ev.Success)
		if ev.ErrorMessage != "" {
			fmt.Printf("Error:    %s\n", ev.ErrorMessage)
		}
		return nil
	},
}

func init() {
	logListCmd.Flags().Int("limit", 20, "Maximum events to show")

	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logViewCmd)
}
