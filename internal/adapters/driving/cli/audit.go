package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit <batch-id>",
	Short: "Show the audit log for a batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 50, "maximum entries to show")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	actions, err := historyService.Actions(context.Background(), args[0], auditLimit)
	if err != nil {
		return fmt.Errorf("listing audit entries: %w", err)
	}

	if len(actions) == 0 {
		cmd.Println("No audit entries for this batch.")
		return nil
	}

	cmd.Printf("%-20s  %-8s  %-12s  %s\n", "WHEN", "ACTION", "ACTOR", "DETAILS")
	for _, action := range actions {
		cmd.Printf("%-20s  %-8s  %-12s  %s\n",
			action.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			action.Kind,
			action.ActorID,
			action.Notes)
	}
	return nil
}
