package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate batch and transmission statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	snapshot, err := historyService.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("getting stats: %w", err)
	}

	batches := snapshot.Batches
	cmd.Println("Batches")
	cmd.Printf("  Total:           %d\n", batches.TotalBatches)
	cmd.Printf("  Pending:         %d\n", batches.Pending)
	cmd.Printf("  Approved:        %d\n", batches.Approved)
	cmd.Printf("  Rejected:        %d\n", batches.Rejected)
	cmd.Printf("  Sent:            %d\n", batches.Sent)
	cmd.Printf("  Total items:     %d\n", batches.TotalItems)
	cmd.Printf("  Average quality: %.2f\n", batches.OverallAvgQuality)

	tx := snapshot.Transmissions
	cmd.Println("Transmissions")
	cmd.Printf("  Total:           %d\n", tx.TotalTransmissions)
	cmd.Printf("  Items sent:      %d\n", tx.TotalItemsSent)
	cmd.Printf("  Accepted:        %d\n", tx.TotalSuccess)
	cmd.Printf("  Failed:          %d\n", tx.TotalErrors)
	return nil
}
