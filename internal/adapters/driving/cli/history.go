package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show transmission history",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum records to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.Transmissions(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing transmissions: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No transmissions yet.")
		return nil
	}

	cmd.Printf("%-36s  %-20s  %-12s  %5s  %7s  %6s\n",
		"BATCH", "SENT AT", "SENT BY", "ITEMS", "SUCCESS", "ERRORS")
	for _, record := range records {
		cmd.Printf("%-36s  %-20s  %-12s  %5d  %7d  %6d\n",
			record.BatchID,
			record.SentAt.UTC().Format("2006-01-02 15:04:05"),
			record.SentBy,
			record.ItemsCount,
			record.SuccessCount,
			record.ErrorCount)
	}
	return nil
}
