package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sendActor string

var sendCmd = &cobra.Command{
	Use:   "send <batch-id>",
	Short: "Transmit an approved batch downstream",
	Long: `Submits every item of an approved batch to the downstream consumer
and records the per-item outcome tally. A batch is sent at most once;
individual item failures are counted, not retried.`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendActor, "actor", "admin", "acting administrator identifier")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	if transmitService == nil {
		return errors.New("transmit service not configured")
	}

	batchID := args[0]
	cmd.Printf("Sending batch %s...\n", batchID)

	result, err := transmitService.Send(context.Background(), batchID, sendActor)
	if err != nil {
		return fmt.Errorf("sending batch: %w", err)
	}

	cmd.Printf("Batch %s sent: %d items, %d accepted, %d failed\n",
		result.BatchID, result.ItemsSent, result.SuccessCount, result.ErrorCount)
	if result.ErrorCount > 0 {
		cmd.Println("Failed items were tallied; inspect the transmission history before re-curating.")
	}
	return nil
}
