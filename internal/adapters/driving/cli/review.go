package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipedata/curator/internal/core/ports/driving"
)

var (
	reviewNotes string
	reviewActor string
)

var reviewCmd = &cobra.Command{
	Use:   "review <batch-id> <approve|reject>",
	Short: "Approve or reject a pending batch",
	Long: `Records the human review decision for a pending batch. Approval
makes the batch eligible for transmission; rejection is terminal and
permanently excludes the batch (its items stay claimed).`,
	Args: cobra.ExactArgs(2),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringVar(&reviewNotes, "notes", "", "free-text review notes")
	reviewCmd.Flags().StringVar(&reviewActor, "actor", "admin", "acting administrator identifier")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	batchID, action := args[0], args[1]
	if action != driving.ReviewApprove && action != driving.ReviewReject {
		return fmt.Errorf("unknown review action %q, want approve or reject", action)
	}

	batch, err := reviewService.Review(context.Background(), batchID, action, reviewActor, reviewNotes)
	if err != nil {
		return fmt.Errorf("reviewing batch: %w", err)
	}

	cmd.Printf("Batch %s is now %s (reviewed by %s)\n", batch.ID, batch.Status, batch.ReviewedBy)
	return nil
}
