package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Create and inspect batches",
}

var (
	batchMinQuality float64
	batchMaxItems   int
	batchActor      string
)

var batchCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Group unclaimed pool items into a new pending batch",
	Long: `Groups unclaimed pool items scoring at least --min-quality into a
new pending batch of at most --max-items members. Claimed items are
never eligible again; the batch's membership is frozen at creation.`,
	RunE: runBatchCreate,
}

var batchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending batches awaiting review",
	RunE:  runBatchList,
}

var batchItemsCmd = &cobra.Command{
	Use:   "items <batch-id>",
	Short: "Show the items of a batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatchItems,
}

func init() {
	batchCreateCmd.Flags().Float64Var(&batchMinQuality, "min-quality", 7.0, "minimum quality score for inclusion")
	batchCreateCmd.Flags().IntVar(&batchMaxItems, "max-items", 50, "maximum number of items in the batch")
	batchCreateCmd.Flags().StringVar(&batchActor, "actor", "admin", "acting administrator identifier")

	batchCmd.AddCommand(batchCreateCmd)
	batchCmd.AddCommand(batchListCmd)
	batchCmd.AddCommand(batchItemsCmd)
	rootCmd.AddCommand(batchCmd)
}

func runBatchCreate(cmd *cobra.Command, _ []string) error {
	if batchService == nil {
		return errors.New("batch service not configured")
	}

	batch, err := batchService.Create(context.Background(), batchMinQuality, batchMaxItems, batchActor)
	if err != nil {
		return fmt.Errorf("creating batch: %w", err)
	}

	cmd.Printf("Created batch %s\n", batch.ID)
	cmd.Printf("  Items:           %d\n", batch.TotalItems)
	cmd.Printf("  Average quality: %.2f\n", batch.AvgQualityScore)
	cmd.Printf("  Sources:         %s\n", joinOrDash(batch.Sources))
	return nil
}

func runBatchList(cmd *cobra.Command, _ []string) error {
	if batchService == nil {
		return errors.New("batch service not configured")
	}

	batches, err := batchService.ListPending(context.Background())
	if err != nil {
		return fmt.Errorf("listing batches: %w", err)
	}

	if len(batches) == 0 {
		cmd.Println("No pending batches.")
		return nil
	}

	cmd.Printf("%-36s  %-20s  %5s  %7s  %s\n", "ID", "CREATED", "ITEMS", "QUALITY", "SOURCES")
	for _, batch := range batches {
		cmd.Printf("%-36s  %-20s  %5d  %7.2f  %s\n",
			batch.ID,
			batch.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			batch.TotalItems,
			batch.AvgQualityScore,
			joinOrDash(batch.Sources))
	}
	return nil
}

func runBatchItems(cmd *cobra.Command, args []string) error {
	if batchService == nil {
		return errors.New("batch service not configured")
	}

	items, err := batchService.Items(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("getting batch items: %w", err)
	}

	cmd.Printf("%-36s  %6s  %-16s  %s\n", "ID", "SCORE", "SOURCE", "QUESTION")
	for _, item := range items {
		cmd.Printf("%-36s  %6.2f  %-16s  %s\n",
			item.ID, item.QualityScore, item.Source, firstLine(item.Question, 60))
	}
	return nil
}
