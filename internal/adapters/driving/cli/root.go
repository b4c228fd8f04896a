// Package cli implements the curator command-line interface using
// cobra. Commands talk to the core exclusively through the driving
// ports; services are injected by the composition root via
// SetServices.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pipedata/curator/internal/core/ports/driven"
	"github.com/pipedata/curator/internal/core/ports/driving"
	"github.com/pipedata/curator/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services. Commands check for nil and fail cleanly when the
// composition root has not wired them.
var (
	batchService    driving.BatchService
	reviewService   driving.ReviewService
	transmitService driving.TransmitService
	exportService   driving.ExportService
	historyService  driving.HistoryService
	configStore     driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "curator",
	Short: "Curate, review and transmit scored Q&A batches",
	Long: `curator manages the lifecycle of quality-scored question/answer
batches: grouping pool items into batches, gating them through human
approve/reject review, exporting them for inspection, and transmitting
approved batches to the downstream consumer.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the CLI needs injected.
type Services struct {
	Batch    driving.BatchService
	Review   driving.ReviewService
	Transmit driving.TransmitService
	Export   driving.ExportService
	History  driving.HistoryService
	Config   driven.ConfigStore
}

// SetServices injects the service implementations. Must be called
// before Execute.
func SetServices(s Services) {
	batchService = s.Batch
	reviewService = s.Review
	transmitService = s.Transmit
	exportService = s.Export
	historyService = s.History
	configStore = s.Config
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
