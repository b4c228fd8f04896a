// Command curator is the batch curation and transmission manager CLI.
package main

import (
	"fmt"
	"os"
	"time"

	configfile "github.com/pipedata/curator/internal/adapters/driven/config/file"
	"github.com/pipedata/curator/internal/adapters/driven/downstream/excelapp"
	exportfile "github.com/pipedata/curator/internal/adapters/driven/export/file"
	"github.com/pipedata/curator/internal/adapters/driven/storage/sqlite"
	"github.com/pipedata/curator/internal/adapters/driving/cli"
	"github.com/pipedata/curator/internal/core/ports/driving"
	"github.com/pipedata/curator/internal/core/services"
	"github.com/pipedata/curator/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "curator: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore(os.Getenv("CURATOR_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	store, err := sqlite.NewStore(configStore.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	sink, err := exportfile.NewSink(configStore.GetString("export.dir"))
	if err != nil {
		return fmt.Errorf("opening export sink: %w", err)
	}

	batchStore := store.BatchStore()
	pool := store.ItemPool()
	history := store.HistoryStore()

	// The downstream client needs a configured URL; without one the
	// send command reports the service as unconfigured.
	var transmit driving.TransmitService
	if url := configStore.GetString("downstream.url"); url != "" {
		client, err := excelapp.NewClient(excelapp.Config{
			BaseURL:           url,
			Token:             configStore.GetString("downstream.token"),
			RequestsPerSecond: configStore.GetFloat("downstream.requests_per_second"),
			BurstSize:         configStore.GetInt("downstream.burst_size"),
		})
		if err != nil {
			return fmt.Errorf("configuring downstream client: %w", err)
		}
		itemTimeout := time.Duration(configStore.GetInt("downstream.timeout_seconds")) * time.Second
		transmit = services.NewTransmitter(
			batchStore, pool, client, history,
			configStore.GetInt("transmit.concurrency"), itemTimeout)
	} else {
		logger.Debug("downstream.url not set; send command disabled")
	}

	cli.SetServices(cli.Services{
		Batch:    services.NewBatchService(batchStore, pool, history),
		Review:   services.NewReviewService(batchStore, history),
		Transmit: transmit,
		Export:   services.NewExporter(batchStore, pool, sink, history),
		History:  services.NewHistoryService(history),
		Config:   configStore,
	})

	cli.Execute()
	return nil
}
