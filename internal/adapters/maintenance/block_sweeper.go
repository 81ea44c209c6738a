package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/consolebusters/account-service/internal/application"
)

// BlockSweeper periodically lifts account blocks whose window has elapsed.
// Keeping expiry in a background sweep means reads never have to write.
type BlockSweeper struct {
	logger   *slog.Logger
	service  *application.Service
	interval time.Duration
}

// NewBlockSweeper constructs the sweep loop with sane defaults.
func NewBlockSweeper(logger *slog.Logger, service *application.Service, interval time.Duration) *BlockSweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &BlockSweeper{
		logger:   logger,
		service:  service,
		interval: interval,
	}
}

// Run executes the periodic sweep loop until context cancellation.
// One sweep runs immediately so a restart never delays pending unblocks.
func (w *BlockSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.sweepOnce(ctx); err != nil {
			w.logger.ErrorContext(ctx, "block sweep iteration failed",
				"module", "maintenance.block_sweeper",
				"layer", "adapter",
				"operation", "sweep_once",
				"outcome", "failure",
				"error", err,
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *BlockSweeper) sweepOnce(ctx context.Context) error {
	unblocked, err := w.service.ExpireBlocksSweep(ctx)
	if err != nil {
		return err
	}
	if unblocked > 0 {
		w.logger.InfoContext(ctx, "block sweep completed",
			"module", "maintenance.block_sweeper",
			"layer", "adapter",
			"operation", "sweep_once",
			"outcome", "success",
			"unblocked_count", unblocked,
		)
	}
	return nil
}
