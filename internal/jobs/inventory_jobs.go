package jobs

import (
	"context"
	"time"

	"blueeyes-backoffice/internal/logger"
)

// VerifyInventory compares the persisted balance snapshot against a fresh
// reconciliation of the ledger and logs any divergence. It never repairs
// anything; a human decides whether to adjust.
func (jr *JobRunner) VerifyInventory() {
	jr.runWithRecovery("verify-inventory", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		report, err := jr.services.Inventory.Verify(ctx)
		if err != nil {
			logger.Error("Inventory verification failed", "error", err)
			return
		}
		if report.Consistent {
			logger.Info("Inventory snapshot matches ledger", "snapshot_at", report.SnapshotAt)
			return
		}
		for currency, d := range report.Divergences {
			logger.Warn("Inventory divergence detected",
				"currency", currency,
				"cached", d.Cached.String(),
				"fresh", d.Fresh.String(),
				"delta", d.Delta.String())
		}
	})
}
