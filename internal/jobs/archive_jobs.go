package jobs

import (
	"context"
	"time"

	"blueeyes-backoffice/internal/logger"
)

// ArchiveOldTransactions exports entries past the retention window to a
// spreadsheet and marks them archived.
func (jr *JobRunner) ArchiveOldTransactions() {
	jr.runWithRecovery("archive-old-transactions", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		result, err := jr.services.Archive.ArchiveOld(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Archival run failed", "error", err)
			return
		}
		if result.Count == 0 {
			logger.Info("No transactions old enough to archive", "cutoff", result.Cutoff)
			return
		}
		logger.Info("Archived old transactions",
			"count", result.Count,
			"filename", result.Filename,
			"batch_id", result.BatchID,
			"cutoff", result.Cutoff)
	})
}
