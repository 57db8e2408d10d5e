package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/export"
	"blueeyes-backoffice/internal/logger"
	"blueeyes-backoffice/internal/repository"

	"github.com/google/uuid"
)

// RetentionMonths is how long transactions stay in the active working set.
const RetentionMonths = 3

type archiveService struct {
	txRepo          repository.TransactionRepository
	exportDir       string
	retentionMonths int
}

func NewArchiveService(txRepo repository.TransactionRepository, exportDir string, retentionMonths int) ArchiveService {
	if retentionMonths <= 0 {
		retentionMonths = RetentionMonths
	}
	return &archiveService{txRepo: txRepo, exportDir: exportDir, retentionMonths: retentionMonths}
}

// PartitionByAge splits the ledger at cutoff on each entry's effective time.
// An entry stamped exactly at the cutoff is old: retention reads as "keep the
// last three months", so the boundary instant has aged out.
func PartitionByAge(ledger []domain.Transaction, cutoff time.Time) (recent, old []domain.Transaction) {
	for _, t := range ledger {
		ts := t.EffectiveTime()
		if !ts.IsZero() && !ts.After(cutoff) {
			old = append(old, t)
		} else {
			recent = append(recent, t)
		}
	}
	return recent, old
}

func (s *archiveService) ArchiveOld(ctx context.Context, now time.Time) (*ArchiveResult, error) {
	cutoff := now.AddDate(0, -s.retentionMonths, 0)

	ledger, err := s.txRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	_, old := PartitionByAge(ledger, cutoff)
	if len(old) == 0 {
		return &ArchiveResult{Cutoff: cutoff}, nil
	}

	batchID := uuid.NewString()
	filename := export.Filename("Transacciones_Antiguas", now)
	path := filepath.Join(s.exportDir, filename)

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	if err := export.WriteFile(path, "Historial de Transacciones", old); err != nil {
		return nil, fmt.Errorf("writing archive export: %w", err)
	}

	ids := make([]int64, len(old))
	for i, t := range old {
		ids[i] = t.ID
	}
	if err := s.txRepo.MarkArchived(ctx, ids, now, filename, batchID); err != nil {
		// The store still claims these rows are active; keep them in the
		// working set and drop the orphaned export file.
		if rmErr := os.Remove(path); rmErr != nil {
			logger.Error("failed to remove orphaned archive export", "path", path, "error", rmErr)
		}
		return nil, fmt.Errorf("marking transactions archived: %w", err)
	}

	logger.Info("archived old transactions", "count", len(old), "filename", filename, "batch_id", batchID)
	return &ArchiveResult{BatchID: batchID, Filename: filename, Count: len(old), Cutoff: cutoff}, nil
}

func (s *archiveService) ExportAll(ctx context.Context) (string, error) {
	ledger, err := s.txRepo.ListActive(ctx)
	if err != nil {
		return "", err
	}

	filename := export.Filename("Todas_Las_Transacciones", time.Now())
	path := filepath.Join(s.exportDir, filename)
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	if err := export.WriteFile(path, "Historial Completo de Transacciones", ledger); err != nil {
		return "", fmt.Errorf("writing full export: %w", err)
	}
	return filename, nil
}
