package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/dto"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
)

type rejectionStore interface {
	UpdateTracking(ctx context.Context, row models.UpdateRow) error
	PropagationInfo(ctx context.Context, rejectionID int64) (*models.PropagationInfo, error)
	PropagateHomologatedValue(ctx context.Context, p models.Propagation) ([]int64, error)
}

// UpdateService applies canonical update rows to the rejection-tracking
// table, fanning shared-barcode values out to sibling rejections.
type UpdateService struct {
	repo   rejectionStore
	logger *zap.Logger
}

// NewUpdateService constructs the service.
func NewUpdateService(repo rejectionStore, logger *zap.Logger) *UpdateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpdateService{repo: repo, logger: logger}
}

// Apply processes rows strictly in order, one store round-trip at a time.
// A failing row is recorded and skipped; there is no rollback and no retry.
// UpdatedIDs contains every touched rejection exactly once, propagated
// siblings included.
func (s *UpdateService) Apply(ctx context.Context, rows []models.UpdateRow) *dto.UpdateResult {
	result := &dto.UpdateResult{
		Total:      len(rows),
		Errors:     []string{},
		UpdatedIDs: []int64{},
	}

	seen := make(map[int64]struct{}, len(rows))
	for i, row := range rows {
		if err := s.applyRow(ctx, row, result, seen); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("Registro %d (ID: %d): %v", i+1, row.RejectionID, err))
			s.logger.Warn("rejection update failed",
				zap.Int("row", i+1),
				zap.Int64("rejection_id", row.RejectionID),
				zap.Error(err))
		}
	}
	return result
}

func (s *UpdateService) applyRow(ctx context.Context, row models.UpdateRow, result *dto.UpdateResult, seen map[int64]struct{}) error {
	if err := s.repo.UpdateTracking(ctx, row); err != nil {
		return err
	}
	s.record(row.RejectionID, result, seen)

	if row.HomologatedValue == nil {
		return nil
	}

	info, err := s.repo.PropagationInfo(ctx, row.RejectionID)
	if err != nil {
		return err
	}
	if info == nil || info.RejectedField == nil || *info.RejectedField != models.RejectedFieldProduct {
		return nil
	}
	if info.Barcode == nil {
		// Without a barcode there is no sibling key to fan out on.
		return nil
	}

	siblings, err := s.repo.PropagateHomologatedValue(ctx, models.Propagation{
		SourceID:   row.RejectionID,
		CountryID:  info.CountryID,
		Barcode:    *info.Barcode,
		Value:      *row.HomologatedValue,
		UpdatedAt:  row.UpdatedAt,
		ResolvedAt: row.ResolvedAt,
	})
	if err != nil {
		return err
	}

	for _, sibling := range siblings {
		s.record(sibling, result, seen)
	}
	if len(siblings) > 0 {
		s.logger.Info("homologated value propagated",
			zap.Int64("rejection_id", row.RejectionID),
			zap.Int("siblings", len(siblings)))
	}
	return nil
}

func (s *UpdateService) record(id int64, result *dto.UpdateResult, seen map[int64]struct{}) {
	if _, ok := seen[id]; ok {
		return
	}
	seen[id] = struct{}{}
	result.Updated++
	result.UpdatedIDs = append(result.UpdatedIDs, id)
}
