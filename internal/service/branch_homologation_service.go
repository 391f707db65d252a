package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/dto"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
)

type branchHomologationStore interface {
	SelectCandidates(ctx context.Context, ids []int64) ([]models.BranchCandidate, error)
	BranchInfo(ctx context.Context, branchID string) (*models.BranchInfo, error)
	Exists(ctx context.Context, countryID int64, branchNumber string, groupID int64) (bool, error)
	Insert(ctx context.Context, h *models.BranchHomologation) error
}

// BranchHomologationService inserts branch homologations derived from
// just-updated rejections. A branch whose metadata cannot be resolved is a
// per-record failure, not a silent skip.
type BranchHomologationService struct {
	repo   branchHomologationStore
	weeks  weekCalendar
	logger *zap.Logger
	now    func() time.Time
}

// NewBranchHomologationService constructs the service.
func NewBranchHomologationService(repo branchHomologationStore, weeks weekCalendar, logger *zap.Logger) *BranchHomologationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BranchHomologationService{
		repo:   repo,
		weeks:  weeks,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the timestamp source.
func (s *BranchHomologationService) WithClock(now func() time.Time) *BranchHomologationService {
	if now != nil {
		s.now = now
	}
	return s
}

// Derive selects qualifying rejections among ids and inserts one branch
// homologation per candidate.
func (s *BranchHomologationService) Derive(ctx context.Context, ids []int64) *dto.BranchDeriveResult {
	result := &dto.BranchDeriveResult{
		DeriveSummary:   dto.DeriveSummary{Errors: []string{}},
		Duplicates:      []models.BranchHomologationDetail{},
		InsertedDetails: []models.BranchHomologationDetail{},
	}
	if len(ids) == 0 {
		return result
	}

	candidates, err := s.repo.SelectCandidates(ctx, ids)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Error general: %v", err))
		return result
	}
	result.Total = len(candidates)
	if result.Total == 0 {
		return result
	}

	for _, candidate := range candidates {
		if err := s.deriveOne(ctx, candidate, result); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("RECHAZOID %d: %v", candidate.RejectionID, err))
		}
	}
	return result
}

func (s *BranchHomologationService) deriveOne(ctx context.Context, c models.BranchCandidate, result *dto.BranchDeriveResult) error {
	branchID := deref(c.BranchID)
	branchNumber := deref(c.BranchNumber)

	info, err := s.repo.BranchInfo(ctx, branchID)
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("No se encontró información para SUCID='%s'", branchID)
	}

	detail := models.BranchHomologationDetail{
		RejectionID:  c.RejectionID,
		CountryID:    c.CountryID,
		BranchNumber: branchNumber,
		GroupID:      info.GroupID,
		BranchID:     branchID,
	}

	exists, err := s.repo.Exists(ctx, c.CountryID, branchNumber, info.GroupID)
	if err != nil {
		return err
	}
	if exists {
		result.Duplicated++
		result.Duplicates = append(result.Duplicates, detail)
		return nil
	}

	now := s.now()
	homologation := &models.BranchHomologation{
		CountryID:    c.CountryID,
		GroupID:      info.GroupID,
		ChainID:      info.ChainID,
		BranchNumber: branchNumber,
		Description:  info.Name,
		Address:      info.Street,
		BranchID:     branchID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
		ValidFrom:    resolveWeekStart(ctx, s.weeks, s.logger, c.WeekCode),
		ValidUntil:   models.HomologationValidUntil,
	}
	if err := s.repo.Insert(ctx, homologation); err != nil {
		return err
	}

	result.Inserted++
	result.InsertedDetails = append(result.InsertedDetails, detail)
	return nil
}
