package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/dto"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
)

type productHomologationStore interface {
	SelectCandidates(ctx context.Context, ids []int64) ([]models.ProductCandidate, error)
	Descriptions(ctx context.Context, productIDs []string) (map[string]string, error)
	Exists(ctx context.Context, countryID int64, productCode string, groupID int64) (bool, error)
	Insert(ctx context.Context, h *models.ProductHomologation) error
}

type weekCalendar interface {
	WeekStart(ctx context.Context, year, week int) (*time.Time, error)
}

// ProductHomologationService inserts product homologations derived from
// just-updated rejections, skipping triples that already exist.
type ProductHomologationService struct {
	repo   productHomologationStore
	weeks  weekCalendar
	logger *zap.Logger
	now    func() time.Time
}

// NewProductHomologationService constructs the service.
func NewProductHomologationService(repo productHomologationStore, weeks weekCalendar, logger *zap.Logger) *ProductHomologationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHomologationService{
		repo:   repo,
		weeks:  weeks,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the timestamp source.
func (s *ProductHomologationService) WithClock(now func() time.Time) *ProductHomologationService {
	if now != nil {
		s.now = now
	}
	return s
}

// Derive selects qualifying rejections among ids and inserts one product
// homologation per candidate. Failures are isolated per record; a failure
// selecting candidates aborts the deriver with a general error.
func (s *ProductHomologationService) Derive(ctx context.Context, ids []int64) *dto.ProductDeriveResult {
	result := &dto.ProductDeriveResult{
		DeriveSummary:   dto.DeriveSummary{Errors: []string{}},
		Duplicates:      []models.ProductHomologationDetail{},
		InsertedDetails: []models.ProductHomologationDetail{},
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

	descriptions := s.loadDescriptions(ctx, candidates)

	for _, candidate := range candidates {
		if err := s.deriveOne(ctx, candidate, descriptions, result); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("RECHAZOID %d: %v", candidate.RejectionID, err))
		}
	}
	return result
}

// loadDescriptions resolves product names in one batch. A lookup failure
// degrades every candidate to the default description instead of failing
// the deriver.
func (s *ProductHomologationService) loadDescriptions(ctx context.Context, candidates []models.ProductCandidate) map[string]string {
	seen := make(map[string]struct{}, len(candidates))
	productIDs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.ProductID == nil {
			continue
		}
		if _, ok := seen[*c.ProductID]; ok {
			continue
		}
		seen[*c.ProductID] = struct{}{}
		productIDs = append(productIDs, *c.ProductID)
	}

	descriptions, err := s.repo.Descriptions(ctx, productIDs)
	if err != nil {
		s.logger.Warn("product description lookup failed, using default",
			zap.Int("products", len(productIDs)), zap.Error(err))
		return map[string]string{}
	}
	return descriptions
}

func (s *ProductHomologationService) deriveOne(ctx context.Context, c models.ProductCandidate, descriptions map[string]string, result *dto.ProductDeriveResult) error {
	detail := models.ProductHomologationDetail{
		RejectionID: c.RejectionID,
		CountryID:   c.CountryID,
		ProductCode: deref(c.ProductCode),
		GroupID:     c.GroupID,
		ProductID:   deref(c.ProductID),
	}

	exists, err := s.repo.Exists(ctx, c.CountryID, detail.ProductCode, c.GroupID)
	if err != nil {
		return err
	}
	if exists {
		result.Duplicated++
		result.Duplicates = append(result.Duplicates, detail)
		return nil
	}

	now := s.now()
	homologation := &models.ProductHomologation{
		CountryID:   c.CountryID,
		ProductCode: detail.ProductCode,
		Description: s.description(c, descriptions),
		GroupID:     c.GroupID,
		ProductID:   detail.ProductID,
		Barcode:     c.Barcode,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
		ValidFrom:   s.resolveValidFrom(ctx, c.WeekCode),
		ValidUntil:  models.HomologationValidUntil,
	}
	if err := s.repo.Insert(ctx, homologation); err != nil {
		return err
	}

	result.Inserted++
	result.InsertedDetails = append(result.InsertedDetails, detail)
	return nil
}

func (s *ProductHomologationService) description(c models.ProductCandidate, descriptions map[string]string) string {
	if c.ProductID != nil {
		if name, ok := descriptions[*c.ProductID]; ok {
			return name
		}
	}
	return models.DefaultProductDescription
}

// resolveValidFrom decomposes the week code (year*100 + week number) and
// consults the calendar. Unresolved weeks leave the validity start null.
func (s *ProductHomologationService) resolveValidFrom(ctx context.Context, weekCode *int64) *time.Time {
	return resolveWeekStart(ctx, s.weeks, s.logger, weekCode)
}

func resolveWeekStart(ctx context.Context, weeks weekCalendar, logger *zap.Logger, weekCode *int64) *time.Time {
	if weekCode == nil {
		return nil
	}
	year := int(*weekCode / 100)
	week := int(*weekCode % 100)
	start, err := weeks.WeekStart(ctx, year, week)
	if err != nil {
		logger.Warn("week calendar lookup failed, leaving valid-from null",
			zap.Int("year", year), zap.Int("week", week), zap.Error(err))
		return nil
	}
	return start
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
