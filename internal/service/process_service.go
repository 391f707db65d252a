package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/dto"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/ingest"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
	appErrors "github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/errors"
)

type updateEngine interface {
	Apply(ctx context.Context, rows []models.UpdateRow) *dto.UpdateResult
}

type productDeriver interface {
	Derive(ctx context.Context, ids []int64) *dto.ProductDeriveResult
}

type branchDeriver interface {
	Derive(ctx context.Context, ids []int64) *dto.BranchDeriveResult
}

type tableVerifier interface {
	TableExists(ctx context.Context) (bool, error)
}

// ProcessService runs the whole workflow for one uploaded file: validate,
// transform, update-and-propagate, then derive homologations over the
// successfully updated ids.
type ProcessService struct {
	fileValidator *ingest.Validator
	transformer   *ingest.Transformer
	tables        tableVerifier
	updates       updateEngine
	products      productDeriver
	branches      branchDeriver
	metrics       *MetricsService
	logger        *zap.Logger
	validate      *validator.Validate
}

// NewProcessService constructs the orchestrator. metrics may be nil.
func NewProcessService(
	tables tableVerifier,
	updates updateEngine,
	products productDeriver,
	branches branchDeriver,
	metrics *MetricsService,
	logger *zap.Logger,
) *ProcessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessService{
		fileValidator: ingest.NewValidator(),
		transformer:   ingest.NewTransformer(),
		tables:        tables,
		updates:       updates,
		products:      products,
		branches:      branches,
		metrics:       metrics,
		logger:        logger,
		validate:      validator.New(),
	}
}

// Process executes the workflow sequentially, one store operation at a
// time. Row-level failures end up inside the result summaries; only
// file-level problems (bad options, missing tracking table) return an
// error.
func (s *ProcessService) Process(ctx context.Context, fileName string, table *ingest.Table, opts dto.ProcessOptions) (*dto.ProcessResult, error) {
	if err := s.validate.Struct(opts); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid processing options")
	}

	start := time.Now()
	result := &dto.ProcessResult{
		RunID:    uuid.NewString(),
		FileName: fileName,
		RowCount: len(table.Rows),
	}
	log := s.logger.With(zap.String("run_id", result.RunID), zap.String("file", fileName))

	result.Validation = s.fileValidator.Validate(table)
	if !result.Validation.Valid {
		log.Warn("rejection file failed validation",
			zap.Strings("errors", result.Validation.Errors))
		s.metrics.ObserveProcess(result, time.Since(start))
		return result, nil
	}
	if opts.ValidateOnly {
		log.Info("rejection file validated, store untouched",
			zap.Int("rows", result.RowCount))
		return result, nil
	}

	exists, err := s.tables.TableExists(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code,
			appErrors.ErrInternal.Status, "failed to verify tracking table")
	}
	if !exists {
		return nil, appErrors.ErrTableMissing
	}

	rows := s.transformer.Transform(table)
	result.Update = s.updates.Apply(ctx, rows)
	log.Info("rejection updates applied",
		zap.Int("total", result.Update.Total),
		zap.Int("updated", result.Update.Updated),
		zap.Int("failed", result.Update.Failed))

	if len(result.Update.UpdatedIDs) > 0 {
		result.Products = s.products.Derive(ctx, result.Update.UpdatedIDs)
		log.Info("product homologations derived",
			zap.Int("total", result.Products.Total),
			zap.Int("inserted", result.Products.Inserted),
			zap.Int("duplicated", result.Products.Duplicated),
			zap.Int("failed", result.Products.Failed))

		result.Branches = s.branches.Derive(ctx, result.Update.UpdatedIDs)
		log.Info("branch homologations derived",
			zap.Int("total", result.Branches.Total),
			zap.Int("inserted", result.Branches.Inserted),
			zap.Int("duplicated", result.Branches.Duplicated),
			zap.Int("failed", result.Branches.Failed))
	}

	s.metrics.ObserveProcess(result, time.Since(start))
	return result, nil
}
