package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/dto"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
	appErrors "github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/errors"
)

type sessionStore interface {
	Info(ctx context.Context) (*models.DatabaseSession, error)
}

// SessionService exposes the active database session for UI introspection.
type SessionService struct {
	repo   sessionStore
	logger *zap.Logger
}

// NewSessionService constructs the service.
func NewSessionService(repo sessionStore, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, logger: logger}
}

// Current returns who we are connected as and which environment that
// database belongs to.
func (s *SessionService) Current(ctx context.Context) (*dto.SessionInfo, error) {
	session, err := s.repo.Info(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSessionUnavailable.Code,
			appErrors.ErrSessionUnavailable.Status, appErrors.ErrSessionUnavailable.Message)
	}

	return &dto.SessionInfo{
		User:        session.User,
		Database:    session.Database,
		Schema:      session.Schema,
		Role:        session.Role,
		Environment: s.resolveEnvironment(session.Database),
	}, nil
}

// resolveEnvironment maps the database name prefix to an environment. An
// unknown prefix falls back to DEV, matching long-standing behavior, but is
// logged loudly because it usually means a misconfigured connection.
func (s *SessionService) resolveEnvironment(database string) models.Environment {
	upper := strings.ToUpper(database)
	switch {
	case strings.HasPrefix(upper, "DEV_"):
		return models.EnvironmentDevelopment
	case strings.HasPrefix(upper, "PRD_"):
		return models.EnvironmentProduction
	default:
		s.logger.Warn("database name matches no known environment prefix, assuming DEV",
			zap.String("database", database))
		return models.EnvironmentDevelopment
	}
}
