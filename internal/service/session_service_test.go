package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
	appErrors "github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/errors"
)

type stubSessionStore struct {
	session *models.DatabaseSession
	err     error
}

func (s *stubSessionStore) Info(_ context.Context) (*models.DatabaseSession, error) {
	return s.session, s.err
}

func TestSessionServiceCurrent(t *testing.T) {
	tests := []struct {
		name     string
		database string
		want     models.Environment
	}{
		{"dev prefix", "dev_stg", models.EnvironmentDevelopment},
		{"prd prefix", "PRD_STG", models.EnvironmentProduction},
		{"unknown prefix falls back to dev", "analytics", models.EnvironmentDevelopment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubSessionStore{session: &models.DatabaseSession{
				User:     "etl_rechazos",
				Database: tt.database,
				Schema:   "gnm_ct",
				Role:     "etl_rechazos",
			}}
			svc := NewSessionService(store, nil)

			info, err := svc.Current(context.Background())
			require.NoError(t, err)
			require.Equal(t, "etl_rechazos", info.User)
			require.Equal(t, tt.database, info.Database)
			require.Equal(t, tt.want, info.Environment)
		})
	}
}

func TestSessionServiceCurrentUnavailable(t *testing.T) {
	store := &stubSessionStore{err: errors.New("connection refused")}
	svc := NewSessionService(store, nil)

	_, err := svc.Current(context.Background())
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrSessionUnavailable.Code, appErr.Code)
}
