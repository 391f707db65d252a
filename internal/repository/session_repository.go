package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
)

// SessionRepository reads the identity of the active database session.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Info asks the server who we are connected as.
func (r *SessionRepository) Info(ctx context.Context) (*models.DatabaseSession, error) {
	const query = `SELECT
		current_user AS "user",
		current_database() AS database,
		current_schema() AS schema,
		current_role AS role`

	var session models.DatabaseSession
	if err := r.db.GetContext(ctx, &session, query); err != nil {
		return nil, fmt.Errorf("load session info: %w", err)
	}
	return &session, nil
}
