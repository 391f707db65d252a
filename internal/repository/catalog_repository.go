package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/config"
)

// CatalogRepository reads the week calendar used to resolve validity dates.
type CatalogRepository struct {
	db         *sqlx.DB
	weeksTable string
}

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(db *sqlx.DB, schemas config.SchemaConfig) *CatalogRepository {
	return &CatalogRepository{
		db:         db,
		weeksTable: fmt.Sprintf("%s.catsemanas", schemas.Tracking),
	}
}

// WeekStart resolves the first day of a calendar week. Returns nil when the
// calendar has no entry for the given year and week number.
func (r *CatalogRepository) WeekStart(ctx context.Context, year, week int) (*time.Time, error) {
	query := fmt.Sprintf(
		"SELECT seminicio FROM %s WHERE semanio = $1 AND semnumero = $2", r.weeksTable)

	var start time.Time
	if err := r.db.GetContext(ctx, &start, query, year, week); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve week %d-%d: %w", year, week, err)
	}
	return &start, nil
}
