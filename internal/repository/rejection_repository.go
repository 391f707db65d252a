package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/config"
)

const trackingTableName = "rechazos_seguimiento"

// RejectionRepository persists updates to the rejection-tracking table.
type RejectionRepository struct {
	db             *sqlx.DB
	trackingSchema string
	trackingTable  string
	clientsTable   string
}

// NewRejectionRepository constructs the repository. Table names are
// qualified once from configuration; all data flows through placeholders.
func NewRejectionRepository(db *sqlx.DB, schemas config.SchemaConfig) *RejectionRepository {
	return &RejectionRepository{
		db:             db,
		trackingSchema: schemas.Tracking,
		trackingTable:  fmt.Sprintf("%s.%s", schemas.Tracking, trackingTableName),
		clientsTable:   fmt.Sprintf("%s.cf_clientes_so", schemas.Clients),
	}
}

// UpdateTracking applies one partial update by rejection id. Both
// processing timestamps are always set; the three remediation fields only
// when the uploaded row carries a value.
func (r *RejectionRepository) UpdateTracking(ctx context.Context, row models.UpdateRow) error {
	set := []string{"update_at = $1", "fecha_solucion_rechazo = $2"}
	args := []interface{}{row.UpdatedAt, row.ResolvedAt}

	if row.Case != nil {
		args = append(args, *row.Case)
		set = append(set, fmt.Sprintf("caso = $%d", len(args)))
	}
	if row.CaseOwner != nil {
		args = append(args, *row.CaseOwner)
		set = append(set, fmt.Sprintf("responsable_de_caso = $%d", len(args)))
	}
	if row.HomologatedValue != nil {
		args = append(args, *row.HomologatedValue)
		set = append(set, fmt.Sprintf("valor_homologacion = $%d", len(args)))
	}

	args = append(args, row.RejectionID)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE rechazoid = $%d",
		r.trackingTable, strings.Join(set, ", "), len(args))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update rejection %d: %w", row.RejectionID, err)
	}
	return nil
}

// PropagationInfo fetches the fields that decide sibling propagation.
// Returns nil when the rejection does not exist.
func (r *RejectionRepository) PropagationInfo(ctx context.Context, rejectionID int64) (*models.PropagationInfo, error) {
	query := fmt.Sprintf(
		"SELECT campo_rechazado, paisid, codigo_barras FROM %s WHERE rechazoid = $1",
		r.trackingTable)

	var info models.PropagationInfo
	if err := r.db.GetContext(ctx, &info, query, rejectionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load propagation info for %d: %w", rejectionID, err)
	}
	return &info, nil
}

// PropagateHomologatedValue copies the homologated value onto every other
// rejection sharing country, barcode and rejected field PROPSTID, provided
// its group shares product codes. Returns the ids it touched.
func (r *RejectionRepository) PropagateHomologatedValue(ctx context.Context, p models.Propagation) ([]int64, error) {
	query := fmt.Sprintf(`UPDATE %s
	SET valor_homologacion = $1, update_at = $2, fecha_solucion_rechazo = $3
	WHERE rechazoid != $4
	  AND paisid = $5
	  AND codigo_barras = $6
	  AND campo_rechazado = $7
	  AND grpid IN (SELECT grpid FROM %s WHERE comparte_ean = TRUE)
	RETURNING rechazoid`, r.trackingTable, r.clientsTable)

	var ids []int64
	err := r.db.SelectContext(ctx, &ids, query,
		p.Value, p.UpdatedAt, p.ResolvedAt, p.SourceID, p.CountryID, p.Barcode,
		models.RejectedFieldProduct)
	if err != nil {
		return nil, fmt.Errorf("propagate homologated value from %d: %w", p.SourceID, err)
	}
	return ids, nil
}

// TableExists verifies the rejection-tracking table is reachable before any
// processing starts.
func (r *RejectionRepository) TableExists(ctx context.Context) (bool, error) {
	const query = `SELECT COUNT(*) FROM information_schema.tables
	WHERE table_schema = $1 AND table_name = $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, r.trackingSchema, trackingTableName); err != nil {
		return false, fmt.Errorf("check tracking table: %w", err)
	}
	return count > 0, nil
}
