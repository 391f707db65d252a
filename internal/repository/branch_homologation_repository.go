package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/config"
)

// BranchHomologationRepository derives branch homologations from
// just-updated rejections.
type BranchHomologationRepository struct {
	db            *sqlx.DB
	trackingTable string
	targetTable   string
	branchesView  string
}

// NewBranchHomologationRepository constructs the repository.
func NewBranchHomologationRepository(db *sqlx.DB, schemas config.SchemaConfig) *BranchHomologationRepository {
	return &BranchHomologationRepository{
		db:            db,
		trackingTable: fmt.Sprintf("%s.%s", schemas.Tracking, trackingTableName),
		targetTable:   fmt.Sprintf("%s.suc_so_homologacion", schemas.Tracking),
		branchesView:  fmt.Sprintf("%s.vw_estructurasucursales", schemas.Tracking),
	}
}

// SelectCandidates returns the rejections among ids that qualify for a
// branch homologation insert.
func (r *BranchHomologationRepository) SelectCandidates(ctx context.Context, ids []int64) ([]models.BranchCandidate, error) {
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT
		rechazoid,
		paisid,
		valor_rechazado AS num_sucursal,
		valor_homologacion AS sucid,
		semanas
	FROM %s
	WHERE rechazoid IN (?)
	  AND responsable_de_caso = ?
	  AND modulo = ?
	  AND campo_rechazado = ?
	  AND motivo_rechazo = ?
	  AND caso = ?
	  AND valor_homologacion IS NOT NULL`, r.trackingTable),
		ids,
		models.CaseOwnerDataGovernance,
		models.ModuleSellout,
		models.RejectedFieldBranch,
		models.ReasonBranchNotFound,
		models.CaseBranchHomologation,
	)
	if err != nil {
		return nil, fmt.Errorf("build branch candidate query: %w", err)
	}

	var candidates []models.BranchCandidate
	if err := r.db.SelectContext(ctx, &candidates, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select branch candidates: %w", err)
	}
	return candidates, nil
}

// BranchInfo resolves branch metadata for a homologated branch id. Returns
// nil when the structure view knows nothing about the branch.
func (r *BranchHomologationRepository) BranchInfo(ctx context.Context, branchID string) (*models.BranchInfo, error) {
	query := fmt.Sprintf(
		"SELECT grpid, cadid, sucnombre, dircalle FROM %s WHERE sucid = $1 LIMIT 1",
		r.branchesView)

	var info models.BranchInfo
	if err := r.db.GetContext(ctx, &info, query, branchID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load branch info for %q: %w", branchID, err)
	}
	return &info, nil
}

// Exists reports whether a homologation already covers the unique
// (country, branch number, group) triple.
func (r *BranchHomologationRepository) Exists(ctx context.Context, countryID int64, branchNumber string, groupID int64) (bool, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE paisid = $1 AND num_sucursal = $2 AND grpid = $3",
		r.targetTable)

	var count int
	if err := r.db.GetContext(ctx, &count, query, countryID, branchNumber, groupID); err != nil {
		return false, fmt.Errorf("check branch homologation: %w", err)
	}
	return count > 0, nil
}

// Insert appends a new branch homologation row.
func (r *BranchHomologationRepository) Insert(ctx context.Context, h *models.BranchHomologation) error {
	query := fmt.Sprintf(`INSERT INTO %s
	(paisid, grpid, cadid, num_sucursal, descripcion, direccion, sucid,
	 activo, create_at, update_at, fecha_valido_desde, fecha_valido_hasta)
	VALUES (:paisid, :grpid, :cadid, :num_sucursal, :descripcion, :direccion, :sucid,
	 :activo, :create_at, :update_at, :fecha_valido_desde, :fecha_valido_hasta)`, r.targetTable)

	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		return fmt.Errorf("insert branch homologation: %w", err)
	}
	return nil
}
