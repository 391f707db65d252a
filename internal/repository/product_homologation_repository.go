package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/config"
)

// ProductHomologationRepository derives product homologations from
// just-updated rejections.
type ProductHomologationRepository struct {
	db            *sqlx.DB
	trackingTable string
	targetTable   string
	productsView  string
}

// NewProductHomologationRepository constructs the repository.
func NewProductHomologationRepository(db *sqlx.DB, schemas config.SchemaConfig) *ProductHomologationRepository {
	return &ProductHomologationRepository{
		db:            db,
		trackingTable: fmt.Sprintf("%s.%s", schemas.Tracking, trackingTableName),
		targetTable:   fmt.Sprintf("%s.pro_so_homologacion", schemas.Tracking),
		productsView:  fmt.Sprintf("%s.vw_estructuraproductostotalpaises", schemas.Tracking),
	}
}

// SelectCandidates returns the rejections among ids that qualify for a
// product homologation insert.
func (r *ProductHomologationRepository) SelectCandidates(ctx context.Context, ids []int64) ([]models.ProductCandidate, error) {
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT
		rechazoid,
		paisid,
		valor_rechazado AS cod_prod,
		grpid,
		valor_homologacion AS propstid,
		codigo_barras AS propstcodbarras,
		semanas
	FROM %s
	WHERE rechazoid IN (?)
	  AND responsable_de_caso = ?
	  AND modulo = ?
	  AND campo_rechazado = ?
	  AND motivo_rechazo = ?`, r.trackingTable),
		ids,
		models.CaseOwnerDataGovernance,
		models.ModuleSellout,
		models.RejectedFieldProduct,
		models.ReasonProductNotFound,
	)
	if err != nil {
		return nil, fmt.Errorf("build product candidate query: %w", err)
	}

	var candidates []models.ProductCandidate
	if err := r.db.SelectContext(ctx, &candidates, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select product candidates: %w", err)
	}
	return candidates, nil
}

// Descriptions resolves human-readable product names for the given
// homologated product ids.
func (r *ProductHomologationRepository) Descriptions(ctx context.Context, productIDs []string) (map[string]string, error) {
	if len(productIDs) == 0 {
		return map[string]string{}, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(
		"SELECT propstid, propstnombre FROM %s WHERE propstid IN (?)", r.productsView),
		productIDs)
	if err != nil {
		return nil, fmt.Errorf("build product description query: %w", err)
	}

	rows := []struct {
		ProductID string  `db:"propstid"`
		Name      *string `db:"propstnombre"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select product descriptions: %w", err)
	}

	descriptions := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Name != nil {
			descriptions[row.ProductID] = *row.Name
		}
	}
	return descriptions, nil
}

// Exists reports whether a homologation already covers the unique
// (country, product code, group) triple.
func (r *ProductHomologationRepository) Exists(ctx context.Context, countryID int64, productCode string, groupID int64) (bool, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE paisid = $1 AND cod_prod = $2 AND grpid = $3",
		r.targetTable)

	var count int
	if err := r.db.GetContext(ctx, &count, query, countryID, productCode, groupID); err != nil {
		return false, fmt.Errorf("check product homologation: %w", err)
	}
	return count > 0, nil
}

// Insert appends a new product homologation row.
func (r *ProductHomologationRepository) Insert(ctx context.Context, h *models.ProductHomologation) error {
	query := fmt.Sprintf(`INSERT INTO %s
	(paisid, cod_prod, descripcion_producto, grpid, propstid, propstcodbarras,
	 activo, create_at, update_at, fecha_valido_desde, fecha_valido_hasta)
	VALUES (:paisid, :cod_prod, :descripcion_producto, :grpid, :propstid, :propstcodbarras,
	 :activo, :create_at, :update_at, :fecha_valido_desde, :fecha_valido_hasta)`, r.targetTable)

	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		return fmt.Errorf("insert product homologation: %w", err)
	}
	return nil
}
