package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
)

func TestProductHomologationRepositorySelectCandidates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewProductHomologationRepository(db, testSchemas)

	rows := sqlmock.NewRows([]string{"rechazoid", "paisid", "cod_prod", "grpid", "propstid", "propstcodbarras", "semanas"}).
		AddRow(int64(101), int64(52), "ABC123", int64(7), "P999", "7501001234567", int64(202634))
	mock.ExpectQuery("SELECT(?s).+FROM gnm_ct\\.rechazos_seguimiento").
		WithArgs(int64(101), int64(102),
			models.CaseOwnerDataGovernance, models.ModuleSellout,
			models.RejectedFieldProduct, models.ReasonProductNotFound).
		WillReturnRows(rows)

	candidates, err := repo.SelectCandidates(context.Background(), []int64{101, 102})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, int64(101), candidates[0].RejectionID)
	require.Equal(t, "ABC123", *candidates[0].ProductCode)
	require.Equal(t, int64(202634), *candidates[0].WeekCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductHomologationRepositoryDescriptions(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewProductHomologationRepository(db, testSchemas)

	rows := sqlmock.NewRows([]string{"propstid", "propstnombre"}).
		AddRow("P999", "Shampoo 400ml").
		AddRow("P888", nil)
	mock.ExpectQuery("SELECT propstid, propstnombre FROM gnm_ct\\.vw_estructuraproductostotalpaises").
		WithArgs("P999", "P888").
		WillReturnRows(rows)

	descriptions, err := repo.Descriptions(context.Background(), []string{"P999", "P888"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"P999": "Shampoo 400ml"}, descriptions)

	// Empty input never hits the database.
	descriptions, err = repo.Descriptions(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, descriptions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductHomologationRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewProductHomologationRepository(db, testSchemas)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM gnm_ct.pro_so_homologacion WHERE paisid = $1 AND cod_prod = $2 AND grpid = $3")).
		WithArgs(int64(52), "ABC123", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), 52, "ABC123", 7)
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductHomologationRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewProductHomologationRepository(db, testSchemas)

	mock.ExpectExec("INSERT INTO gnm_ct\\.pro_so_homologacion").
		WillReturnResult(sqlmock.NewResult(1, 1))

	now := time.Now().UTC()
	err := repo.Insert(context.Background(), &models.ProductHomologation{
		CountryID:   52,
		ProductCode: "ABC123",
		Description: "Shampoo 400ml",
		GroupID:     7,
		ProductID:   "P999",
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
		ValidUntil:  models.HomologationValidUntil,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
