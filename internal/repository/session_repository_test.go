package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryInfo(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)

	rows := sqlmock.NewRows([]string{"user", "database", "schema", "role"}).
		AddRow("etl_rechazos", "dev_stg", "gnm_ct", "etl_rechazos")
	mock.ExpectQuery("SELECT(?s).+current_user").WillReturnRows(rows)

	session, err := repo.Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, "etl_rechazos", session.User)
	require.Equal(t, "dev_stg", session.Database)
	require.NoError(t, mock.ExpectationsWereMet())
}
