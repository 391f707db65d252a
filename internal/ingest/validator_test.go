package ingest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func updateTable(ids []string, cases []string) *Table {
	rows := make([][]string, len(ids))
	for i, id := range ids {
		caseValue := ""
		if i < len(cases) {
			caseValue = cases[i]
		}
		rows[i] = []string{id, caseValue, "", ""}
	}
	return &Table{
		Columns: []string{"IDRechazo", "Caso", "Responsable de Caso", "Valor homologación"},
		Rows:    rows,
	}
}

func TestValidatorMissingColumnsShortCircuits(t *testing.T) {
	table := &Table{
		Columns: []string{"IDRechazo", "Caso"},
		// Would also trip the duplicate and empty-update checks if they ran.
		Rows: [][]string{{"1", ""}, {"1", ""}},
	}

	result := NewValidator().Validate(table)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	require.Equal(t, "Columnas faltantes: Responsable de Caso, Valor homologación", result.Errors[0])
}

func TestValidatorColumnMatchIsCaseAndSpaceInsensitive(t *testing.T) {
	table := &Table{
		Columns: []string{" idrechazo ", "CASO", "responsable de caso", "VALOR HOMOLOGACIÓN"},
		Rows:    [][]string{{"1", "Homologacion Producto", "", ""}},
	}

	result := NewValidator().Validate(table)
	require.True(t, result.Valid)
	require.Empty(t, result.Errors)
}

func TestValidatorReportsNullIDs(t *testing.T) {
	table := updateTable([]string{"1", "", "nan"}, []string{"x", "x", "x"})

	result := NewValidator().Validate(table)
	require.False(t, result.Valid)
	require.Contains(t, result.Errors, "Se encontraron 2 registros sin IDRechazo")
}

func TestValidatorReportsDuplicates(t *testing.T) {
	table := updateTable([]string{"1", "2", "1", "1", "2"}, []string{"x"})

	result := NewValidator().Validate(table)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	require.Equal(t,
		"Se encontraron 3 IDRechazo duplicados en el archivo. IDs duplicados: 1, 2",
		result.Errors[0])
}

func TestValidatorElidesDuplicateExamplesBeyondTen(t *testing.T) {
	var ids []string
	for i := 1; i <= 11; i++ {
		value := fmt.Sprintf("%d", i)
		ids = append(ids, value, value)
	}
	table := updateTable(ids, []string{"x"})

	result := NewValidator().Validate(table)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	require.True(t, strings.HasSuffix(result.Errors[0], " ..."))
	require.Contains(t, result.Errors[0], "Se encontraron 11 IDRechazo duplicados")
	require.NotContains(t, result.Errors[0], "11,")
}

func TestValidatorReportsNonNumericIDs(t *testing.T) {
	table := updateTable([]string{"1", "abc"}, []string{"x"})

	result := NewValidator().Validate(table)
	require.False(t, result.Valid)
	require.Contains(t, result.Errors, "IDRechazo contiene valores no numéricos")
}

func TestValidatorRequiresUpdateData(t *testing.T) {
	table := updateTable([]string{"1", "2"}, nil)

	result := NewValidator().Validate(table)
	require.False(t, result.Valid)
	require.Contains(t, result.Errors,
		"No hay datos para actualizar (todas las columnas de actualización están vacías)")
}

func TestValidatorAcceptsDecimalIDs(t *testing.T) {
	table := updateTable([]string{"101.0", "102"}, []string{"x", "x"})

	result := NewValidator().Validate(table)
	require.True(t, result.Valid)
}
