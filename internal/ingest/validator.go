package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/dto"
)

// Uploaded file column names, matched case-insensitively and trimmed.
const (
	ColumnRejectionID      = "IDRechazo"
	ColumnCase             = "Caso"
	ColumnCaseOwner        = "Responsable de Caso"
	ColumnHomologatedValue = "Valor homologación"
)

// RequiredColumns lists every column an uploaded file must contain.
var RequiredColumns = []string{
	ColumnRejectionID,
	ColumnCase,
	ColumnCaseOwner,
	ColumnHomologatedValue,
}

// maxDuplicateExamples bounds how many duplicate ids are spelled out in the
// validation error before the list is elided.
const maxDuplicateExamples = 10

// Validator checks an uploaded table against the rejection-update contract.
type Validator struct{}

// NewValidator constructs the validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate collects every data-quality problem so the user can fix the file
// in one pass. A missing required column short-circuits all other checks.
func (v *Validator) Validate(table *Table) dto.ValidationResult {
	errs := []string{}

	var missing []string
	for _, col := range RequiredColumns {
		if table.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Sprintf("Columnas faltantes: %s", strings.Join(missing, ", ")))
		return dto.ValidationResult{Valid: false, Errors: errs}
	}

	errs = append(errs, v.checkRejectionIDs(table)...)

	if !v.hasUpdateData(table) {
		errs = append(errs, "No hay datos para actualizar (todas las columnas de actualización están vacías)")
	}

	return dto.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func (v *Validator) checkRejectionIDs(table *Table) []string {
	var errs []string
	idCol := table.ColumnIndex(ColumnRejectionID)

	nullCount := 0
	nonNumeric := false
	occurrences := map[string]int{}
	var order []string

	for row := range table.Rows {
		raw := strings.TrimSpace(table.Cell(row, idCol))
		if IsNull(raw) {
			nullCount++
			continue
		}
		if occurrences[raw] == 0 {
			order = append(order, raw)
		}
		occurrences[raw]++
		if !isNumeric(raw) {
			nonNumeric = true
		}
	}

	if nullCount > 0 {
		errs = append(errs, fmt.Sprintf("Se encontraron %d registros sin IDRechazo", nullCount))
	}

	duplicateCount := 0
	var duplicateValues []string
	for _, value := range order {
		if n := occurrences[value]; n > 1 {
			duplicateCount += n - 1
			duplicateValues = append(duplicateValues, value)
		}
	}
	if duplicateCount > 0 {
		shown := duplicateValues
		ellipsis := ""
		if len(shown) > maxDuplicateExamples {
			shown = shown[:maxDuplicateExamples]
			ellipsis = " ..."
		}
		errs = append(errs, fmt.Sprintf(
			"Se encontraron %d IDRechazo duplicados en el archivo. IDs duplicados: %s%s",
			duplicateCount, strings.Join(shown, ", "), ellipsis))
	}

	if nonNumeric {
		errs = append(errs, "IDRechazo contiene valores no numéricos")
	}

	return errs
}

// hasUpdateData reports whether at least one of the three update columns
// carries at least one non-null value.
func (v *Validator) hasUpdateData(table *Table) bool {
	for _, name := range []string{ColumnCase, ColumnCaseOwner, ColumnHomologatedValue} {
		col := table.ColumnIndex(name)
		for row := range table.Rows {
			if !IsNull(table.Cell(row, col)) {
				return true
			}
		}
	}
	return false
}

func isNumeric(value string) bool {
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}
