package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
)

// Transformer converts a validated table into canonical update rows.
type Transformer struct {
	now func() time.Time
}

// NewTransformer constructs the transformer.
func NewTransformer() *Transformer {
	return &Transformer{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the processing-timestamp source.
func (t *Transformer) WithClock(now func() time.Time) *Transformer {
	if now != nil {
		t.now = now
	}
	return t
}

// Transform projects the table onto the canonical update shape: numeric
// rejection id, trimmed optional strings with null placeholders collapsed,
// and both processing timestamps stamped with now. Rows whose id fails
// numeric coercion are dropped. Idempotent modulo the timestamps.
func (t *Transformer) Transform(table *Table) []models.UpdateRow {
	idCol := table.ColumnIndex(ColumnRejectionID)
	caseCol := table.ColumnIndex(ColumnCase)
	ownerCol := table.ColumnIndex(ColumnCaseOwner)
	valueCol := table.ColumnIndex(ColumnHomologatedValue)

	stamp := t.now()

	rows := make([]models.UpdateRow, 0, len(table.Rows))
	for i := range table.Rows {
		id, ok := coerceID(table.Cell(i, idCol))
		if !ok {
			continue
		}
		rows = append(rows, models.UpdateRow{
			RejectionID:      id,
			Case:             normalize(table.Cell(i, caseCol)),
			CaseOwner:        normalize(table.Cell(i, ownerCol)),
			HomologatedValue: normalize(table.Cell(i, valueCol)),
			UpdatedAt:        stamp,
			ResolvedAt:       stamp,
		})
	}
	return rows
}

// coerceID accepts integer and decimal renderings of an id, as spreadsheet
// tools frequently export "101" as "101.0".
func coerceID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if IsNull(raw) {
		return 0, false
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}

func normalize(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if IsNull(trimmed) {
		return nil
	}
	return &trimmed
}
