package models

import "time"

// Well-known values of the rejection-tracking table. The remediation
// workflow matches on them verbatim, accents included.
const (
	RejectedFieldProduct = "PROPSTID"
	RejectedFieldBranch  = "SUCID"

	ModuleSellout = "Sellout"

	CaseOwnerDataGovernance = "Gobierno de Datos"

	CaseProductHomologation = "Homologacion Producto"
	CaseBranchHomologation  = "Homologacion Sucursal"

	ReasonProductNotFound = "Producto no encontrado en tabla de homologación"
	ReasonBranchNotFound  = "Sucursal no encontrada en tabla de homologación"
)

// RejectionRecord mirrors a row of the rechazos_seguimiento table. Rows are
// created by upstream ingestion; this service only updates them.
type RejectionRecord struct {
	RejectionID      int64      `db:"rechazoid" json:"rejectionId"`
	CountryID        int64      `db:"paisid" json:"countryId"`
	GroupID          int64      `db:"grpid" json:"groupId"`
	Module           *string    `db:"modulo" json:"module,omitempty"`
	Case             *string    `db:"caso" json:"case,omitempty"`
	CaseOwner        *string    `db:"responsable_de_caso" json:"caseOwner,omitempty"`
	RejectedField    *string    `db:"campo_rechazado" json:"rejectedField,omitempty"`
	RejectedValue    *string    `db:"valor_rechazado" json:"rejectedValue,omitempty"`
	RejectionReason  *string    `db:"motivo_rechazo" json:"rejectionReason,omitempty"`
	HomologatedValue *string    `db:"valor_homologacion" json:"homologatedValue,omitempty"`
	Barcode          *string    `db:"codigo_barras" json:"barcode,omitempty"`
	WeekCode         *int64     `db:"semanas" json:"weekCode,omitempty"`
	UpdatedAt        *time.Time `db:"update_at" json:"updatedAt,omitempty"`
	ResolvedAt       *time.Time `db:"fecha_solucion_rechazo" json:"resolvedAt,omitempty"`
}

// UpdateRow is one canonical row produced by the ingest transformer. Nil
// pointers mean the uploaded file left the field empty; the corresponding
// column is not touched on the target record.
type UpdateRow struct {
	RejectionID      int64
	Case             *string
	CaseOwner        *string
	HomologatedValue *string
	UpdatedAt        time.Time
	ResolvedAt       time.Time
}

// PropagationInfo carries the fields consulted to decide whether an update
// must be propagated to sibling records.
type PropagationInfo struct {
	RejectedField *string `db:"campo_rechazado"`
	CountryID     int64   `db:"paisid"`
	Barcode       *string `db:"codigo_barras"`
}

// Propagation describes a shared-barcode update fanned out to every sibling
// rejection whose group shares product codes.
type Propagation struct {
	SourceID   int64
	CountryID  int64
	Barcode    string
	Value      string
	UpdatedAt  time.Time
	ResolvedAt time.Time
}
