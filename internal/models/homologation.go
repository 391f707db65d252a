package models

import "time"

// DefaultProductDescription replaces unresolved product names.
const DefaultProductDescription = "Producto homologado"

// HomologationValidUntil is the far-future sentinel closing every newly
// inserted homologation validity window.
var HomologationValidUntil = time.Date(2999, time.December, 31, 0, 0, 0, 0, time.UTC)

// ProductCandidate is a just-updated rejection eligible for a product
// homologation insert.
type ProductCandidate struct {
	RejectionID int64   `db:"rechazoid"`
	CountryID   int64   `db:"paisid"`
	ProductCode *string `db:"cod_prod"`
	GroupID     int64   `db:"grpid"`
	ProductID   *string `db:"propstid"`
	Barcode     *string `db:"propstcodbarras"`
	WeekCode    *int64  `db:"semanas"`
}

// ProductHomologation is a row inserted into pro_so_homologacion. The
// (CountryID, ProductCode, GroupID) triple is unique; duplicates are
// detected before insert, never overwritten.
type ProductHomologation struct {
	CountryID   int64      `db:"paisid"`
	ProductCode string     `db:"cod_prod"`
	Description string     `db:"descripcion_producto"`
	GroupID     int64      `db:"grpid"`
	ProductID   string     `db:"propstid"`
	Barcode     *string    `db:"propstcodbarras"`
	Active      bool       `db:"activo"`
	CreatedAt   time.Time  `db:"create_at"`
	UpdatedAt   time.Time  `db:"update_at"`
	ValidFrom   *time.Time `db:"fecha_valido_desde"`
	ValidUntil  time.Time  `db:"fecha_valido_hasta"`
}

// ProductHomologationDetail identifies a derived product homologation in
// result summaries, for both inserts and skipped duplicates.
type ProductHomologationDetail struct {
	RejectionID int64  `json:"rejectionId"`
	CountryID   int64  `json:"countryId"`
	ProductCode string `json:"productCode"`
	GroupID     int64  `json:"groupId"`
	ProductID   string `json:"productId"`
}

// BranchCandidate is a just-updated rejection eligible for a branch
// homologation insert.
type BranchCandidate struct {
	RejectionID  int64   `db:"rechazoid"`
	CountryID    int64   `db:"paisid"`
	BranchNumber *string `db:"num_sucursal"`
	BranchID     *string `db:"sucid"`
	WeekCode     *int64  `db:"semanas"`
}

// BranchInfo is the metadata resolved for a homologated branch id.
type BranchInfo struct {
	GroupID int64   `db:"grpid"`
	ChainID int64   `db:"cadid"`
	Name    *string `db:"sucnombre"`
	Street  *string `db:"dircalle"`
}

// BranchHomologation is a row inserted into suc_so_homologacion, keyed by
// the unique (CountryID, BranchNumber, GroupID) triple.
type BranchHomologation struct {
	CountryID    int64      `db:"paisid"`
	GroupID      int64      `db:"grpid"`
	ChainID      int64      `db:"cadid"`
	BranchNumber string     `db:"num_sucursal"`
	Description  *string    `db:"descripcion"`
	Address      *string    `db:"direccion"`
	BranchID     string     `db:"sucid"`
	Active       bool       `db:"activo"`
	CreatedAt    time.Time  `db:"create_at"`
	UpdatedAt    time.Time  `db:"update_at"`
	ValidFrom    *time.Time `db:"fecha_valido_desde"`
	ValidUntil   time.Time  `db:"fecha_valido_hasta"`
}

// BranchHomologationDetail identifies a derived branch homologation in
// result summaries.
type BranchHomologationDetail struct {
	RejectionID  int64  `json:"rejectionId"`
	CountryID    int64  `json:"countryId"`
	BranchNumber string `json:"branchNumber"`
	GroupID      int64  `json:"groupId"`
	BranchID     string `json:"branchId"`
}
