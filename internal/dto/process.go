package dto

import (
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
)

// ProcessOptions are the form fields accompanying an uploaded rejection file.
type ProcessOptions struct {
	// ValidateOnly stops after validation without touching the store.
	ValidateOnly bool `form:"validateOnly"`
	// Format selects the response rendering of the result summary.
	Format string `form:"format" validate:"omitempty,oneof=json csv"`
}

// ValidationResult reports file-level validation. Valid is true iff Errors
// is empty.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// UpdateResult summarises the update-and-propagation stage.
type UpdateResult struct {
	Total      int      `json:"total"`
	Updated    int      `json:"updated"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
	UpdatedIDs []int64  `json:"updatedIds"`
}

// DeriveSummary is the shared shape of both homologation derivers.
type DeriveSummary struct {
	Total      int      `json:"total"`
	Inserted   int      `json:"inserted"`
	Duplicated int      `json:"duplicated"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// ProductDeriveResult summarises the product homologation deriver.
type ProductDeriveResult struct {
	DeriveSummary
	Duplicates      []models.ProductHomologationDetail `json:"duplicates"`
	InsertedDetails []models.ProductHomologationDetail `json:"insertedDetails"`
}

// BranchDeriveResult summarises the branch homologation deriver.
type BranchDeriveResult struct {
	DeriveSummary
	Duplicates      []models.BranchHomologationDetail `json:"duplicates"`
	InsertedDetails []models.BranchHomologationDetail `json:"insertedDetails"`
}

// ProcessResult is the full outcome of one processed file. Update and the
// deriver results are nil when the corresponding stage did not run.
type ProcessResult struct {
	RunID      string               `json:"runId"`
	FileName   string               `json:"fileName"`
	RowCount   int                  `json:"rowCount"`
	Validation ValidationResult     `json:"validation"`
	Update     *UpdateResult        `json:"update,omitempty"`
	Products   *ProductDeriveResult `json:"products,omitempty"`
	Branches   *BranchDeriveResult  `json:"branches,omitempty"`
}
