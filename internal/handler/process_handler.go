package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/dto"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/ingest"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
	appErrors "github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/errors"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/export"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/response"
)

type processService interface {
	Process(ctx context.Context, fileName string, table *ingest.Table, opts dto.ProcessOptions) (*dto.ProcessResult, error)
}

// ProcessHandler exposes the rejection-file processing endpoints.
type ProcessHandler struct {
	service     processService
	exporter    *export.CSVExporter
	maxFileSize int64
}

// NewProcessHandler constructs the handler.
func NewProcessHandler(service processService, maxFileSize int64) *ProcessHandler {
	return &ProcessHandler{
		service:     service,
		exporter:    export.NewCSVExporter(),
		maxFileSize: maxFileSize,
	}
}

// Process godoc
// @Summary Process an uploaded rejection file
// @Tags Rejections
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX rejection file"
// @Param validateOnly formData bool false "Validate without updating the store"
// @Param format formData string false "Result rendering: json (default) or csv"
// @Success 200 {object} response.Envelope
// @Router /rejections/process [post]
func (h *ProcessHandler) Process(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "process service not configured"))
		return
	}

	var opts dto.ProcessOptions
	if err := c.ShouldBind(&opts); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid processing options"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		response.Error(c, appErrors.Clone(appErrors.ErrFileTooLarge,
			fmt.Sprintf("file %s exceeds the limit of %d bytes", fileHeader.Filename, h.maxFileSize)))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code,
			appErrors.ErrInternal.Status, "failed to open uploaded file"))
		return
	}
	defer src.Close() //nolint:errcheck

	table, err := ingest.ReadFile(fileHeader.Filename, src)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUnsupportedFile.Code,
			appErrors.ErrUnsupportedFile.Status,
			fmt.Sprintf("could not read %s", fileHeader.Filename)))
		return
	}

	result, err := h.service.Process(c.Request.Context(), fileHeader.Filename, table, opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	if opts.Format == "csv" {
		h.renderCSV(c, result)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Columns godoc
// @Summary Describe the expected upload columns
// @Tags Rejections
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rejections/columns [get]
func (h *ProcessHandler) Columns(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"required": ingest.RequiredColumns,
		"formats":  []string{"csv", "xlsx"},
	})
}

func (h *ProcessHandler) renderCSV(c *gin.Context, result *dto.ProcessResult) {
	data, err := h.exporter.Render(buildReportSections(result)...)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code,
			appErrors.ErrInternal.Status, "failed to render csv report"))
		return
	}
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "reporte-"+result.RunID+".csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func buildReportSections(result *dto.ProcessResult) []export.Dataset {
	summary := export.Dataset{
		Title:   "Resumen",
		Headers: []string{"archivo", "filas", "valido", "actualizados", "fallidos"},
	}
	row := map[string]string{
		"archivo": result.FileName,
		"filas":   strconv.Itoa(result.RowCount),
		"valido":  strconv.FormatBool(result.Validation.Valid),
	}
	if result.Update != nil {
		row["actualizados"] = strconv.Itoa(result.Update.Updated)
		row["fallidos"] = strconv.Itoa(result.Update.Failed)
	}
	summary.Rows = append(summary.Rows, row)

	sections := []export.Dataset{summary}

	errors := export.Dataset{Title: "Errores", Headers: []string{"etapa", "error"}}
	appendErrors := func(stage string, messages []string) {
		for _, msg := range messages {
			errors.Rows = append(errors.Rows, map[string]string{"etapa": stage, "error": msg})
		}
	}
	appendErrors("validacion", result.Validation.Errors)
	if result.Update != nil {
		appendErrors("actualizacion", result.Update.Errors)
	}
	if result.Products != nil {
		appendErrors("homologacion_productos", result.Products.Errors)
	}
	if result.Branches != nil {
		appendErrors("homologacion_sucursales", result.Branches.Errors)
	}
	sections = append(sections, errors)

	if result.Products != nil {
		products := export.Dataset{
			Title:   "Homologaciones de productos",
			Headers: []string{"rechazoid", "paisid", "cod_prod", "grpid", "propstid", "estado"},
		}
		for _, d := range result.Products.InsertedDetails {
			products.Rows = append(products.Rows, productRow(d, "insertada"))
		}
		for _, d := range result.Products.Duplicates {
			products.Rows = append(products.Rows, productRow(d, "duplicada"))
		}
		sections = append(sections, products)
	}

	if result.Branches != nil {
		branches := export.Dataset{
			Title:   "Homologaciones de sucursales",
			Headers: []string{"rechazoid", "paisid", "num_sucursal", "grpid", "sucid", "estado"},
		}
		for _, d := range result.Branches.InsertedDetails {
			branches.Rows = append(branches.Rows, branchRow(d, "insertada"))
		}
		for _, d := range result.Branches.Duplicates {
			branches.Rows = append(branches.Rows, branchRow(d, "duplicada"))
		}
		sections = append(sections, branches)
	}

	return sections
}

func productRow(d models.ProductHomologationDetail, status string) map[string]string {
	return map[string]string{
		"rechazoid": strconv.FormatInt(d.RejectionID, 10),
		"paisid":    strconv.FormatInt(d.CountryID, 10),
		"cod_prod":  d.ProductCode,
		"grpid":     strconv.FormatInt(d.GroupID, 10),
		"propstid":  d.ProductID,
		"estado":    status,
	}
}

func branchRow(d models.BranchHomologationDetail, status string) map[string]string {
	return map[string]string{
		"rechazoid":    strconv.FormatInt(d.RejectionID, 10),
		"paisid":       strconv.FormatInt(d.CountryID, 10),
		"num_sucursal": d.BranchNumber,
		"grpid":        strconv.FormatInt(d.GroupID, 10),
		"sucid":        d.BranchID,
		"estado":       status,
	}
}
