package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/middleware"
	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/service"
	"github.com/noah-isme/agentes-admin/pkg/response"
)

type resumenService interface {
	Filtrado(ctx context.Context, filter models.ActividadFilter) ([]models.ActividadResumen, string, error)
}

type dashboardService interface {
	Build(ctx context.Context, filter models.ActividadFilter) (*dto.DashboardResponse, error)
}

type exportService interface {
	Export(ctx context.Context, filter models.ActividadFilter, format string) (*service.ExportFile, error)
}

// ResumenHandler serves the aggregated attendance report, its dashboard
// rollups and exports.
type ResumenHandler struct {
	resumen   resumenService
	dashboard dashboardService
	exports   exportService
}

// NewResumenHandler constructs ResumenHandler.
func NewResumenHandler(resumen resumenService, dashboard dashboardService, exports exportService) *ResumenHandler {
	return &ResumenHandler{resumen: resumen, dashboard: dashboard, exports: exports}
}

// Resumen godoc
// @Summary Activities with attendance counts, percentage, weekday and state
// @Tags Resumen
// @Produce json
// @Param desde query string false "From date (YYYY-MM-DD)"
// @Param hasta query string false "To date (YYYY-MM-DD)"
// @Param curso query string false "Course name or ID"
// @Param turno query string false "Shift name or ID"
// @Param estado query string false "Completada, En curso or Pendiente"
// @Param q query string false "Search id, course or monitor"
// @Success 200 {object} response.Envelope
// @Router /resumen [get]
func (h *ResumenHandler) Resumen(c *gin.Context) {
	filter, err := actividadFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, fuente, err := h.resumen.Filtrado(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetFuente(c, fuente)
	response.JSON(c, http.StatusOK, dto.ResumenResponse{Actividades: rows, Fuente: fuente}, middleware.ExtractMeta(c))
}

// Dashboard godoc
// @Summary Dashboard metrics and chart series
// @Tags Resumen
// @Produce json
// @Param desde query string false "From date (YYYY-MM-DD)"
// @Param hasta query string false "To date (YYYY-MM-DD)"
// @Param curso query string false "Course name or ID"
// @Param turno query string false "Shift name or ID"
// @Param estado query string false "State"
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *ResumenHandler) Dashboard(c *gin.Context) {
	filter, err := actividadFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	resp, err := h.dashboard.Build(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetFuente(c, resp.Fuente)
	response.JSON(c, http.StatusOK, resp, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download the filtered activity report
// @Tags Resumen
// @Produce octet-stream
// @Param format query string false "csv, pdf or xlsx"
// @Success 200 {file} file
// @Router /resumen/export [get]
func (h *ResumenHandler) Export(c *gin.Context) {
	filter, err := actividadFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Export(c.Request.Context(), filter, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
