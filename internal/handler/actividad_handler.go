package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
	"github.com/noah-isme/agentes-admin/pkg/response"
)

type actividadService interface {
	List(ctx context.Context) ([]models.ActividadDetalle, error)
	Get(ctx context.Context, id int64) (*models.ActividadDetalle, error)
	Create(ctx context.Context, req dto.CreateActividadRequest) (*models.ActividadDetalle, error)
	Update(ctx context.Context, id int64, patch models.ActividadPatch) (*models.ActividadDetalle, error)
	Delete(ctx context.Context, id int64) error
	ListAgentes(ctx context.Context, id int64) ([]models.AgenteAsignado, error)
	Asignar(ctx context.Context, id int64, req dto.AsignarAgenteRequest) error
	Desasignar(ctx context.Context, id int64, nip string) error
	SetAsistencia(ctx context.Context, id int64, nip string, asistencia *bool) error
}

// ActividadHandler exposes activity and attendance endpoints.
type ActividadHandler struct {
	actividades actividadService
}

// NewActividadHandler constructs ActividadHandler.
func NewActividadHandler(actividades actividadService) *ActividadHandler {
	return &ActividadHandler{actividades: actividades}
}

// List godoc
// @Summary List activities with shift, course and monitor names
// @Tags Actividades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /actividades [get]
func (h *ActividadHandler) List(c *gin.Context) {
	actividades, err := h.actividades.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, actividades)
}

// Get godoc
// @Summary Get activity
// @Tags Actividades
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id} [get]
func (h *ActividadHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	detalle, err := h.actividades.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detalle)
}

// Create godoc
// @Summary Schedule activity
// @Tags Actividades
// @Accept json
// @Produce json
// @Param payload body dto.CreateActividadRequest true "Activity"
// @Success 201 {object} response.Envelope
// @Router /actividades [post]
func (h *ActividadHandler) Create(c *gin.Context) {
	var req dto.CreateActividadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	detalle, err := h.actividades.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detalle)
}

// Update godoc
// @Summary Partially update activity
// @Tags Actividades
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Param payload body models.ActividadPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id} [put]
func (h *ActividadHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.ActividadPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, bindError(err))
		return
	}
	detalle, err := h.actividades.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detalle)
}

// Delete godoc
// @Summary Delete activity and its assignments
// @Tags Actividades
// @Param id path int true "Activity ID"
// @Success 204
// @Router /actividades/{id} [delete]
func (h *ActividadHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.actividades.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListAgentes godoc
// @Summary List agentes assigned to an activity
// @Tags Asistencia
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id}/agentes [get]
// @Router /agentes_por_actividad/{id} [get]
func (h *ActividadHandler) ListAgentes(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	agentes, err := h.actividades.ListAgentes(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, agentes)
}

// Asignar godoc
// @Summary Assign agente to activity
// @Tags Asistencia
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Param payload body dto.AsignarAgenteRequest true "Agente"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /actividades/{id}/agentes [post]
func (h *ActividadHandler) Asignar(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.AsignarAgenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	if err := h.actividades.Asignar(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SuccessResponse{Success: true, Message: "agente assigned"})
}

// Desasignar godoc
// @Summary Remove agente from activity
// @Tags Asistencia
// @Param id path int true "Activity ID"
// @Param nip path string true "NIP"
// @Success 204
// @Router /actividades/{id}/agentes/{nip} [delete]
func (h *ActividadHandler) Desasignar(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.actividades.Desasignar(c.Request.Context(), id, c.Param("nip")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetAsistencia godoc
// @Summary Record attendance (null resets to pending)
// @Tags Asistencia
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Param nip path string true "NIP"
// @Param payload body dto.AsistenciaRequest true "Attendance"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id}/agentes/{nip}/asistencia [put]
func (h *ActividadHandler) SetAsistencia(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.AsistenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	if err := h.actividades.SetAsistencia(c.Request.Context(), id, c.Param("nip"), req.Asistencia); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SuccessResponse{Success: true, Message: "asistencia updated"})
}

// ActualizarAsistencia godoc
// @Summary Record attendance with the flat payload
// @Tags Asistencia
// @Accept json
// @Produce json
// @Param payload body dto.ActualizarAsistenciaRequest true "Attendance"
// @Success 200 {object} response.Envelope
// @Router /actualizar_asistencia [post]
func (h *ActividadHandler) ActualizarAsistencia(c *gin.Context) {
	var req dto.ActualizarAsistenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	if req.ActividadID <= 0 || strings.TrimSpace(req.AgenteNIP) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "agente_nip and actividad_id are required"))
		return
	}
	if req.Asistencia != nil && *req.Asistencia != 0 && *req.Asistencia != 1 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "asistencia must be 1, 0 or null"))
		return
	}
	if err := h.actividades.SetAsistencia(c.Request.Context(), req.ActividadID, req.AgenteNIP, req.Flag()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SuccessResponse{Success: true, Message: "asistencia updated"})
}
