package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/pkg/response"
)

type agenteService interface {
	List(ctx context.Context, filter models.AgenteFilter) ([]models.Agente, error)
	ListMonitores(ctx context.Context) ([]models.Agente, error)
	Get(ctx context.Context, nip string) (*models.Agente, error)
	Create(ctx context.Context, req dto.CreateAgenteRequest) (*models.Agente, error)
	Update(ctx context.Context, nip string, patch models.AgentePatch) (*models.Agente, error)
	Delete(ctx context.Context, nip string) error
	SetMonitor(ctx context.Context, nip string, monitor bool) (*models.Agente, error)
}

// AgenteHandler exposes agente and monitor endpoints.
type AgenteHandler struct {
	agentes agenteService
}

// NewAgenteHandler constructs AgenteHandler.
func NewAgenteHandler(agentes agenteService) *AgenteHandler {
	return &AgenteHandler{agentes: agentes}
}

// List godoc
// @Summary List agentes
// @Tags Agentes
// @Produce json
// @Param seccion query string false "Section"
// @Param grupo query string false "Group"
// @Param q query string false "Search NIP or full name"
// @Param activo query bool false "Active flag"
// @Param monitor query bool false "Monitor flag"
// @Success 200 {object} response.Envelope
// @Router /agentes [get]
func (h *AgenteHandler) List(c *gin.Context) {
	agentes, err := h.agentes.List(c.Request.Context(), agenteFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, agentes)
}

// Get godoc
// @Summary Get agente
// @Tags Agentes
// @Produce json
// @Param nip path string true "NIP"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /agentes/{nip} [get]
func (h *AgenteHandler) Get(c *gin.Context) {
	agente, err := h.agentes.Get(c.Request.Context(), c.Param("nip"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, agente)
}

// Create godoc
// @Summary Register agente
// @Tags Agentes
// @Accept json
// @Produce json
// @Param payload body dto.CreateAgenteRequest true "Agente"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /agentes [post]
func (h *AgenteHandler) Create(c *gin.Context) {
	var req dto.CreateAgenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	agente, err := h.agentes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, agente)
}

// Update godoc
// @Summary Partially update agente
// @Tags Agentes
// @Accept json
// @Produce json
// @Param nip path string true "NIP"
// @Param payload body models.AgentePatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /agentes/{nip} [put]
func (h *AgenteHandler) Update(c *gin.Context) {
	var patch models.AgentePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, bindError(err))
		return
	}
	agente, err := h.agentes.Update(c.Request.Context(), c.Param("nip"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, agente)
}

// Delete godoc
// @Summary Delete agente with its assignments
// @Tags Agentes
// @Param nip path string true "NIP"
// @Success 204
// @Router /agentes/{nip} [delete]
func (h *AgenteHandler) Delete(c *gin.Context) {
	if err := h.agentes.Delete(c.Request.Context(), c.Param("nip")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListMonitores godoc
// @Summary List monitores
// @Tags Monitores
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /monitores [get]
func (h *AgenteHandler) ListMonitores(c *gin.Context) {
	monitores, err := h.agentes.ListMonitores(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, monitores)
}

// PromoteMonitor godoc
// @Summary Set monitor flag (defaults to true)
// @Tags Monitores
// @Accept json
// @Produce json
// @Param nip path string true "NIP"
// @Param payload body dto.MonitorRequest false "Monitor flag"
// @Success 200 {object} response.Envelope
// @Router /monitores/{nip} [put]
func (h *AgenteHandler) PromoteMonitor(c *gin.Context) {
	var req dto.MonitorRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, bindError(err))
		return
	}
	monitor := req.Monitor == nil || *req.Monitor
	h.setMonitor(c, monitor)
}

// DemoteMonitor godoc
// @Summary Remove monitor flag
// @Tags Monitores
// @Produce json
// @Param nip path string true "NIP"
// @Success 200 {object} response.Envelope
// @Router /monitores/{nip} [delete]
func (h *AgenteHandler) DemoteMonitor(c *gin.Context) {
	h.setMonitor(c, false)
}

func (h *AgenteHandler) setMonitor(c *gin.Context, monitor bool) {
	agente, err := h.agentes.SetMonitor(c.Request.Context(), c.Param("nip"), monitor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, agente)
}
