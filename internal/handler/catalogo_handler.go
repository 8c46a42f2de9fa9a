package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/pkg/response"
)

type catalogoService interface {
	ListCursos(ctx context.Context) ([]models.Curso, error)
	GetCurso(ctx context.Context, id int64) (*models.Curso, error)
	CreateCurso(ctx context.Context, req dto.CreateCursoRequest) (*models.Curso, error)
	UpdateCurso(ctx context.Context, id int64, patch models.CursoPatch) (*models.Curso, error)
	DeleteCurso(ctx context.Context, id int64) error
	ListTurnos(ctx context.Context) ([]models.Turno, error)
}

// CatalogoHandler exposes course and shift endpoints.
type CatalogoHandler struct {
	catalogo catalogoService
}

// NewCatalogoHandler constructs CatalogoHandler.
func NewCatalogoHandler(catalogo catalogoService) *CatalogoHandler {
	return &CatalogoHandler{catalogo: catalogo}
}

// ListCursos godoc
// @Summary List courses
// @Tags Cursos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cursos [get]
func (h *CatalogoHandler) ListCursos(c *gin.Context) {
	cursos, err := h.catalogo.ListCursos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cursos)
}

// GetCurso godoc
// @Summary Get course
// @Tags Cursos
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id} [get]
func (h *CatalogoHandler) GetCurso(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	curso, err := h.catalogo.GetCurso(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, curso)
}

// CreateCurso godoc
// @Summary Add course
// @Tags Cursos
// @Accept json
// @Produce json
// @Param payload body dto.CreateCursoRequest true "Course"
// @Success 201 {object} response.Envelope
// @Router /cursos [post]
func (h *CatalogoHandler) CreateCurso(c *gin.Context) {
	var req dto.CreateCursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	curso, err := h.catalogo.CreateCurso(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, curso)
}

// UpdateCurso godoc
// @Summary Partially update course
// @Tags Cursos
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body models.CursoPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id} [put]
func (h *CatalogoHandler) UpdateCurso(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.CursoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, bindError(err))
		return
	}
	curso, err := h.catalogo.UpdateCurso(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, curso)
}

// DeleteCurso godoc
// @Summary Delete an unused course
// @Tags Cursos
// @Param id path int true "Course ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /cursos/{id} [delete]
func (h *CatalogoHandler) DeleteCurso(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.catalogo.DeleteCurso(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListTurnos godoc
// @Summary List shifts
// @Tags Turnos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /turnos [get]
func (h *CatalogoHandler) ListTurnos(c *gin.Context) {
	turnos, err := h.catalogo.ListTurnos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, turnos)
}
