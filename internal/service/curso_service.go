package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

type cursoRepository interface {
	List(ctx context.Context) ([]models.Curso, error)
	FindByID(ctx context.Context, id int64) (*models.Curso, error)
	Create(ctx context.Context, curso *models.Curso) error
	Update(ctx context.Context, curso *models.Curso) error
	Delete(ctx context.Context, id int64) error
	CountActividades(ctx context.Context, id int64) (int, error)
}

type turnoRepository interface {
	List(ctx context.Context) ([]models.Turno, error)
	FindByID(ctx context.Context, id int64) (*models.Turno, error)
}

// CatalogoService manages courses and exposes the shift catalogue.
type CatalogoService struct {
	cursos    cursoRepository
	turnos    turnoRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// NewCatalogoService constructs the catalogue service.
func NewCatalogoService(cursos cursoRepository, turnos turnoRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CatalogoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogoService{
		cursos:    cursos,
		turnos:    turnos,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// ListCursos returns every course, served from cache when possible.
func (s *CatalogoService) ListCursos(ctx context.Context) ([]models.Curso, error) {
	var cached []models.Curso
	if hit, _ := s.cache.Get(ctx, CacheKeyCursos, &cached); hit {
		return cached, nil
	}
	cursos, err := s.cursos.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "failed to list cursos")
	}
	_ = s.cache.Set(ctx, CacheKeyCursos, cursos, 0)
	return cursos, nil
}

// GetCurso returns one course.
func (s *CatalogoService) GetCurso(ctx context.Context, id int64) (*models.Curso, error) {
	curso, err := s.cursos.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "curso not found", "failed to load curso")
	}
	return curso, nil
}

// CreateCurso adds a course.
func (s *CatalogoService) CreateCurso(ctx context.Context, req dto.CreateCursoRequest) (*models.Curso, error) {
	req.Nombre = strings.TrimSpace(req.Nombre)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid curso payload")
	}
	curso := &models.Curso{
		Nombre:      req.Nombre,
		Descripcion: models.NullableText(cleanText(s.sanitizer, req.Descripcion)),
	}
	if err := s.cursos.Create(ctx, curso); err != nil {
		return nil, storeError(err, "", "failed to create curso")
	}
	s.afterWrite(ctx, "create")
	return curso, nil
}

// UpdateCurso applies a partial update to a course.
func (s *CatalogoService) UpdateCurso(ctx context.Context, id int64, patch models.CursoPatch) (*models.Curso, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid curso payload")
	}
	if patch.Nombre != nil && strings.TrimSpace(*patch.Nombre) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nombre cannot be empty")
	}
	curso, err := s.cursos.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "curso not found", "failed to load curso")
	}
	if patch.Descripcion != nil {
		clean := cleanText(s.sanitizer, *patch.Descripcion)
		patch.Descripcion = &clean
	}
	patch.Apply(curso)
	if err := s.cursos.Update(ctx, curso); err != nil {
		return nil, storeError(err, "curso not found", "failed to update curso")
	}
	s.afterWrite(ctx, "update")
	return curso, nil
}

// DeleteCurso removes a course that no activity references.
func (s *CatalogoService) DeleteCurso(ctx context.Context, id int64) error {
	if _, err := s.cursos.FindByID(ctx, id); err != nil {
		return storeError(err, "curso not found", "failed to load curso")
	}
	count, err := s.cursos.CountActividades(ctx, id)
	if err != nil {
		return storeError(err, "", "failed to check curso usage")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("curso is used by %d actividades", count))
	}
	if err := s.cursos.Delete(ctx, id); err != nil {
		return storeError(err, "curso not found", "failed to delete curso")
	}
	s.afterWrite(ctx, "delete")
	return nil
}

// ListTurnos returns the shift catalogue.
func (s *CatalogoService) ListTurnos(ctx context.Context) ([]models.Turno, error) {
	var cached []models.Turno
	if hit, _ := s.cache.Get(ctx, CacheKeyTurnos, &cached); hit {
		return cached, nil
	}
	turnos, err := s.turnos.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "failed to list turnos")
	}
	_ = s.cache.Set(ctx, CacheKeyTurnos, turnos, 0)
	return turnos, nil
}

// GetTurno returns one shift.
func (s *CatalogoService) GetTurno(ctx context.Context, id int64) (*models.Turno, error) {
	turno, err := s.turnos.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "turno not found", "failed to load turno")
	}
	return turno, nil
}

func (s *CatalogoService) afterWrite(ctx context.Context, op string) {
	s.metrics.RecordWrite("curso", op)
	s.cache.invalidateAfterWrite(ctx, CachePatternCatalogo, CachePatternResumen)
}
