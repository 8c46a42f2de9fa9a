package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/repository"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

type actividadRepository interface {
	List(ctx context.Context) ([]models.ActividadDetalle, error)
	FindByID(ctx context.Context, id int64) (*models.ActividadDetalle, error)
	Create(ctx context.Context, actividad *models.Actividad) error
	Update(ctx context.Context, actividad *models.Actividad) error
	Delete(ctx context.Context, id int64) error
}

type asistenciaRepository interface {
	ListByActividad(ctx context.Context, actividadID int64) ([]models.AgenteAsignado, error)
	ListAll(ctx context.Context) ([]models.AgenteActividad, error)
	Exists(ctx context.Context, nip string, actividadID int64) (bool, error)
	Assign(ctx context.Context, nip string, actividadID int64) error
	Unassign(ctx context.Context, nip string, actividadID int64) error
	SetAsistencia(ctx context.Context, nip string, actividadID int64, asistencia *bool) error
}

type agenteFinder interface {
	FindByNIP(ctx context.Context, nip string) (*models.Agente, error)
}

type cursoFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Curso, error)
}

// ActividadServiceParams groups constructor dependencies.
type ActividadServiceParams struct {
	Actividades actividadRepository
	Asistencias asistenciaRepository
	Agentes     agenteFinder
	Cursos      cursoFinder
	Turnos      turnoRepository
	Cache       *CacheService
	Metrics     *MetricsService
	Validator   *validator.Validate
	Logger      *zap.Logger
}

// ActividadService handles activities and their attendance links.
type ActividadService struct {
	actividades actividadRepository
	asistencias asistenciaRepository
	agentes     agenteFinder
	cursos      cursoFinder
	turnos      turnoRepository
	cache       *CacheService
	metrics     *MetricsService
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      *zap.Logger
}

// NewActividadService constructs the activity service.
func NewActividadService(params ActividadServiceParams) *ActividadService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActividadService{
		actividades: params.Actividades,
		asistencias: params.Asistencias,
		agentes:     params.Agentes,
		cursos:      params.Cursos,
		turnos:      params.Turnos,
		cache:       params.Cache,
		metrics:     params.Metrics,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger,
	}
}

// List returns every activity with its joined names.
func (s *ActividadService) List(ctx context.Context) ([]models.ActividadDetalle, error) {
	actividades, err := s.actividades.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "failed to list actividades")
	}
	return actividades, nil
}

// Get returns one activity detail.
func (s *ActividadService) Get(ctx context.Context, id int64) (*models.ActividadDetalle, error) {
	detalle, err := s.actividades.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "actividad not found", "failed to load actividad")
	}
	return detalle, nil
}

// Create schedules a new activity.
func (s *ActividadService) Create(ctx context.Context, req dto.CreateActividadRequest) (*models.ActividadDetalle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid actividad payload")
	}
	fecha, err := models.ParseDate(req.Fecha)
	if err != nil {
		return nil, validationError(err, "fecha must use YYYY-MM-DD")
	}

	actividad := &models.Actividad{
		Fecha:      fecha,
		TurnoID:    req.TurnoID,
		CursoID:    req.CursoID,
		MonitorNIP: models.NullableText(req.MonitorNIP),
		Notas:      models.NullableText(cleanText(s.sanitizer, req.Notas)),
	}
	if err := s.checkReferences(ctx, actividad); err != nil {
		return nil, err
	}
	if err := s.actividades.Create(ctx, actividad); err != nil {
		return nil, storeError(err, "", "failed to create actividad")
	}
	s.afterWrite(ctx, "actividad", "create")
	s.logger.Info("actividad created", zap.Int64("id", actividad.ID), zap.String("fecha", actividad.Fecha.String()))
	return s.Get(ctx, actividad.ID)
}

// Update applies a partial update to an activity.
func (s *ActividadService) Update(ctx context.Context, id int64, patch models.ActividadPatch) (*models.ActividadDetalle, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid actividad payload")
	}
	if patch.Fecha != nil && patch.Fecha.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fecha cannot be empty")
	}

	detalle, err := s.actividades.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "actividad not found", "failed to load actividad")
	}
	if patch.Empty() {
		return detalle, nil
	}

	if patch.Notas != nil {
		clean := cleanText(s.sanitizer, *patch.Notas)
		patch.Notas = &clean
	}
	actividad := detalle.Actividad
	patch.Apply(&actividad)
	if err := s.checkReferences(ctx, &actividad); err != nil {
		return nil, err
	}
	if err := s.actividades.Update(ctx, &actividad); err != nil {
		return nil, storeError(err, "actividad not found", "failed to update actividad")
	}
	s.afterWrite(ctx, "actividad", "update")
	return s.Get(ctx, id)
}

// Delete removes an activity together with its attendance links.
func (s *ActividadService) Delete(ctx context.Context, id int64) error {
	if err := s.actividades.Delete(ctx, id); err != nil {
		return storeError(err, "actividad not found", "failed to delete actividad")
	}
	s.afterWrite(ctx, "actividad", "delete")
	s.logger.Info("actividad deleted", zap.Int64("id", id))
	return nil
}

// ListAgentes returns the agentes assigned to an activity.
func (s *ActividadService) ListAgentes(ctx context.Context, id int64) ([]models.AgenteAsignado, error) {
	if _, err := s.actividades.FindByID(ctx, id); err != nil {
		return nil, storeError(err, "actividad not found", "failed to load actividad")
	}
	agentes, err := s.asistencias.ListByActividad(ctx, id)
	if err != nil {
		return nil, storeError(err, "", "failed to list actividad agentes")
	}
	return agentes, nil
}

// ListLinks returns every attendance link.
func (s *ActividadService) ListLinks(ctx context.Context) ([]models.AgenteActividad, error) {
	links, err := s.asistencias.ListAll(ctx)
	if err != nil {
		return nil, storeError(err, "", "failed to list asignaciones")
	}
	return links, nil
}

// Asignar links an agente to an activity with pending attendance.
func (s *ActividadService) Asignar(ctx context.Context, id int64, req dto.AsignarAgenteRequest) error {
	req.NIP = strings.TrimSpace(req.NIP)
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid asignacion payload")
	}
	if _, err := s.actividades.FindByID(ctx, id); err != nil {
		return storeError(err, "actividad not found", "failed to load actividad")
	}
	if _, err := s.agentes.FindByNIP(ctx, req.NIP); err != nil {
		return storeError(err, "agente not found", "failed to load agente")
	}
	exists, err := s.asistencias.Exists(ctx, req.NIP, id)
	if err != nil {
		return storeError(err, "", "failed to check asignacion")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "agente already assigned")
	}
	if err := s.asistencias.Assign(ctx, req.NIP, id); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return appErrors.Clone(appErrors.ErrConflict, "agente already assigned")
		}
		return storeError(err, "", "failed to assign agente")
	}
	s.afterWrite(ctx, "asignacion", "create")
	return nil
}

// Desasignar removes an agente from an activity.
func (s *ActividadService) Desasignar(ctx context.Context, id int64, nip string) error {
	if err := s.asistencias.Unassign(ctx, strings.TrimSpace(nip), id); err != nil {
		return storeError(err, "asignacion not found", "failed to unassign agente")
	}
	s.afterWrite(ctx, "asignacion", "delete")
	return nil
}

// SetAsistencia records whether the agente attended. Nil resets to pending.
func (s *ActividadService) SetAsistencia(ctx context.Context, id int64, nip string, asistencia *bool) error {
	if err := s.asistencias.SetAsistencia(ctx, strings.TrimSpace(nip), id, asistencia); err != nil {
		return storeError(err, "asignacion not found", "failed to update asistencia")
	}
	s.afterWrite(ctx, "asistencia", "update")
	return nil
}

func (s *ActividadService) checkReferences(ctx context.Context, actividad *models.Actividad) error {
	if actividad.Fecha.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "fecha is required")
	}
	if _, err := s.turnos.FindByID(ctx, actividad.TurnoID); err != nil {
		return referenceError(err, "turno not found")
	}
	if _, err := s.cursos.FindByID(ctx, actividad.CursoID); err != nil {
		return referenceError(err, "curso not found")
	}
	if actividad.MonitorNIP != nil {
		monitor, err := s.agentes.FindByNIP(ctx, *actividad.MonitorNIP)
		if err != nil {
			return referenceError(err, "monitor not found")
		}
		if !monitor.EsMonitor {
			return appErrors.Clone(appErrors.ErrValidation, "agente is not a monitor")
		}
	}
	return nil
}

func (s *ActividadService) afterWrite(ctx context.Context, entity, op string) {
	s.metrics.RecordWrite(entity, op)
	s.cache.invalidateAfterWrite(ctx, CachePatternResumen)
}

// referenceError reports a missing referenced row as a validation failure.
func referenceError(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrValidation, message)
	}
	return storeError(err, "", message)
}
