package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/repository"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

type agenteRepository interface {
	List(ctx context.Context, filter models.AgenteFilter) ([]models.Agente, error)
	ListMonitores(ctx context.Context) ([]models.Agente, error)
	FindByNIP(ctx context.Context, nip string) (*models.Agente, error)
	ExistsByNIP(ctx context.Context, nip string) (bool, error)
	Create(ctx context.Context, agente *models.Agente) error
	Update(ctx context.Context, agente *models.Agente) error
	SetMonitor(ctx context.Context, nip string, monitor bool) error
	Delete(ctx context.Context, nip string) error
}

// AgenteService handles agente and monitor use-cases.
type AgenteService struct {
	repo      agenteRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAgenteService constructs the agente service.
func NewAgenteService(repo agenteRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AgenteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgenteService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns agentes matching filter. The store narrows by the flags and
// FiltrarAgentes applies the case-insensitive text dimensions.
func (s *AgenteService) List(ctx context.Context, filter models.AgenteFilter) ([]models.Agente, error) {
	agentes, err := s.repo.List(ctx, models.AgenteFilter{Activo: filter.Activo, Monitor: filter.Monitor})
	if err != nil {
		return nil, storeError(err, "", "failed to list agentes")
	}
	return FiltrarAgentes(agentes, filter), nil
}

// ListMonitores returns the instructor-eligible agentes.
func (s *AgenteService) ListMonitores(ctx context.Context) ([]models.Agente, error) {
	agentes, err := s.repo.ListMonitores(ctx)
	if err != nil {
		return nil, storeError(err, "", "failed to list monitores")
	}
	return agentes, nil
}

// Get returns one agente.
func (s *AgenteService) Get(ctx context.Context, nip string) (*models.Agente, error) {
	agente, err := s.repo.FindByNIP(ctx, strings.TrimSpace(nip))
	if err != nil {
		return nil, storeError(err, "agente not found", "failed to load agente")
	}
	return agente, nil
}

// Create registers a new agente. A taken NIP is reported as a conflict and
// the store is left untouched.
func (s *AgenteService) Create(ctx context.Context, req dto.CreateAgenteRequest) (*models.Agente, error) {
	req.NIP = strings.TrimSpace(req.NIP)
	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Apellido1 = strings.TrimSpace(req.Apellido1)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid agente payload")
	}

	exists, err := s.repo.ExistsByNIP(ctx, req.NIP)
	if err != nil {
		return nil, storeError(err, "", "failed to validate nip")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "agente already exists")
	}

	agente := &models.Agente{
		NIP:       req.NIP,
		Nombre:    req.Nombre,
		Apellido1: req.Apellido1,
		Apellido2: models.NullableText(req.Apellido2),
		Seccion:   models.NullableText(req.Seccion),
		Grupo:     models.NullableText(req.Grupo),
		Activo:    req.Activo == nil || *req.Activo,
		EsMonitor: req.Monitor,
	}
	if err := s.repo.Create(ctx, agente); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "agente already exists")
		}
		return nil, storeError(err, "", "failed to create agente")
	}
	s.afterWrite(ctx, "create")
	s.logger.Info("agente created", zap.String("nip", agente.NIP))
	return agente, nil
}

// Update applies a partial update. Fields absent from patch keep their
// stored values.
func (s *AgenteService) Update(ctx context.Context, nip string, patch models.AgentePatch) (*models.Agente, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid agente payload")
	}
	if patch.Nombre != nil && strings.TrimSpace(*patch.Nombre) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nombre cannot be empty")
	}
	if patch.Apellido1 != nil && strings.TrimSpace(*patch.Apellido1) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "apellido1 cannot be empty")
	}

	agente, err := s.repo.FindByNIP(ctx, strings.TrimSpace(nip))
	if err != nil {
		return nil, storeError(err, "agente not found", "failed to load agente")
	}
	if patch.Empty() {
		return agente, nil
	}

	patch.Apply(agente)
	if err := s.repo.Update(ctx, agente); err != nil {
		return nil, storeError(err, "agente not found", "failed to update agente")
	}
	s.afterWrite(ctx, "update")
	return agente, nil
}

// Delete removes an agente with its links and clears it as monitor.
func (s *AgenteService) Delete(ctx context.Context, nip string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(nip)); err != nil {
		return storeError(err, "agente not found", "failed to delete agente")
	}
	s.afterWrite(ctx, "delete")
	s.logger.Info("agente deleted", zap.String("nip", nip))
	return nil
}

// SetMonitor promotes or demotes an agente as instructor.
func (s *AgenteService) SetMonitor(ctx context.Context, nip string, monitor bool) (*models.Agente, error) {
	nip = strings.TrimSpace(nip)
	if err := s.repo.SetMonitor(ctx, nip, monitor); err != nil {
		return nil, storeError(err, "agente not found", "failed to update monitor")
	}
	s.afterWrite(ctx, "monitor")
	return s.Get(ctx, nip)
}

func (s *AgenteService) afterWrite(ctx context.Context, op string) {
	s.metrics.RecordWrite("agente", op)
	s.cache.invalidateAfterWrite(ctx, CachePatternResumen)
}
