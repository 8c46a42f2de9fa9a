package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/models"
)

// Sources reported alongside an attendance summary.
const (
	FuenteVista     = "vista"
	FuenteCalculada = "calculada"
)

type conteoSource interface {
	ConteosFromView(ctx context.Context) ([]models.ActividadConteo, error)
	List(ctx context.Context) ([]models.ActividadDetalle, error)
}

type linkLister interface {
	ListAll(ctx context.Context) ([]models.AgenteActividad, error)
}

// ResumenServiceConfig tunes the aggregation.
type ResumenServiceConfig struct {
	UseView  bool
	CacheTTL time.Duration
}

// ResumenService builds the per-activity attendance summary from the view
// or, when that fails, by counting links in process.
type ResumenService struct {
	actividades conteoSource
	links       linkLister
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
	cfg         ResumenServiceConfig
}

type cachedConteos struct {
	Fuente  string                   `json:"fuente"`
	Conteos []models.ActividadConteo `json:"conteos"`
}

// NewResumenService constructs a ResumenService.
func NewResumenService(actividades conteoSource, links linkLister, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg ResumenServiceConfig) *ResumenService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResumenService{
		actividades: actividades,
		links:       links,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
		cfg:         cfg,
	}
}

// Today returns the current calendar day.
func (s *ResumenService) Today() models.Date {
	return models.DateOf(s.now())
}

// Resumen returns every activity with counts and derived fields, plus the
// strategy that produced the counts. State is derived from today's date on
// every call, cached or not.
func (s *ResumenService) Resumen(ctx context.Context) ([]models.ActividadResumen, string, error) {
	conteos, fuente, err := s.conteos(ctx)
	if err != nil {
		return nil, "", err
	}
	return ResumirActividades(conteos, s.Today()), fuente, nil
}

// Filtrado returns the summary narrowed by filter.
func (s *ResumenService) Filtrado(ctx context.Context, filter models.ActividadFilter) ([]models.ActividadResumen, string, error) {
	rows, fuente, err := s.Resumen(ctx)
	if err != nil {
		return nil, "", err
	}
	return FiltrarActividades(rows, filter), fuente, nil
}

func (s *ResumenService) conteos(ctx context.Context) ([]models.ActividadConteo, string, error) {
	var cached cachedConteos
	if hit, _ := s.cache.Get(ctx, CacheKeyResumen, &cached); hit {
		return cached.Conteos, cached.Fuente, nil
	}

	var (
		conteos []models.ActividadConteo
		fuente  string
		err     error
	)
	if s.cfg.UseView {
		conteos, err = s.fromView(ctx)
		if err == nil {
			fuente = FuenteVista
		} else {
			s.logger.Warn("actividades view unavailable, counting in process", zap.Error(err))
		}
	}
	if fuente == "" {
		conteos, err = s.fromLinks(ctx)
		if err != nil {
			return nil, "", storeError(err, "", "failed to build resumen")
		}
		fuente = FuenteCalculada
	}

	s.metrics.RecordResumenSource(fuente)
	_ = s.cache.Set(ctx, CacheKeyResumen, cachedConteos{Fuente: fuente, Conteos: conteos}, s.cfg.CacheTTL)
	return conteos, fuente, nil
}

func (s *ResumenService) fromView(ctx context.Context) ([]models.ActividadConteo, error) {
	start := time.Now()
	conteos, err := s.actividades.ConteosFromView(ctx)
	s.metrics.ObserveDBQuery("resumen_vista", time.Since(start))
	return conteos, err
}

// fromLinks is the fallback: fetch details and links, count here.
func (s *ResumenService) fromLinks(ctx context.Context) ([]models.ActividadConteo, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveDBQuery("resumen_calculada", time.Since(start)) }()

	detalles, err := s.actividades.List(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.links.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ContarAsistencias(detalles, links), nil
}
