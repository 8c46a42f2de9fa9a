package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/agentes-admin/api/swagger"
	"github.com/noah-isme/agentes-admin/internal/client"
	"github.com/noah-isme/agentes-admin/internal/handler"
	"github.com/noah-isme/agentes-admin/internal/repository"
	"github.com/noah-isme/agentes-admin/internal/router"
	"github.com/noah-isme/agentes-admin/internal/service"
	"github.com/noah-isme/agentes-admin/internal/web"
	"github.com/noah-isme/agentes-admin/pkg/cache"
	"github.com/noah-isme/agentes-admin/pkg/config"
	"github.com/noah-isme/agentes-admin/pkg/database"
	"github.com/noah-isme/agentes-admin/pkg/logger"
)

// @title Agentes Admin API
// @version 1.0.0
// @description REST facade over agentes, actividades, cursos, turnos and attendance.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.Reports.UseView); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
		if err := database.SeedReference(ctx, db); err != nil {
			logr.Fatal("failed to seed reference data", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			// The cache is optional; reads fall through to the store.
			logr.Warn("redis unavailable, cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
		}
	}

	engine, err := buildEngine(cfg, logr, db, redisClient)
	if err != nil {
		logr.Fatal("failed to build server", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "driver", cfg.Database.Driver, "ui", cfg.UI.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

// buildEngine wires repositories, services, REST handlers and the panel onto
// one gin engine. A nil redisClient disables the cache.
func buildEngine(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client) (*gin.Engine, error) {
	validate := validator.New()
	metrics := service.NewMetricsService()
	if err := metrics.RegisterDB(db.DB, cfg.Database.Driver); err != nil {
		return nil, err
	}

	checks := map[string]handler.Pinger{"database": db}
	var cacheService *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheService = service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, true)
		checks["cache"] = handler.PingFunc(cacheRepo.Ping)
	}

	agenteRepo := repository.NewAgenteRepository(db)
	cursoRepo := repository.NewCursoRepository(db)
	turnoRepo := repository.NewTurnoRepository(db)
	actividadRepo := repository.NewActividadRepository(db)
	asistenciaRepo := repository.NewAsistenciaRepository(db)

	agenteService := service.NewAgenteService(agenteRepo, cacheService, metrics, validate, logr)
	catalogoService := service.NewCatalogoService(cursoRepo, turnoRepo, cacheService, metrics, validate, logr)
	actividadService := service.NewActividadService(service.ActividadServiceParams{
		Actividades: actividadRepo,
		Asistencias: asistenciaRepo,
		Agentes:     agenteRepo,
		Cursos:      cursoRepo,
		Turnos:      turnoRepo,
		Cache:       cacheService,
		Metrics:     metrics,
		Validator:   validate,
		Logger:      logr,
	})
	resumenService := service.NewResumenService(actividadRepo, asistenciaRepo, cacheService, metrics, logr, service.ResumenServiceConfig{
		UseView:  cfg.Reports.UseView,
		CacheTTL: cfg.Cache.TTL,
	})
	dashboardService := service.NewDashboardService(resumenService)
	exportService := service.NewExportService(resumenService, cfg.Reports.ExportTitle, logr)

	engine := router.New(router.Handlers{
		Agentes:     handler.NewAgenteHandler(agenteService),
		Catalogo:    handler.NewCatalogoHandler(catalogoService),
		Actividades: handler.NewActividadHandler(actividadService),
		Resumen:     handler.NewResumenHandler(resumenService, dashboardService, exportService),
		Metrics:     handler.NewMetricsHandler(metrics, checks),
	}, router.Options{
		Logger:         logr,
		MetricsService: metrics,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
	})

	if !cfg.UI.Enabled {
		return engine, nil
	}

	var source web.Source
	if cfg.UI.DataSource == config.DataSourceRemote {
		source = client.New(cfg.API.BaseURL, cfg.API.Timeout, logr).WithReadCache(cfg.API.CacheTTL)
	} else {
		source = web.NewLocalSource(agenteService, catalogoService, actividadService, dashboardService)
	}
	panel, err := web.New(source, web.Config{
		Prefix:        cfg.UI.Prefix,
		SessionSecret: cfg.UI.SessionSecret,
		SecureCookies: cfg.Env == config.EnvProduction,
		DataSource:    cfg.UI.DataSource,
	}, logr)
	if err != nil {
		return nil, err
	}
	panel.Register(engine)
	return engine, nil
}
