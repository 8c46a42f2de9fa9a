package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/handler"
	"github.com/noah-isme/agentes-admin/internal/middleware"
	"github.com/noah-isme/agentes-admin/internal/service"
	"github.com/noah-isme/agentes-admin/pkg/logger"
	corsmiddleware "github.com/noah-isme/agentes-admin/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/agentes-admin/pkg/middleware/requestid"
)

// Handlers groups the REST handlers mounted on the engine.
type Handlers struct {
	Agentes     *handler.AgenteHandler
	Catalogo    *handler.CatalogoHandler
	Actividades *handler.ActividadHandler
	Resumen     *handler.ResumenHandler
	Metrics     *handler.MetricsHandler
}

// Options tunes engine construction.
type Options struct {
	Logger         *zap.Logger
	MetricsService *service.MetricsService
	AllowedOrigins []string
	EnableDocs     bool
}

// New builds the gin engine with the shared middleware stack and the REST
// routes.
func New(h Handlers, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.MetricsService))
	r.Use(middleware.WithResponseMeta())

	Register(r, h)

	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return r
}

// Register mounts the REST routes on r.
func Register(r gin.IRouter, h Handlers) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
		r.GET("/system/metrics", h.Metrics.SystemMetrics)
	}

	if h.Agentes != nil {
		agentes := r.Group("/agentes")
		agentes.GET("", h.Agentes.List)
		agentes.POST("", h.Agentes.Create)
		agentes.GET("/:nip", h.Agentes.Get)
		agentes.PUT("/:nip", h.Agentes.Update)
		agentes.DELETE("/:nip", h.Agentes.Delete)

		monitores := r.Group("/monitores")
		monitores.GET("", h.Agentes.ListMonitores)
		monitores.PUT("/:nip", h.Agentes.PromoteMonitor)
		monitores.DELETE("/:nip", h.Agentes.DemoteMonitor)
	}

	if h.Catalogo != nil {
		cursos := r.Group("/cursos")
		cursos.GET("", h.Catalogo.ListCursos)
		cursos.POST("", h.Catalogo.CreateCurso)
		cursos.GET("/:id", h.Catalogo.GetCurso)
		cursos.PUT("/:id", h.Catalogo.UpdateCurso)
		cursos.DELETE("/:id", h.Catalogo.DeleteCurso)

		r.GET("/turnos", h.Catalogo.ListTurnos)
	}

	if h.Actividades != nil {
		actividades := r.Group("/actividades")
		actividades.GET("", h.Actividades.List)
		actividades.POST("", h.Actividades.Create)
		actividades.GET("/:id", h.Actividades.Get)
		actividades.PUT("/:id", h.Actividades.Update)
		actividades.DELETE("/:id", h.Actividades.Delete)
		actividades.GET("/:id/agentes", h.Actividades.ListAgentes)
		actividades.POST("/:id/agentes", h.Actividades.Asignar)
		actividades.DELETE("/:id/agentes/:nip", h.Actividades.Desasignar)
		actividades.PUT("/:id/agentes/:nip/asistencia", h.Actividades.SetAsistencia)

		r.GET("/agentes_por_actividad/:id", h.Actividades.ListAgentes)
		r.POST("/actualizar_asistencia", h.Actividades.ActualizarAsistencia)
	}

	if h.Resumen != nil {
		r.GET("/resumen", h.Resumen.Resumen)
		r.GET("/resumen/export", h.Resumen.Export)
		r.GET("/dashboard", h.Resumen.Dashboard)
	}
}
