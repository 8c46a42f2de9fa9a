// Package web serves the server-rendered administration panel.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/client"
	"github.com/noah-isme/agentes-admin/internal/models"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// Config configures the panel.
type Config struct {
	Prefix        string
	SessionSecret string
	SecureCookies bool
	DataSource    string
}

// Handler renders the panel pages and handles their form posts.
type Handler struct {
	source    Source
	templates *template.Template
	store     *sessions.CookieStore
	prefix    string
	mode      string
	logger    *zap.Logger
	now       func() time.Time
}

// New parses the embedded templates and builds a Handler.
func New(source Source, cfg Config, logger *zap.Logger) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := strings.TrimRight(cfg.Prefix, "/")
	if prefix == "" {
		prefix = "/panel"
	}
	h := &Handler{
		source: source,
		store:  newSessionStore(cfg.SessionSecret, prefix, cfg.SecureCookies),
		prefix: prefix,
		mode:   cfg.DataSource,
		logger: logger,
		now:    time.Now,
	}

	funcs := template.FuncMap{
		"highlight": Highlight,
		"text":      models.TextOrEmpty,
		"url":       func(path string) string { return prefix + path },
		"pct":       func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
		"estadoClass": func(estado string) string {
			switch estado {
			case models.EstadoCompletada:
				return "completada"
			case models.EstadoEnCurso:
				return "en-curso"
			default:
				return "pendiente"
			}
		},
		"asistencia": models.EstadoAsistencia,
		"selected": func(a, b interface{}) bool {
			return fmt.Sprint(a) == fmt.Sprint(b)
		},
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse panel templates: %w", err)
	}
	h.templates = tmpl
	return h, nil
}

// Prefix returns the mount path of the panel.
func (h *Handler) Prefix() string { return h.prefix }

// Register mounts the panel routes on r.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group(h.prefix)
	g.GET("", h.redirectTo("/dashboard"))
	g.GET("/", h.redirectTo("/dashboard"))
	g.GET("/dashboard", h.Dashboard)

	g.GET("/agentes", h.Agentes)
	g.POST("/agentes", h.CreateAgente)
	g.GET("/agentes/:nip/editar", h.EditAgente)
	g.POST("/agentes/:nip", h.UpdateAgente)
	g.POST("/agentes/:nip/eliminar", h.DeleteAgente)

	g.GET("/monitores", h.Monitores)
	g.POST("/monitores", h.PromoteMonitor)
	g.POST("/monitores/:nip/quitar", h.DemoteMonitor)

	g.GET("/cursos", h.Cursos)
	g.POST("/cursos", h.CreateCurso)
	g.POST("/cursos/:id", h.UpdateCurso)
	g.POST("/cursos/:id/eliminar", h.DeleteCurso)

	g.GET("/actividades", h.Actividades)
	g.POST("/actividades", h.CreateActividad)
	g.GET("/actividades/:id", h.Actividad)
	g.POST("/actividades/:id", h.UpdateActividad)
	g.POST("/actividades/:id/eliminar", h.DeleteActividad)
	g.POST("/actividades/:id/agentes", h.AsignarAgente)
	g.POST("/actividades/:id/agentes/:nip/quitar", h.DesasignarAgente)
	g.POST("/actividades/:id/agentes/:nip/asistencia", h.Asistencia)
}

func (h *Handler) redirectTo(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, h.prefix+path)
	}
}

// page carries what every template receives besides its own data.
type page struct {
	Title    string
	Active   string
	Prefix   string
	Mode     string
	Flashes  []Flash
	Warnings []string
	Content  template.HTML
}

// view accumulates page data and read warnings while a handler runs.
type view struct {
	Data     map[string]interface{}
	Warnings []string
}

func newView() *view {
	return &view{Data: map[string]interface{}{}}
}

// degrade records a failed read as a banner warning. The page still
// renders with empty data.
func (h *Handler) degrade(v *view, what string, err error) {
	if err == nil {
		return
	}
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			err = appErrors.CloneWrap(appErrors.ErrRemote, err, "")
		} else {
			err = appErrors.Wrap(err, appErrors.ErrRemote.Code, apiErr.Status, apiErr.Detail)
		}
	}
	h.logger.Warn("panel read failed", zap.String("what", what), zap.Error(err))
	v.Warnings = append(v.Warnings, fmt.Sprintf("No se pudieron cargar %s: %s", what, appErrors.FromError(err).Message))
}

func (h *Handler) render(c *gin.Context, name, title string, v *view) {
	sess := h.session(c)
	p := page{
		Title:    title,
		Active:   name,
		Prefix:   h.prefix,
		Mode:     h.mode,
		Flashes:  h.popFlashes(sess),
		Warnings: v.Warnings,
	}
	v.Data["Prefix"] = h.prefix

	var content bytes.Buffer
	if err := h.templates.ExecuteTemplate(&content, name, v.Data); err != nil {
		h.logger.Error("render panel section", zap.String("section", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "template error")
		return
	}
	p.Content = template.HTML(content.String())

	var out bytes.Buffer
	if err := h.templates.ExecuteTemplate(&out, "layout", p); err != nil {
		h.logger.Error("render panel layout", zap.Error(err))
		c.String(http.StatusInternalServerError, "template error")
		return
	}
	h.saveSession(c, sess)
	c.Data(http.StatusOK, "text/html; charset=utf-8", out.Bytes())
}

// finish flashes the write outcome and redirects back.
func (h *Handler) finish(c *gin.Context, res client.Result, successMessage, path string) {
	if res.Success {
		h.addFlash(c, flashSuccess, successMessage)
	} else {
		h.addFlash(c, flashError, res.Message)
	}
	c.Redirect(http.StatusSeeOther, h.prefix+path)
}

func (h *Handler) today() models.Date {
	return models.DateOf(h.now())
}
