// Package client is a thin HTTP wrapper over the REST facade. Reads return
// data or an *Error; writes never fail and report the outcome in a Result.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
)

// Error is a failed read: the HTTP status (0 when the request never got a
// response) and the server's detail message.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return "request failed: " + e.Detail
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Detail)
}

// Result reports the outcome of a write.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Client calls the REST facade.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *readCache
	logger  *zap.Logger
}

// New builds a Client. A zero timeout means no timeout.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// WithReadCache keeps successful reads for ttl. A zero ttl disables it.
func (c *Client) WithReadCache(ttl time.Duration) *Client {
	if ttl > 0 {
		c.cache = newReadCache(ttl)
	} else {
		c.cache = nil
	}
	return c
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Detail string          `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (int, *envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, &Error{Detail: err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, &Error{Detail: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &Error{Detail: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &Error{Status: resp.StatusCode, Detail: err.Error()}
	}

	env := &envelope{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, env); err != nil && resp.StatusCode < 300 {
			return resp.StatusCode, nil, &Error{Status: resp.StatusCode, Detail: "invalid response body"}
		}
	}
	if resp.StatusCode >= 300 {
		detail := env.Detail
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return resp.StatusCode, env, &Error{Status: resp.StatusCode, Detail: detail}
	}
	return resp.StatusCode, env, nil
}

func (c *Client) read(ctx context.Context, path string, query url.Values, dest interface{}) error {
	key := path + "?" + query.Encode()
	data, ok := c.cache.get(key)
	if !ok {
		_, env, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			c.logger.Warn("api read failed", zap.String("path", path), zap.Error(err))
			return err
		}
		data = env.Data
		c.cache.put(key, data)
	}
	if len(data) == 0 || dest == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &Error{Status: http.StatusOK, Detail: "invalid response data"}
	}
	return nil
}

func (c *Client) write(ctx context.Context, method, path string, body interface{}, okMessage string) Result {
	status, _, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return Result{Success: false, Message: apiErr.Detail, Status: apiErr.Status}
		}
		return Result{Success: false, Message: err.Error(), Status: status}
	}
	c.cache.clear()
	return Result{Success: true, Message: okMessage, Status: status}
}

// ListAgentes fetches agentes matching filter.
func (c *Client) ListAgentes(ctx context.Context, filter models.AgenteFilter) ([]models.Agente, error) {
	q := url.Values{}
	setIf(q, "seccion", filter.Seccion)
	setIf(q, "grupo", filter.Grupo)
	setIf(q, "q", filter.Search)
	if filter.Activo != nil {
		q.Set("activo", strconv.FormatBool(*filter.Activo))
	}
	if filter.Monitor != nil {
		q.Set("monitor", strconv.FormatBool(*filter.Monitor))
	}
	var agentes []models.Agente
	err := c.read(ctx, "/agentes", q, &agentes)
	return agentes, err
}

// GetAgente fetches one agente.
func (c *Client) GetAgente(ctx context.Context, nip string) (*models.Agente, error) {
	var agente models.Agente
	if err := c.read(ctx, "/agentes/"+url.PathEscape(nip), nil, &agente); err != nil {
		return nil, err
	}
	return &agente, nil
}

// CreateAgente registers an agente.
func (c *Client) CreateAgente(ctx context.Context, req dto.CreateAgenteRequest) Result {
	return c.write(ctx, http.MethodPost, "/agentes", req, "agente created")
}

// UpdateAgente applies a partial update.
func (c *Client) UpdateAgente(ctx context.Context, nip string, patch models.AgentePatch) Result {
	return c.write(ctx, http.MethodPut, "/agentes/"+url.PathEscape(nip), patch, "agente updated")
}

// DeleteAgente removes an agente.
func (c *Client) DeleteAgente(ctx context.Context, nip string) Result {
	return c.write(ctx, http.MethodDelete, "/agentes/"+url.PathEscape(nip), nil, "agente deleted")
}

// ListMonitores fetches the monitors.
func (c *Client) ListMonitores(ctx context.Context) ([]models.Agente, error) {
	var agentes []models.Agente
	err := c.read(ctx, "/monitores", nil, &agentes)
	return agentes, err
}

// SetMonitor promotes or demotes an agente.
func (c *Client) SetMonitor(ctx context.Context, nip string, monitor bool) Result {
	if monitor {
		return c.write(ctx, http.MethodPut, "/monitores/"+url.PathEscape(nip), dto.MonitorRequest{Monitor: &monitor}, "monitor assigned")
	}
	return c.write(ctx, http.MethodDelete, "/monitores/"+url.PathEscape(nip), nil, "monitor removed")
}

// ListCursos fetches the courses.
func (c *Client) ListCursos(ctx context.Context) ([]models.Curso, error) {
	var cursos []models.Curso
	err := c.read(ctx, "/cursos", nil, &cursos)
	return cursos, err
}

// CreateCurso adds a course.
func (c *Client) CreateCurso(ctx context.Context, req dto.CreateCursoRequest) Result {
	return c.write(ctx, http.MethodPost, "/cursos", req, "curso created")
}

// UpdateCurso applies a partial course update.
func (c *Client) UpdateCurso(ctx context.Context, id int64, patch models.CursoPatch) Result {
	return c.write(ctx, http.MethodPut, "/cursos/"+strconv.FormatInt(id, 10), patch, "curso updated")
}

// DeleteCurso removes an unused course.
func (c *Client) DeleteCurso(ctx context.Context, id int64) Result {
	return c.write(ctx, http.MethodDelete, "/cursos/"+strconv.FormatInt(id, 10), nil, "curso deleted")
}

// ListTurnos fetches the shifts.
func (c *Client) ListTurnos(ctx context.Context) ([]models.Turno, error) {
	var turnos []models.Turno
	err := c.read(ctx, "/turnos", nil, &turnos)
	return turnos, err
}

// ListActividades fetches the activities with names.
func (c *Client) ListActividades(ctx context.Context) ([]models.ActividadDetalle, error) {
	var actividades []models.ActividadDetalle
	err := c.read(ctx, "/actividades", nil, &actividades)
	return actividades, err
}

// GetActividad fetches one activity.
func (c *Client) GetActividad(ctx context.Context, id int64) (*models.ActividadDetalle, error) {
	var detalle models.ActividadDetalle
	if err := c.read(ctx, "/actividades/"+strconv.FormatInt(id, 10), nil, &detalle); err != nil {
		return nil, err
	}
	return &detalle, nil
}

// CreateActividad schedules an activity.
func (c *Client) CreateActividad(ctx context.Context, req dto.CreateActividadRequest) Result {
	return c.write(ctx, http.MethodPost, "/actividades", req, "actividad created")
}

// UpdateActividad applies a partial activity update.
func (c *Client) UpdateActividad(ctx context.Context, id int64, patch models.ActividadPatch) Result {
	return c.write(ctx, http.MethodPut, "/actividades/"+strconv.FormatInt(id, 10), patch, "actividad updated")
}

// DeleteActividad removes an activity and its assignments.
func (c *Client) DeleteActividad(ctx context.Context, id int64) Result {
	return c.write(ctx, http.MethodDelete, "/actividades/"+strconv.FormatInt(id, 10), nil, "actividad deleted")
}

// AgentesPorActividad fetches the agentes assigned to an activity.
func (c *Client) AgentesPorActividad(ctx context.Context, id int64) ([]models.AgenteAsignado, error) {
	var agentes []models.AgenteAsignado
	err := c.read(ctx, "/agentes_por_actividad/"+strconv.FormatInt(id, 10), nil, &agentes)
	return agentes, err
}

// AsignarAgente links an agente to an activity.
func (c *Client) AsignarAgente(ctx context.Context, id int64, nip string) Result {
	return c.write(ctx, http.MethodPost, "/actividades/"+strconv.FormatInt(id, 10)+"/agentes", dto.AsignarAgenteRequest{NIP: nip}, "agente assigned")
}

// DesasignarAgente removes an agente from an activity.
func (c *Client) DesasignarAgente(ctx context.Context, id int64, nip string) Result {
	return c.write(ctx, http.MethodDelete, "/actividades/"+strconv.FormatInt(id, 10)+"/agentes/"+url.PathEscape(nip), nil, "agente unassigned")
}

// ActualizarAsistencia records attendance through the flat endpoint. Nil
// resets the link to pending.
func (c *Client) ActualizarAsistencia(ctx context.Context, nip string, actividadID int64, asistencia *bool) Result {
	req := dto.ActualizarAsistenciaRequest{AgenteNIP: nip, ActividadID: actividadID}
	if asistencia != nil {
		v := 0
		if *asistencia {
			v = 1
		}
		req.Asistencia = &v
	}
	return c.write(ctx, http.MethodPost, "/actualizar_asistencia", req, "asistencia updated")
}

// Resumen fetches the aggregated report.
func (c *Client) Resumen(ctx context.Context, filter models.ActividadFilter) (*dto.ResumenResponse, error) {
	var resp dto.ResumenResponse
	if err := c.read(ctx, "/resumen", actividadQuery(filter), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Dashboard fetches the dashboard rollups.
func (c *Client) Dashboard(ctx context.Context, filter models.ActividadFilter) (*dto.DashboardResponse, error) {
	var resp dto.DashboardResponse
	if err := c.read(ctx, "/dashboard", actividadQuery(filter), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping checks that the facade answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	return err
}

func actividadQuery(filter models.ActividadFilter) url.Values {
	q := url.Values{}
	if filter.Desde != nil && !filter.Desde.IsZero() {
		q.Set("desde", filter.Desde.String())
	}
	if filter.Hasta != nil && !filter.Hasta.IsZero() {
		q.Set("hasta", filter.Hasta.String())
	}
	setIf(q, "curso", filter.Curso)
	setIf(q, "turno", filter.Turno)
	setIf(q, "estado", filter.Estado)
	setIf(q, "q", filter.Search)
	return q
}

func setIf(q url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		q.Set(key, value)
	}
}
