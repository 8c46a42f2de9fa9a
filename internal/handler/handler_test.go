package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/service"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

type envelope struct {
	Data   json.RawMessage        `json:"data"`
	Detail string                 `json:"detail"`
	Meta   map[string]interface{} `json:"meta"`
	Error  *appErrors.Error       `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type agenteServiceMock struct {
	createErr  error
	monitor    *bool
	gotFilter  models.AgenteFilter
	updatedNIP string
}

func (m *agenteServiceMock) List(ctx context.Context, filter models.AgenteFilter) ([]models.Agente, error) {
	m.gotFilter = filter
	return []models.Agente{{NIP: "A1"}}, nil
}

func (m *agenteServiceMock) ListMonitores(ctx context.Context) ([]models.Agente, error) {
	return nil, nil
}

func (m *agenteServiceMock) Get(ctx context.Context, nip string) (*models.Agente, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "agente not found")
}

func (m *agenteServiceMock) Create(ctx context.Context, req dto.CreateAgenteRequest) (*models.Agente, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.Agente{NIP: req.NIP, Nombre: req.Nombre}, nil
}

func (m *agenteServiceMock) Update(ctx context.Context, nip string, patch models.AgentePatch) (*models.Agente, error) {
	m.updatedNIP = nip
	return &models.Agente{NIP: nip}, nil
}

func (m *agenteServiceMock) Delete(ctx context.Context, nip string) error { return nil }

func (m *agenteServiceMock) SetMonitor(ctx context.Context, nip string, monitor bool) (*models.Agente, error) {
	m.monitor = &monitor
	return &models.Agente{NIP: nip, EsMonitor: monitor}, nil
}

func TestAgenteHandlerListParsesFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &agenteServiceMock{}
	h := NewAgenteHandler(mock)

	c, w := newGinContext(http.MethodGet, "/agentes?seccion=Seguridad&q=gil&activo=true&monitor=no", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Seguridad", mock.gotFilter.Seccion)
	assert.Equal(t, "gil", mock.gotFilter.Search)
	require.NotNil(t, mock.gotFilter.Activo)
	assert.True(t, *mock.gotFilter.Activo)
	require.NotNil(t, mock.gotFilter.Monitor)
	assert.False(t, *mock.gotFilter.Monitor)
}

func TestAgenteHandlerCreateConflictCarriesDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAgenteHandler(&agenteServiceMock{createErr: appErrors.Clone(appErrors.ErrConflict, "agente already exists")})

	body, _ := json.Marshal(dto.CreateAgenteRequest{NIP: "A1", Nombre: "Ana", Apellido1: "Gil"})
	c, w := newGinContext(http.MethodPost, "/agentes", body)
	h.Create(c)

	require.Equal(t, http.StatusConflict, w.Code)
	env := decode(t, w)
	assert.Equal(t, "agente already exists", env.Detail)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestAgenteHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAgenteHandler(&agenteServiceMock{})

	c, w := newGinContext(http.MethodGet, "/agentes/ZZ", nil)
	c.Params = gin.Params{{Key: "nip", Value: "ZZ"}}
	h.Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "agente not found", decode(t, w).Detail)
}

func TestAgenteHandlerPromoteMonitorDefaultsToTrue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &agenteServiceMock{}
	h := NewAgenteHandler(mock)

	c, w := newGinContext(http.MethodPut, "/monitores/A1", nil)
	c.Params = gin.Params{{Key: "nip", Value: "A1"}}
	h.PromoteMonitor(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mock.monitor)
	assert.True(t, *mock.monitor)

	c, w = newGinContext(http.MethodDelete, "/monitores/A1", nil)
	c.Params = gin.Params{{Key: "nip", Value: "A1"}}
	h.DemoteMonitor(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, *mock.monitor)
}

type actividadServiceMock struct {
	nip        string
	id         int64
	asistencia *bool
	calls      int
}

func (m *actividadServiceMock) List(ctx context.Context) ([]models.ActividadDetalle, error) {
	return nil, nil
}

func (m *actividadServiceMock) Get(ctx context.Context, id int64) (*models.ActividadDetalle, error) {
	return &models.ActividadDetalle{Actividad: models.Actividad{ID: id}}, nil
}

func (m *actividadServiceMock) Create(ctx context.Context, req dto.CreateActividadRequest) (*models.ActividadDetalle, error) {
	return &models.ActividadDetalle{}, nil
}

func (m *actividadServiceMock) Update(ctx context.Context, id int64, patch models.ActividadPatch) (*models.ActividadDetalle, error) {
	return &models.ActividadDetalle{}, nil
}

func (m *actividadServiceMock) Delete(ctx context.Context, id int64) error { return nil }

func (m *actividadServiceMock) ListAgentes(ctx context.Context, id int64) ([]models.AgenteAsignado, error) {
	return nil, nil
}

func (m *actividadServiceMock) Asignar(ctx context.Context, id int64, req dto.AsignarAgenteRequest) error {
	return nil
}

func (m *actividadServiceMock) Desasignar(ctx context.Context, id int64, nip string) error {
	return nil
}

func (m *actividadServiceMock) SetAsistencia(ctx context.Context, id int64, nip string, asistencia *bool) error {
	m.calls++
	m.id, m.nip, m.asistencia = id, nip, asistencia
	return nil
}

func TestActualizarAsistenciaLegacyPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &actividadServiceMock{}
	h := NewActividadHandler(mock)

	c, w := newGinContext(http.MethodPost, "/actualizar_asistencia", []byte(`{"agente_nip":"A1","actividad_id":7,"asistencia":0}`))
	h.ActualizarAsistencia(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), mock.id)
	assert.Equal(t, "A1", mock.nip)
	require.NotNil(t, mock.asistencia)
	assert.False(t, *mock.asistencia)

	c, w = newGinContext(http.MethodPost, "/actualizar_asistencia", []byte(`{"agente_nip":"A1","actividad_id":7,"asistencia":null}`))
	h.ActualizarAsistencia(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mock.asistencia)

	c, w = newGinContext(http.MethodPost, "/actualizar_asistencia", []byte(`{"agente_nip":"A1","actividad_id":7,"asistencia":5}`))
	h.ActualizarAsistencia(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 2, mock.calls)
}

func TestActividadHandlerRejectsBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewActividadHandler(&actividadServiceMock{})

	c, w := newGinContext(http.MethodGet, "/actividades/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Get(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id must be a positive integer", decode(t, w).Detail)
}

type resumenServiceMock struct {
	filter models.ActividadFilter
}

func (m *resumenServiceMock) Filtrado(ctx context.Context, filter models.ActividadFilter) ([]models.ActividadResumen, string, error) {
	m.filter = filter
	return []models.ActividadResumen{}, service.FuenteCalculada, nil
}

type exportServiceMock struct{}

func (exportServiceMock) Export(ctx context.Context, filter models.ActividadFilter, format string) (*service.ExportFile, error) {
	if format == "docx" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv, pdf or xlsx")
	}
	return &service.ExportFile{Filename: "actividades.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("ID\n")}, nil
}

func TestResumenHandlerFilterAndMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &resumenServiceMock{}
	h := NewResumenHandler(mock, nil, exportServiceMock{})

	c, w := newGinContext(http.MethodGet, "/resumen?desde=2024-05-01&estado=Pendiente&curso=Todos", nil)
	h.Resumen(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mock.filter.Desde)
	assert.Equal(t, "2024-05-01", mock.filter.Desde.String())
	assert.Nil(t, mock.filter.Hasta)
	assert.Equal(t, "Pendiente", mock.filter.Estado)
	assert.Equal(t, service.FuenteCalculada, decode(t, w).Meta["fuente"])

	c, w = newGinContext(http.MethodGet, "/resumen?hasta=15/05/2024", nil)
	h.Resumen(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "hasta must use YYYY-MM-DD", decode(t, w).Detail)
}

func TestResumenHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewResumenHandler(&resumenServiceMock{}, nil, exportServiceMock{})

	c, w := newGinContext(http.MethodGet, "/resumen/export?format=csv", nil)
	h.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "actividades.csv")
	assert.Equal(t, "ID\n", w.Body.String())

	c, w = newGinContext(http.MethodGet, "/resumen/export?format=docx", nil)
	h.Export(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsHandlerReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(nil, map[string]Pinger{
		"database": PingFunc(func(ctx context.Context) error { return nil }),
		"cache":    PingFunc(func(ctx context.Context) error { return appErrors.ErrUnavailable }),
		"skipped":  nil,
	})

	c, w := newGinContext(http.MethodGet, "/ready", nil)
	h.Ready(c)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
}
