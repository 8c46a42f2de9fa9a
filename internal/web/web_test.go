package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/agentes-admin/internal/client"
	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/service"
)

type fakeSource struct {
	agentes       []models.Agente
	agentesErr    error
	agenteFilters []models.AgenteFilter
	cursos        []models.Curso
	turnos        []models.Turno
	rows          []models.ActividadResumen
	dashFilters   []models.ActividadFilter
	writeResult   client.Result
	asistencias   []*bool
	created       []dto.CreateCursoRequest
	patches       []models.AgentePatch
}

func (f *fakeSource) ListAgentes(_ context.Context, filter models.AgenteFilter) ([]models.Agente, error) {
	f.agenteFilters = append(f.agenteFilters, filter)
	return f.agentes, f.agentesErr
}

func (f *fakeSource) GetAgente(_ context.Context, nip string) (*models.Agente, error) {
	for _, a := range f.agentes {
		if a.NIP == nip {
			return &a, nil
		}
	}
	return nil, &client.Error{Status: http.StatusNotFound, Detail: "agente not found"}
}

func (f *fakeSource) CreateAgente(context.Context, dto.CreateAgenteRequest) client.Result {
	return f.writeResult
}

func (f *fakeSource) UpdateAgente(_ context.Context, _ string, patch models.AgentePatch) client.Result {
	f.patches = append(f.patches, patch)
	return f.writeResult
}

func (f *fakeSource) DeleteAgente(context.Context, string) client.Result { return f.writeResult }

func (f *fakeSource) ListMonitores(context.Context) ([]models.Agente, error) { return nil, nil }

func (f *fakeSource) SetMonitor(context.Context, string, bool) client.Result { return f.writeResult }

func (f *fakeSource) ListCursos(context.Context) ([]models.Curso, error) { return f.cursos, nil }

func (f *fakeSource) CreateCurso(_ context.Context, req dto.CreateCursoRequest) client.Result {
	f.created = append(f.created, req)
	return f.writeResult
}

func (f *fakeSource) UpdateCurso(context.Context, int64, models.CursoPatch) client.Result {
	return f.writeResult
}

func (f *fakeSource) DeleteCurso(context.Context, int64) client.Result { return f.writeResult }

func (f *fakeSource) ListTurnos(context.Context) ([]models.Turno, error) { return f.turnos, nil }

func (f *fakeSource) GetActividad(_ context.Context, id int64) (*models.ActividadDetalle, error) {
	for _, r := range f.rows {
		if r.ID == id {
			d := r.ActividadDetalle
			return &d, nil
		}
	}
	return nil, &client.Error{Status: http.StatusNotFound, Detail: "actividad not found"}
}

func (f *fakeSource) CreateActividad(context.Context, dto.CreateActividadRequest) client.Result {
	return f.writeResult
}

func (f *fakeSource) UpdateActividad(context.Context, int64, models.ActividadPatch) client.Result {
	return f.writeResult
}

func (f *fakeSource) DeleteActividad(context.Context, int64) client.Result { return f.writeResult }

func (f *fakeSource) AgentesPorActividad(context.Context, int64) ([]models.AgenteAsignado, error) {
	return nil, nil
}

func (f *fakeSource) AsignarAgente(context.Context, int64, string) client.Result {
	return f.writeResult
}

func (f *fakeSource) DesasignarAgente(context.Context, int64, string) client.Result {
	return f.writeResult
}

func (f *fakeSource) ActualizarAsistencia(_ context.Context, _ string, _ int64, asistencia *bool) client.Result {
	f.asistencias = append(f.asistencias, asistencia)
	return f.writeResult
}

func (f *fakeSource) Dashboard(_ context.Context, filter models.ActividadFilter) (*dto.DashboardResponse, error) {
	f.dashFilters = append(f.dashFilters, filter)
	resp := service.Rollup(f.rows, models.NewDate(2024, time.May, 15))
	resp.Fuente = service.FuenteVista
	return resp, nil
}

func strPtr(s string) *string { return &s }

func fixtureRows() []models.ActividadResumen {
	row := func(id int64, curso, monitor string, total, confirmados int) models.ActividadResumen {
		var r models.ActividadResumen
		r.ID = id
		r.Fecha = models.NewDate(2024, time.May, 13)
		r.TurnoNombre = "Mañana"
		r.CursoNombre = curso
		r.MonitorNombre = strPtr(monitor)
		r.TotalAgentes = total
		r.AsistenciaConfirmada = confirmados
		r.AsistenciaPorcentaje = service.Porcentaje(confirmados, total)
		r.DiaSemana = "Lunes"
		r.Estado = models.EstadoCompletada
		return r
	}
	return []models.ActividadResumen{
		row(1, "Tiro", "Ana Gil", 4, 3),
		row(2, "Conducción", "Luis Mora", 2, 0),
	}
}

func newTestPanel(t *testing.T, src *fakeSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h, err := New(src, Config{Prefix: "/panel", SessionSecret: "test-secret", DataSource: "local"}, nil)
	require.NoError(t, err)
	h.now = func() time.Time { return time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC) }
	r := gin.New()
	h.Register(r)
	return r
}

func doRequest(r http.Handler, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHighlightEscapesAndMarks(t *testing.T) {
	assert.Equal(t, "Juan <mark>Pér</mark>ez", string(Highlight("Juan Pérez", "pér")))
	assert.Equal(t, "&lt;b&gt; <mark>gil</mark> <mark>GIL</mark>", string(Highlight("<b> gil GIL", "gil")))
	assert.Equal(t, "a &amp; b", string(Highlight("a & b", "  ")))
}

// liveMatch mirrors the layout script: a row stays visible when one field of
// its key contains the query.
func liveMatch(key, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range strings.Split(key, searchFieldSep) {
		if strings.Contains(field, query) {
			return true
		}
	}
	return false
}

func TestLiveSearchKeyAgreesWithServerFilter(t *testing.T) {
	agentes := []models.Agente{
		{NIP: "S0001", Nombre: "Ana", Apellido1: "Gil"},
		{NIP: "S0002", Nombre: "Ángel", Apellido1: "Ruiz"},
	}
	for _, q := range []string{"s0001 ana", "ana", "S000", "ángel r", "gil", "1 ana"} {
		rows := agenteRows(agentes, q)
		for _, row := range rows {
			assert.Equal(t, !row.Hidden, liveMatch(row.Search, q), "agente %s query %q", row.NIP, q)
		}
	}

	for _, q := range []string{"2 conducción", "conducción", "luis", "tiro luis"} {
		for _, row := range actividadRows(fixtureRows(), q) {
			assert.Equal(t, !row.Hidden, liveMatch(row.Search, q), "actividad %d query %q", row.ID, q)
		}
	}
}

func TestChartsRenderSVG(t *testing.T) {
	empty := string(BarChart("Vacío", nil))
	assert.Contains(t, empty, "Sin datos")

	bar := string(BarChart("Por curso", []Point{{Label: "Tiro <1>", Value: 2}, {Label: "Conducción", Value: 1}}))
	assert.True(t, strings.HasPrefix(bar, "<svg"))
	assert.Equal(t, 2, strings.Count(bar, `<rect class="bar"`))
	assert.Contains(t, bar, "Tiro &lt;1&gt;")

	line := string(LineChart("Por día", []Point{{Label: "Lunes", Value: 80}, {Label: "Martes", Value: 20}}))
	assert.Contains(t, line, "<polyline")
	assert.Contains(t, line, "Lunes")
}

func TestDashboardSearchHighlightsAndRecomputesMetrics(t *testing.T) {
	src := &fakeSource{rows: fixtureRows()}
	r := newTestPanel(t, src)

	w := doRequest(r, http.MethodGet, "/panel/dashboard?tab=listado&q=tiro", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "<mark>Tiro</mark>")
	assert.Contains(t, body, "data-search=\"2\nconducción\nluis mora\" hidden")
	// Metrics follow the searched subset: one activity, 4 assigned.
	assert.Contains(t, body, "Total actividades<strong>1</strong>")
	assert.Contains(t, body, "Agentes asignados<strong>4</strong>")
	assert.Contains(t, body, "75.00%")

	require.Len(t, src.dashFilters, 1)
	assert.Empty(t, src.dashFilters[0].Search)
}

func TestDashboardWarnsOnBadDate(t *testing.T) {
	src := &fakeSource{rows: fixtureRows()}
	r := newTestPanel(t, src)

	w := doRequest(r, http.MethodGet, "/panel/dashboard?desde=ayer&hasta=2024-05-31", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fecha &#39;desde&#39; no válida")
	require.Len(t, src.dashFilters, 1)
	assert.Nil(t, src.dashFilters[0].Desde)
	require.NotNil(t, src.dashFilters[0].Hasta)
	assert.Equal(t, "2024-05-31", src.dashFilters[0].Hasta.String())
}

func TestAgentesPageDegradesWhenSourceUnreachable(t *testing.T) {
	src := &fakeSource{agentesErr: &client.Error{Detail: "connection refused"}}
	r := newTestPanel(t, src)

	w := doRequest(r, http.MethodGet, "/panel/agentes", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No se pudieron cargar los agentes: remote service unavailable")
	assert.Contains(t, w.Body.String(), "No hay agentes.")
}

func TestAgentesFiltersAreRemembered(t *testing.T) {
	src := &fakeSource{}
	r := newTestPanel(t, src)

	first := doRequest(r, http.MethodGet, "/panel/agentes?seccion=Seguridad&activo=true", nil, nil)
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	second := doRequest(r, http.MethodGet, "/panel/agentes", nil, cookies)
	require.Equal(t, http.StatusOK, second.Code)
	require.Len(t, src.agenteFilters, 2)
	assert.Equal(t, "Seguridad", src.agenteFilters[1].Seccion)
	require.NotNil(t, src.agenteFilters[1].Activo)
	assert.True(t, *src.agenteFilters[1].Activo)

	doRequest(r, http.MethodGet, "/panel/agentes?reset=1", nil, cookies)
	require.Len(t, src.agenteFilters, 3)
	assert.Empty(t, src.agenteFilters[2].Seccion)
	assert.Nil(t, src.agenteFilters[2].Activo)
}

func TestWriteFailureIsFlashedOnNextPage(t *testing.T) {
	src := &fakeSource{writeResult: client.Result{Success: false, Message: "curso already exists", Status: http.StatusConflict}}
	r := newTestPanel(t, src)

	w := doRequest(r, http.MethodPost, "/panel/cursos", url.Values{"nombre": {"Tiro"}, "descripcion": {"Galería"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/panel/cursos", w.Header().Get("Location"))
	require.Len(t, src.created, 1)
	assert.Equal(t, "Tiro", src.created[0].Nombre)

	next := doRequest(r, http.MethodGet, "/panel/cursos", nil, w.Result().Cookies())
	assert.Contains(t, next.Body.String(), `<div class="flash error">curso already exists</div>`)

	// Flashes are shown once.
	again := doRequest(r, http.MethodGet, "/panel/cursos", nil, next.Result().Cookies())
	assert.NotContains(t, again.Body.String(), "curso already exists")
}

func TestAsistenciaFormMapsTriState(t *testing.T) {
	src := &fakeSource{writeResult: client.Result{Success: true}}
	r := newTestPanel(t, src)

	for _, value := range []string{"1", "0", ""} {
		w := doRequest(r, http.MethodPost, "/panel/actividades/1/agentes/N001/asistencia", url.Values{"asistencia": {value}}, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/panel/actividades/1", w.Header().Get("Location"))
	}

	require.Len(t, src.asistencias, 3)
	require.NotNil(t, src.asistencias[0])
	assert.True(t, *src.asistencias[0])
	require.NotNil(t, src.asistencias[1])
	assert.False(t, *src.asistencias[1])
	assert.Nil(t, src.asistencias[2])
}

func TestUpdateAgenteSendsEveryField(t *testing.T) {
	src := &fakeSource{writeResult: client.Result{Success: true}}
	r := newTestPanel(t, src)

	form := url.Values{"nombre": {"Ana"}, "apellido1": {"Gil"}, "apellido2": {""}, "seccion": {"Atestados"}, "grupo": {"G-2"}, "activo": {"true"}}
	w := doRequest(r, http.MethodPost, "/panel/agentes/N001", form, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/panel/agentes", w.Header().Get("Location"))

	require.Len(t, src.patches, 1)
	p := src.patches[0]
	assert.Equal(t, "", *p.Apellido2)
	assert.Equal(t, "Atestados", *p.Seccion)
	assert.True(t, *p.Activo)
	assert.False(t, *p.EsMonitor)
}

func TestBadIDRedirectsWithFlash(t *testing.T) {
	r := newTestPanel(t, &fakeSource{})

	w := doRequest(r, http.MethodGet, "/panel/actividades/abc", nil, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/panel/actividades", w.Header().Get("Location"))
}

func TestRootRedirectsToDashboard(t *testing.T) {
	r := newTestPanel(t, &fakeSource{})

	w := doRequest(r, http.MethodGet, "/panel/", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/panel/dashboard", w.Header().Get("Location"))
}
