package web

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/service"
)

// Fixed option lists offered by the agente forms.
var (
	Secciones = []string{"Seguridad", "Atestados"}
	Grupos    = []string{"G-1", "G-2"}
	Estados   = []string{models.EstadoCompletada, models.EstadoEnCurso, models.EstadoPendiente}
)

type actividadRow struct {
	models.ActividadResumen
	Search string
	Hidden bool
}

type agenteRow struct {
	models.Agente
	Search string
	Hidden bool
}

func parseFilter(q url.Values) (models.ActividadFilter, []string) {
	filter := models.ActividadFilter{
		Curso:  q.Get("curso"),
		Turno:  q.Get("turno"),
		Estado: q.Get("estado"),
		Search: strings.TrimSpace(q.Get("q")),
	}
	var warnings []string
	for name, dst := range map[string]**models.Date{"desde": &filter.Desde, "hasta": &filter.Hasta} {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			warnings = append(warnings, "Fecha '"+name+"' no válida, se ignora")
			continue
		}
		*dst = &d
	}
	sort.Strings(warnings)
	return filter, warnings
}

func actividadRows(rows []models.ActividadResumen, search string) []actividadRow {
	visible := map[int64]bool{}
	for _, r := range service.FiltrarActividades(rows, models.ActividadFilter{Search: search}) {
		visible[r.ID] = true
	}
	out := make([]actividadRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, actividadRow{
			ActividadResumen: r,
			Search:           searchKey(strconv.FormatInt(r.ID, 10), r.CursoNombre, models.TextOrEmpty(r.MonitorNombre)),
			Hidden:           !visible[r.ID],
		})
	}
	return out
}

func agenteRows(rows []models.Agente, search string) []agenteRow {
	visible := map[string]bool{}
	for _, a := range service.FiltrarAgentes(rows, models.AgenteFilter{Search: search}) {
		visible[a.NIP] = true
	}
	out := make([]agenteRow, 0, len(rows))
	for _, a := range rows {
		out = append(out, agenteRow{
			Agente: a,
			Search: searchKey(a.NIP, models.JoinNombre(a.Nombre, a.Apellido1, a.Apellido2)),
			Hidden: !visible[a.NIP],
		})
	}
	return out
}

func (h *Handler) catalogue(c *gin.Context, v *view) {
	ctx := c.Request.Context()
	cursos, err := h.source.ListCursos(ctx)
	h.degrade(v, "los cursos", err)
	turnos, err := h.source.ListTurnos(ctx)
	h.degrade(v, "los turnos", err)
	v.Data["Cursos"] = cursos
	v.Data["Turnos"] = turnos
	v.Data["Estados"] = Estados
}

// Dashboard renders the metrics, charts and activity listing.
func (h *Handler) Dashboard(c *gin.Context) {
	sess := h.session(c)
	q := h.pageQuery(c, sess, "dashboard")
	filter, warnings := parseFilter(q)
	v := newView()
	v.Warnings = append(v.Warnings, warnings...)

	search := filter.Search
	filter.Search = ""
	resp, err := h.source.Dashboard(c.Request.Context(), filter)
	h.degrade(v, "las actividades", err)
	if resp == nil {
		resp = service.Rollup(nil, h.today())
	}
	summary := resp
	if search != "" {
		summary = service.Rollup(service.FiltrarActividades(resp.Actividades, models.ActividadFilter{Search: search}), h.today())
	}

	porCurso := make([]Point, 0, len(summary.PorCurso))
	for _, p := range summary.PorCurso {
		porCurso = append(porCurso, Point{Label: p.Curso, Value: float64(p.Cantidad)})
	}
	porDia := make([]Point, 0, len(summary.PorDia))
	for _, p := range summary.PorDia {
		porDia = append(porDia, Point{Label: p.DiaSemana, Value: p.Porcentaje})
	}
	porEstado := make([]Point, 0, len(summary.PorEstado))
	for _, p := range summary.PorEstado {
		porEstado = append(porEstado, Point{Label: p.Estado, Value: float64(p.Cantidad)})
	}

	tab := q.Get("tab")
	if tab != "listado" {
		tab = "graficos"
	}
	tabLink := func(name string) string {
		link := url.Values{}
		for k, vs := range q {
			link[k] = vs
		}
		link.Set("tab", name)
		return h.prefix + "/dashboard?" + link.Encode()
	}

	h.catalogue(c, v)
	v.Data["Filter"] = q
	v.Data["Search"] = search
	v.Data["Tab"] = tab
	v.Data["TabGraficos"] = tabLink("graficos")
	v.Data["TabListado"] = tabLink("listado")
	v.Data["Metricas"] = summary.Metricas
	v.Data["Fuente"] = resp.Fuente
	v.Data["ChartCurso"] = BarChart("Actividades por curso", porCurso)
	v.Data["ChartDia"] = LineChart("Asistencia por día de la semana", porDia)
	v.Data["ChartEstado"] = BarChart("Distribución de estados", porEstado)
	v.Data["Rows"] = actividadRows(resp.Actividades, search)
	h.render(c, "dashboard", "Panel", v)
}

// Agentes renders the agente listing with its filters and the create form.
func (h *Handler) Agentes(c *gin.Context) {
	sess := h.session(c)
	q := h.pageQuery(c, sess, "agentes")
	v := newView()

	filter := models.AgenteFilter{Seccion: q.Get("seccion"), Grupo: q.Get("grupo")}
	switch q.Get("activo") {
	case "true":
		b := true
		filter.Activo = &b
	case "false":
		b := false
		filter.Activo = &b
	}
	agentes, err := h.source.ListAgentes(c.Request.Context(), filter)
	h.degrade(v, "los agentes", err)

	search := strings.TrimSpace(q.Get("q"))
	v.Data["Filter"] = q
	v.Data["Search"] = search
	v.Data["Rows"] = agenteRows(agentes, search)
	v.Data["Secciones"] = Secciones
	v.Data["Grupos"] = Grupos
	h.render(c, "agentes", "Agentes", v)
}

// CreateAgente handles the create form.
func (h *Handler) CreateAgente(c *gin.Context) {
	var req dto.CreateAgenteRequest
	if err := c.ShouldBind(&req); err != nil {
		h.addFlash(c, flashError, "Formulario no válido")
		c.Redirect(http.StatusSeeOther, h.prefix+"/agentes")
		return
	}
	activo := c.PostForm("activo") == "true"
	req.Activo = &activo
	res := h.source.CreateAgente(c.Request.Context(), req)
	h.finish(c, res, "Agente "+strings.TrimSpace(req.NIP)+" creado", "/agentes")
}

// EditAgente renders the edit form of one agente.
func (h *Handler) EditAgente(c *gin.Context) {
	v := newView()
	agente, err := h.source.GetAgente(c.Request.Context(), c.Param("nip"))
	if err != nil {
		h.addFlash(c, flashError, "Agente no encontrado")
		c.Redirect(http.StatusSeeOther, h.prefix+"/agentes")
		return
	}
	v.Data["Agente"] = agente
	v.Data["Secciones"] = Secciones
	v.Data["Grupos"] = Grupos
	h.render(c, "agente_form", "Editar agente", v)
}

// UpdateAgente handles the edit form. Every field is submitted, so every
// field is patched.
func (h *Handler) UpdateAgente(c *gin.Context) {
	nombre := c.PostForm("nombre")
	apellido1 := c.PostForm("apellido1")
	apellido2 := c.PostForm("apellido2")
	seccion := c.PostForm("seccion")
	grupo := c.PostForm("grupo")
	activo := c.PostForm("activo") == "true"
	monitor := c.PostForm("monitor") == "true"
	patch := models.AgentePatch{
		Nombre: &nombre, Apellido1: &apellido1, Apellido2: &apellido2,
		Seccion: &seccion, Grupo: &grupo, Activo: &activo, EsMonitor: &monitor,
	}
	nip := c.Param("nip")
	res := h.source.UpdateAgente(c.Request.Context(), nip, patch)
	if !res.Success {
		h.finish(c, res, "", "/agentes/"+url.PathEscape(nip)+"/editar")
		return
	}
	h.finish(c, res, "Agente "+nip+" actualizado", "/agentes")
}

// DeleteAgente removes an agente with its assignments.
func (h *Handler) DeleteAgente(c *gin.Context) {
	nip := c.Param("nip")
	h.finish(c, h.source.DeleteAgente(c.Request.Context(), nip), "Agente "+nip+" eliminado", "/agentes")
}

// Monitores renders the monitor list and the promote form.
func (h *Handler) Monitores(c *gin.Context) {
	v := newView()
	ctx := c.Request.Context()
	monitores, err := h.source.ListMonitores(ctx)
	h.degrade(v, "los monitores", err)

	activo, noMonitor := true, false
	candidatos, err := h.source.ListAgentes(ctx, models.AgenteFilter{Activo: &activo, Monitor: &noMonitor})
	h.degrade(v, "los agentes", err)

	v.Data["Monitores"] = monitores
	v.Data["Candidatos"] = candidatos
	h.render(c, "monitores", "Monitores", v)
}

// PromoteMonitor marks the posted agente as monitor.
func (h *Handler) PromoteMonitor(c *gin.Context) {
	nip := strings.TrimSpace(c.PostForm("nip"))
	if nip == "" {
		h.addFlash(c, flashError, "Selecciona un agente")
		c.Redirect(http.StatusSeeOther, h.prefix+"/monitores")
		return
	}
	h.finish(c, h.source.SetMonitor(c.Request.Context(), nip, true), "Agente "+nip+" es ahora monitor", "/monitores")
}

// DemoteMonitor clears the monitor flag.
func (h *Handler) DemoteMonitor(c *gin.Context) {
	nip := c.Param("nip")
	h.finish(c, h.source.SetMonitor(c.Request.Context(), nip, false), "Agente "+nip+" ya no es monitor", "/monitores")
}

// Cursos renders the course list with add and edit forms.
func (h *Handler) Cursos(c *gin.Context) {
	v := newView()
	cursos, err := h.source.ListCursos(c.Request.Context())
	h.degrade(v, "los cursos", err)
	v.Data["Cursos"] = cursos
	h.render(c, "cursos", "Cursos", v)
}

// CreateCurso handles the add form.
func (h *Handler) CreateCurso(c *gin.Context) {
	var req dto.CreateCursoRequest
	if err := c.ShouldBind(&req); err != nil {
		h.addFlash(c, flashError, "Formulario no válido")
		c.Redirect(http.StatusSeeOther, h.prefix+"/cursos")
		return
	}
	h.finish(c, h.source.CreateCurso(c.Request.Context(), req), "Curso añadido", "/cursos")
}

// UpdateCurso handles the inline edit form.
func (h *Handler) UpdateCurso(c *gin.Context) {
	id, ok := h.formID(c, "/cursos")
	if !ok {
		return
	}
	nombre := c.PostForm("nombre")
	descripcion := c.PostForm("descripcion")
	res := h.source.UpdateCurso(c.Request.Context(), id, models.CursoPatch{Nombre: &nombre, Descripcion: &descripcion})
	h.finish(c, res, "Curso actualizado", "/cursos")
}

// DeleteCurso removes an unused course.
func (h *Handler) DeleteCurso(c *gin.Context) {
	id, ok := h.formID(c, "/cursos")
	if !ok {
		return
	}
	h.finish(c, h.source.DeleteCurso(c.Request.Context(), id), "Curso eliminado", "/cursos")
}

// Actividades renders the filtered activity listing and the create form.
func (h *Handler) Actividades(c *gin.Context) {
	sess := h.session(c)
	q := h.pageQuery(c, sess, "actividades")
	filter, warnings := parseFilter(q)
	v := newView()
	v.Warnings = append(v.Warnings, warnings...)

	search := filter.Search
	filter.Search = ""
	var rows []models.ActividadResumen
	resp, err := h.source.Dashboard(c.Request.Context(), filter)
	h.degrade(v, "las actividades", err)
	if resp != nil {
		rows = resp.Actividades
	}
	monitores, err := h.source.ListMonitores(c.Request.Context())
	h.degrade(v, "los monitores", err)

	h.catalogue(c, v)
	v.Data["Filter"] = q
	v.Data["Search"] = search
	v.Data["Rows"] = actividadRows(rows, search)
	v.Data["Monitores"] = monitores
	v.Data["Hoy"] = h.today().String()
	h.render(c, "actividades", "Actividades", v)
}

// CreateActividad handles the create form.
func (h *Handler) CreateActividad(c *gin.Context) {
	var req dto.CreateActividadRequest
	if err := c.ShouldBind(&req); err != nil {
		h.addFlash(c, flashError, "Formulario no válido")
		c.Redirect(http.StatusSeeOther, h.prefix+"/actividades")
		return
	}
	h.finish(c, h.source.CreateActividad(c.Request.Context(), req), "Actividad creada", "/actividades")
}

// Actividad renders one activity with its assigned agentes.
func (h *Handler) Actividad(c *gin.Context) {
	id, ok := h.formID(c, "/actividades")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	actividad, err := h.source.GetActividad(ctx, id)
	if err != nil {
		h.addFlash(c, flashError, "Actividad no encontrada")
		c.Redirect(http.StatusSeeOther, h.prefix+"/actividades")
		return
	}
	v := newView()
	asignados, err := h.source.AgentesPorActividad(ctx, id)
	h.degrade(v, "los agentes asignados", err)

	activo := true
	agentes, err := h.source.ListAgentes(ctx, models.AgenteFilter{Activo: &activo})
	h.degrade(v, "los agentes", err)
	assigned := make(map[string]bool, len(asignados))
	for _, a := range asignados {
		assigned[a.NIP] = true
	}
	disponibles := make([]models.Agente, 0, len(agentes))
	for _, a := range agentes {
		if !assigned[a.NIP] {
			disponibles = append(disponibles, a)
		}
	}
	monitores, err := h.source.ListMonitores(ctx)
	h.degrade(v, "los monitores", err)

	counts := map[string]int{}
	for _, a := range asignados {
		counts[models.EstadoAsistencia(a.Asistencia)]++
	}

	h.catalogue(c, v)
	v.Data["Actividad"] = actividad
	v.Data["Estado"] = service.EstadoActividad(actividad.Fecha, h.today())
	v.Data["Asignados"] = asignados
	v.Data["Disponibles"] = disponibles
	v.Data["Monitores"] = monitores
	v.Data["Confirmados"] = counts[models.AsistenciaConfirmada]
	v.Data["Porcentaje"] = service.Porcentaje(counts[models.AsistenciaConfirmada], len(asignados))
	h.render(c, "actividad", "Actividad "+strconv.FormatInt(id, 10), v)
}

// UpdateActividad handles the edit form.
func (h *Handler) UpdateActividad(c *gin.Context) {
	id, ok := h.formID(c, "/actividades")
	if !ok {
		return
	}
	back := "/actividades/" + strconv.FormatInt(id, 10)
	var patch models.ActividadPatch
	if raw := strings.TrimSpace(c.PostForm("fecha")); raw != "" {
		fecha, err := models.ParseDate(raw)
		if err != nil {
			h.addFlash(c, flashError, "Fecha no válida")
			c.Redirect(http.StatusSeeOther, h.prefix+back)
			return
		}
		patch.Fecha = &fecha
	}
	if v, err := strconv.ParseInt(c.PostForm("turno_id"), 10, 64); err == nil {
		patch.TurnoID = &v
	}
	if v, err := strconv.ParseInt(c.PostForm("curso_id"), 10, 64); err == nil {
		patch.CursoID = &v
	}
	if _, ok := c.GetPostForm("monitor_nip"); ok {
		monitor := c.PostForm("monitor_nip")
		patch.MonitorNIP = &monitor
	}
	if _, ok := c.GetPostForm("notas"); ok {
		notas := c.PostForm("notas")
		patch.Notas = &notas
	}
	h.finish(c, h.source.UpdateActividad(c.Request.Context(), id, patch), "Actividad actualizada", back)
}

// DeleteActividad removes an activity and its assignments.
func (h *Handler) DeleteActividad(c *gin.Context) {
	id, ok := h.formID(c, "/actividades")
	if !ok {
		return
	}
	h.finish(c, h.source.DeleteActividad(c.Request.Context(), id), "Actividad eliminada", "/actividades")
}

// AsignarAgente handles the assign form.
func (h *Handler) AsignarAgente(c *gin.Context) {
	id, ok := h.formID(c, "/actividades")
	if !ok {
		return
	}
	nip := strings.TrimSpace(c.PostForm("nip"))
	back := "/actividades/" + strconv.FormatInt(id, 10)
	if nip == "" {
		h.addFlash(c, flashError, "Selecciona un agente")
		c.Redirect(http.StatusSeeOther, h.prefix+back)
		return
	}
	h.finish(c, h.source.AsignarAgente(c.Request.Context(), id, nip), "Agente "+nip+" asignado", back)
}

// DesasignarAgente removes an agente from the activity.
func (h *Handler) DesasignarAgente(c *gin.Context) {
	id, ok := h.formID(c, "/actividades")
	if !ok {
		return
	}
	nip := c.Param("nip")
	h.finish(c, h.source.DesasignarAgente(c.Request.Context(), id, nip), "Agente "+nip+" quitado", "/actividades/"+strconv.FormatInt(id, 10))
}

// Asistencia records an attendance outcome: "1", "0" or "" for pending.
func (h *Handler) Asistencia(c *gin.Context) {
	id, ok := h.formID(c, "/actividades")
	if !ok {
		return
	}
	var flag *bool
	switch c.PostForm("asistencia") {
	case "1":
		v := true
		flag = &v
	case "0":
		v := false
		flag = &v
	}
	nip := c.Param("nip")
	h.finish(c, h.source.ActualizarAsistencia(c.Request.Context(), nip, id, flag), "Asistencia actualizada", "/actividades/"+strconv.FormatInt(id, 10))
}

func (h *Handler) formID(c *gin.Context, back string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.addFlash(c, flashError, "Identificador no válido")
		c.Redirect(http.StatusSeeOther, h.prefix+back)
		return 0, false
	}
	return id, true
}
