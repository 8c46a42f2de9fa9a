package dto

import "github.com/noah-isme/agentes-admin/internal/models"

// DashboardResponse captures the aggregated activity dashboard payload.
type DashboardResponse struct {
	Metricas    DashboardMetricas         `json:"metricas"`
	PorCurso    []ActividadesPorCurso     `json:"por_curso"`
	PorDia      []AsistenciaPorDia        `json:"por_dia"`
	PorEstado   []ActividadesPorEstado    `json:"por_estado"`
	Actividades []models.ActividadResumen `json:"actividades"`
	Fuente      string                    `json:"fuente"`
}

// DashboardMetricas holds the headline figures.
type DashboardMetricas struct {
	TotalActividades  int     `json:"total_actividades"`
	TotalAsignados    int     `json:"total_asignados"`
	TotalConfirmados  int     `json:"total_confirmados"`
	PorcentajeGlobal  float64 `json:"porcentaje_global"`
	ActividadesHoy    int     `json:"actividades_hoy"`
	ActividadesFutura int     `json:"actividades_pendientes"`
}

// ActividadesPorCurso counts activities per course.
type ActividadesPorCurso struct {
	Curso    string `json:"curso"`
	Cantidad int    `json:"cantidad"`
}

// AsistenciaPorDia sums attendance per weekday.
type AsistenciaPorDia struct {
	DiaSemana   string  `json:"dia_semana"`
	Total       int     `json:"total"`
	Confirmados int     `json:"confirmados"`
	Porcentaje  float64 `json:"porcentaje"`
}

// ActividadesPorEstado counts activities per derived state.
type ActividadesPorEstado struct {
	Estado   string `json:"estado"`
	Cantidad int    `json:"cantidad"`
}

// ResumenResponse is the aggregated activity listing.
type ResumenResponse struct {
	Actividades []models.ActividadResumen `json:"actividades"`
	Fuente      string                    `json:"fuente"`
}
