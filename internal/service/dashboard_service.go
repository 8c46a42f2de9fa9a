package service

import (
	"context"
	"sort"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
)

type resumenProvider interface {
	Filtrado(ctx context.Context, filter models.ActividadFilter) ([]models.ActividadResumen, string, error)
	Today() models.Date
}

// DashboardService derives the dashboard rollups from the filtered summary.
type DashboardService struct {
	resumen resumenProvider
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(resumen resumenProvider) *DashboardService {
	return &DashboardService{resumen: resumen}
}

// Build returns metrics, per-course, per-weekday and per-state rollups and
// the listing sorted by date descending.
func (s *DashboardService) Build(ctx context.Context, filter models.ActividadFilter) (*dto.DashboardResponse, error) {
	rows, fuente, err := s.resumen.Filtrado(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := Rollup(rows, s.resumen.Today())
	resp.Fuente = fuente
	return resp, nil
}

// Rollup computes the dashboard sections for rows.
func Rollup(rows []models.ActividadResumen, today models.Date) *dto.DashboardResponse {
	resp := &dto.DashboardResponse{
		PorCurso:    []dto.ActividadesPorCurso{},
		PorDia:      []dto.AsistenciaPorDia{},
		PorEstado:   []dto.ActividadesPorEstado{},
		Actividades: make([]models.ActividadResumen, len(rows)),
	}
	copy(resp.Actividades, rows)
	sort.SliceStable(resp.Actividades, func(i, j int) bool {
		a, b := resp.Actividades[i], resp.Actividades[j]
		if c := a.Fecha.Compare(b.Fecha); c != 0 {
			return c > 0
		}
		return a.ID > b.ID
	})

	cursos := map[string]int{}
	type daySum struct{ total, confirmados int }
	dias := map[string]*daySum{}
	estados := map[string]int{}

	for _, row := range rows {
		resp.Metricas.TotalActividades++
		resp.Metricas.TotalAsignados += row.TotalAgentes
		resp.Metricas.TotalConfirmados += row.AsistenciaConfirmada
		switch row.Fecha.Compare(today) {
		case 0:
			resp.Metricas.ActividadesHoy++
		case 1:
			resp.Metricas.ActividadesFutura++
		}

		cursos[row.CursoNombre]++
		estados[row.Estado]++

		d, ok := dias[row.DiaSemana]
		if !ok {
			d = &daySum{}
			dias[row.DiaSemana] = d
		}
		d.total += row.TotalAgentes
		d.confirmados += row.AsistenciaConfirmada
	}
	resp.Metricas.PorcentajeGlobal = Porcentaje(resp.Metricas.TotalConfirmados, resp.Metricas.TotalAsignados)

	for curso, n := range cursos {
		resp.PorCurso = append(resp.PorCurso, dto.ActividadesPorCurso{Curso: curso, Cantidad: n})
	}
	sort.Slice(resp.PorCurso, func(i, j int) bool {
		if resp.PorCurso[i].Cantidad != resp.PorCurso[j].Cantidad {
			return resp.PorCurso[i].Cantidad > resp.PorCurso[j].Cantidad
		}
		return resp.PorCurso[i].Curso < resp.PorCurso[j].Curso
	})

	for _, dia := range DiasSemanaOrden {
		d, ok := dias[dia]
		if !ok {
			continue
		}
		resp.PorDia = append(resp.PorDia, dto.AsistenciaPorDia{
			DiaSemana:   dia,
			Total:       d.total,
			Confirmados: d.confirmados,
			Porcentaje:  Porcentaje(d.confirmados, d.total),
		})
	}

	for _, estado := range []string{models.EstadoCompletada, models.EstadoEnCurso, models.EstadoPendiente} {
		resp.PorEstado = append(resp.PorEstado, dto.ActividadesPorEstado{Estado: estado, Cantidad: estados[estado]})
	}

	return resp
}
