package service

import (
	"strconv"
	"strings"

	"github.com/noah-isme/agentes-admin/internal/models"
)

// FiltrarActividades keeps the rows matching every active dimension of f.
// Text comparisons ignore case.
func FiltrarActividades(rows []models.ActividadResumen, f models.ActividadFilter) []models.ActividadResumen {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.ActividadResumen, 0, len(rows))
	for _, row := range rows {
		if f.Desde != nil && !f.Desde.IsZero() && row.Fecha.Compare(*f.Desde) < 0 {
			continue
		}
		if f.Hasta != nil && !f.Hasta.IsZero() && row.Fecha.Compare(*f.Hasta) > 0 {
			continue
		}
		if !models.IsAll(f.Curso) && !matchesNameOrID(f.Curso, row.CursoNombre, row.CursoID) {
			continue
		}
		if !models.IsAll(f.Turno) && !matchesNameOrID(f.Turno, row.TurnoNombre, row.TurnoID) {
			continue
		}
		if !models.IsAll(f.Estado) && !strings.EqualFold(strings.TrimSpace(f.Estado), row.Estado) {
			continue
		}
		if search != "" && !actividadContains(row, search) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// FiltrarAgentes keeps the agentes matching every active dimension of f.
func FiltrarAgentes(rows []models.Agente, f models.AgenteFilter) []models.Agente {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Agente, 0, len(rows))
	for _, row := range rows {
		if !models.IsAll(f.Seccion) && !strings.EqualFold(strings.TrimSpace(f.Seccion), models.TextOrEmpty(row.Seccion)) {
			continue
		}
		if !models.IsAll(f.Grupo) && !strings.EqualFold(strings.TrimSpace(f.Grupo), models.TextOrEmpty(row.Grupo)) {
			continue
		}
		if f.Activo != nil && row.Activo != *f.Activo {
			continue
		}
		if f.Monitor != nil && row.EsMonitor != *f.Monitor {
			continue
		}
		if search != "" {
			nombre := models.JoinNombre(row.Nombre, row.Apellido1, row.Apellido2)
			if !strings.Contains(strings.ToLower(row.NIP), search) && !strings.Contains(strings.ToLower(nombre), search) {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}

func matchesNameOrID(want, name string, id int64) bool {
	want = strings.TrimSpace(want)
	return strings.EqualFold(want, name) || want == strconv.FormatInt(id, 10)
}

func actividadContains(row models.ActividadResumen, search string) bool {
	if strings.Contains(strconv.FormatInt(row.ID, 10), search) {
		return true
	}
	if strings.Contains(strings.ToLower(row.CursoNombre), search) {
		return true
	}
	return strings.Contains(strings.ToLower(models.TextOrEmpty(row.MonitorNombre)), search)
}
