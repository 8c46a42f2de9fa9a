package service

import (
	"math"
	"time"

	"github.com/noah-isme/agentes-admin/internal/models"
)

var diasSemana = [...]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// DiasSemanaOrden lists weekday names Monday first.
var DiasSemanaOrden = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

var meses = [...]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// DiaSemana returns the Spanish weekday name of d.
func DiaSemana(d models.Date) string {
	return diasSemana[d.Weekday()]
}

// EstadoActividad classifies an activity date against today.
func EstadoActividad(fecha, today models.Date) string {
	switch fecha.Compare(today) {
	case -1:
		return models.EstadoCompletada
	case 0:
		return models.EstadoEnCurso
	default:
		return models.EstadoPendiente
	}
}

// Porcentaje returns confirmed/total*100 rounded to two decimals, and 0 when
// nothing was assigned.
func Porcentaje(confirmadas, total int) float64 {
	if total <= 0 || confirmadas <= 0 {
		return 0
	}
	if confirmadas >= total {
		return 100
	}
	return math.Round(float64(confirmadas)*10000/float64(total)) / 100
}

// ContarAsistencias counts the attendance links of every activity in
// detalles. Links pointing at unknown activities are ignored.
func ContarAsistencias(detalles []models.ActividadDetalle, links []models.AgenteActividad) []models.ActividadConteo {
	index := make(map[int64]int, len(detalles))
	conteos := make([]models.ActividadConteo, len(detalles))
	for i, d := range detalles {
		conteos[i] = models.ActividadConteo{ActividadDetalle: d}
		index[d.ID] = i
	}

	for _, link := range links {
		i, ok := index[link.ActividadID]
		if !ok {
			continue
		}
		c := &conteos[i]
		c.TotalAgentes++
		switch {
		case link.Asistencia == nil:
			c.AsistenciaPendiente++
		case *link.Asistencia:
			c.AsistenciaConfirmada++
		default:
			c.AsistenciaNoConfirmada++
		}
	}

	return conteos
}

// ResumirActividades derives the read-time fields for every counted
// activity. Both aggregation strategies end here.
func ResumirActividades(conteos []models.ActividadConteo, today models.Date) []models.ActividadResumen {
	resumen := make([]models.ActividadResumen, 0, len(conteos))
	for _, c := range conteos {
		_, week := c.Fecha.ISOWeek()
		resumen = append(resumen, models.ActividadResumen{
			ActividadConteo:      c,
			AsistenciaPorcentaje: Porcentaje(c.AsistenciaConfirmada, c.TotalAgentes),
			DiaSemana:            DiaSemana(c.Fecha),
			Mes:                  meses[c.Fecha.Month()],
			Anio:                 c.Fecha.Year(),
			SemanaDelAnio:        week,
			Estado:               EstadoActividad(c.Fecha, today),
		})
	}
	return resumen
}
