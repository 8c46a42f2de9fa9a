package models

import "strings"

// Activity states derived from the date on every read.
const (
	EstadoCompletada = "Completada"
	EstadoEnCurso    = "En curso"
	EstadoPendiente  = "Pendiente"
)

// Actividad is a scheduled session of a course in a shift.
type Actividad struct {
	ID         int64   `db:"id" json:"id"`
	Fecha      Date    `db:"fecha" json:"fecha"`
	TurnoID    int64   `db:"turno_id" json:"turno_id"`
	MonitorNIP *string `db:"monitor_nip" json:"monitor_nip"`
	CursoID    int64   `db:"curso_id" json:"curso_id"`
	Notas      *string `db:"notas" json:"notas"`
}

// ActividadDetalle joins an activity with its shift, course and monitor names.
type ActividadDetalle struct {
	Actividad
	TurnoNombre   string  `db:"turno_nombre" json:"turno_nombre"`
	CursoNombre   string  `db:"curso_nombre" json:"curso_nombre"`
	MonitorNombre *string `db:"monitor_nombre" json:"monitor_nombre"`
}

// ActividadPatch carries a partial activity update. An empty MonitorNIP or
// Notas clears the column.
type ActividadPatch struct {
	Fecha      *Date   `json:"fecha"`
	TurnoID    *int64  `json:"turno_id" validate:"omitempty,gt=0"`
	MonitorNIP *string `json:"monitor_nip" validate:"omitempty,max=50"`
	CursoID    *int64  `json:"curso_id" validate:"omitempty,gt=0"`
	Notas      *string `json:"notas" validate:"omitempty,max=2000"`
}

// Empty reports whether the patch changes nothing.
func (p ActividadPatch) Empty() bool {
	return p.Fecha == nil && p.TurnoID == nil && p.MonitorNIP == nil && p.CursoID == nil && p.Notas == nil
}

// Apply copies the supplied fields onto a.
func (p ActividadPatch) Apply(a *Actividad) {
	if p.Fecha != nil {
		a.Fecha = *p.Fecha
	}
	if p.TurnoID != nil {
		a.TurnoID = *p.TurnoID
	}
	if p.MonitorNIP != nil {
		a.MonitorNIP = NullableText(*p.MonitorNIP)
	}
	if p.CursoID != nil {
		a.CursoID = *p.CursoID
	}
	if p.Notas != nil {
		a.Notas = NullableText(*p.Notas)
	}
}

// ActividadFilter narrows aggregated activity rows. Text dimensions treat
// "", "Todos", "Todas" and "all" as unset.
type ActividadFilter struct {
	Desde  *Date
	Hasta  *Date
	Curso  string
	Turno  string
	Estado string
	Search string
}

// IsAll reports whether a filter value selects every row.
func IsAll(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "todos", "todas", "all":
		return true
	}
	return false
}
