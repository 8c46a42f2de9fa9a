package models

// Attendance labels for the tri-state asistencia column.
const (
	AsistenciaConfirmada   = "confirmada"
	AsistenciaNoConfirmada = "no confirmada"
	AsistenciaPendiente    = "pendiente"
)

// AgenteActividad links an agente to an activity. A nil Asistencia means the
// outcome is still pending.
type AgenteActividad struct {
	AgenteNIP   string `db:"agente_nip" json:"agente_nip"`
	ActividadID int64  `db:"actividad_id" json:"actividad_id"`
	Asistencia  *bool  `db:"asistencia" json:"asistencia"`
}

// AgenteAsignado is an agente row as listed under an activity.
type AgenteAsignado struct {
	Agente
	Asistencia *bool  `db:"asistencia" json:"asistencia"`
	Estado     string `db:"-" json:"estado_asistencia"`
}

// EstadoAsistencia maps the nullable flag onto its label.
func EstadoAsistencia(v *bool) string {
	switch {
	case v == nil:
		return AsistenciaPendiente
	case *v:
		return AsistenciaConfirmada
	default:
		return AsistenciaNoConfirmada
	}
}
