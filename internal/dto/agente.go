package dto

// CreateAgenteRequest is the payload for registering an agente.
type CreateAgenteRequest struct {
	NIP       string `json:"nip" form:"nip" validate:"required,max=50"`
	Nombre    string `json:"nombre" form:"nombre" validate:"required,max=100"`
	Apellido1 string `json:"apellido1" form:"apellido1" validate:"required,max=100"`
	Apellido2 string `json:"apellido2" form:"apellido2" validate:"max=100"`
	Seccion   string `json:"seccion" form:"seccion" validate:"max=100"`
	Grupo     string `json:"grupo" form:"grupo" validate:"max=100"`
	Activo    *bool  `json:"activo" form:"activo"`
	Monitor   bool   `json:"monitor" form:"monitor"`
}

// CreateCursoRequest is the payload for adding a course.
type CreateCursoRequest struct {
	Nombre      string `json:"nombre" form:"nombre" validate:"required,max=150"`
	Descripcion string `json:"descripcion" form:"descripcion" validate:"max=1000"`
}

// CreateActividadRequest is the payload for scheduling an activity. Fecha
// uses the "2006-01-02" layout.
type CreateActividadRequest struct {
	Fecha      string `json:"fecha" form:"fecha" validate:"required"`
	TurnoID    int64  `json:"turno_id" form:"turno_id" validate:"required,gt=0"`
	CursoID    int64  `json:"curso_id" form:"curso_id" validate:"required,gt=0"`
	MonitorNIP string `json:"monitor_nip" form:"monitor_nip" validate:"max=50"`
	Notas      string `json:"notas" form:"notas" validate:"max=2000"`
}

// AsignarAgenteRequest assigns an agente to an activity.
type AsignarAgenteRequest struct {
	NIP string `json:"nip" form:"nip" validate:"required,max=50"`
}

// AsistenciaRequest records an attendance outcome. Null resets it to pending.
type AsistenciaRequest struct {
	Asistencia *bool `json:"asistencia"`
}

// ActualizarAsistenciaRequest is the flat legacy attendance payload where
// asistencia is 1, 0 or null.
type ActualizarAsistenciaRequest struct {
	AgenteNIP   string `json:"agente_nip" validate:"required"`
	ActividadID int64  `json:"actividad_id" validate:"required,gt=0"`
	Asistencia  *int   `json:"asistencia" validate:"omitempty,oneof=0 1"`
}

// Flag converts the legacy integer into the tri-state flag.
func (r ActualizarAsistenciaRequest) Flag() *bool {
	if r.Asistencia == nil {
		return nil
	}
	v := *r.Asistencia == 1
	return &v
}

// MonitorRequest is accepted by PUT /monitores/{nip}.
type MonitorRequest struct {
	Monitor *bool `json:"monitor"`
}

// SuccessResponse acknowledges a write without returning a resource.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
