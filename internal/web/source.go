package web

import (
	"context"
	"net/http"

	"github.com/noah-isme/agentes-admin/internal/client"
	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

// Source is everything the panel reads and writes. Reads fail with an error
// the page degrades on; writes report their outcome as a client.Result.
// *client.Client satisfies it for the remote mode.
type Source interface {
	ListAgentes(ctx context.Context, filter models.AgenteFilter) ([]models.Agente, error)
	GetAgente(ctx context.Context, nip string) (*models.Agente, error)
	CreateAgente(ctx context.Context, req dto.CreateAgenteRequest) client.Result
	UpdateAgente(ctx context.Context, nip string, patch models.AgentePatch) client.Result
	DeleteAgente(ctx context.Context, nip string) client.Result
	ListMonitores(ctx context.Context) ([]models.Agente, error)
	SetMonitor(ctx context.Context, nip string, monitor bool) client.Result

	ListCursos(ctx context.Context) ([]models.Curso, error)
	CreateCurso(ctx context.Context, req dto.CreateCursoRequest) client.Result
	UpdateCurso(ctx context.Context, id int64, patch models.CursoPatch) client.Result
	DeleteCurso(ctx context.Context, id int64) client.Result
	ListTurnos(ctx context.Context) ([]models.Turno, error)

	GetActividad(ctx context.Context, id int64) (*models.ActividadDetalle, error)
	CreateActividad(ctx context.Context, req dto.CreateActividadRequest) client.Result
	UpdateActividad(ctx context.Context, id int64, patch models.ActividadPatch) client.Result
	DeleteActividad(ctx context.Context, id int64) client.Result
	AgentesPorActividad(ctx context.Context, id int64) ([]models.AgenteAsignado, error)
	AsignarAgente(ctx context.Context, id int64, nip string) client.Result
	DesasignarAgente(ctx context.Context, id int64, nip string) client.Result
	ActualizarAsistencia(ctx context.Context, nip string, actividadID int64, asistencia *bool) client.Result

	Dashboard(ctx context.Context, filter models.ActividadFilter) (*dto.DashboardResponse, error)
}

var _ Source = (*client.Client)(nil)

type agenteService interface {
	List(ctx context.Context, filter models.AgenteFilter) ([]models.Agente, error)
	ListMonitores(ctx context.Context) ([]models.Agente, error)
	Get(ctx context.Context, nip string) (*models.Agente, error)
	Create(ctx context.Context, req dto.CreateAgenteRequest) (*models.Agente, error)
	Update(ctx context.Context, nip string, patch models.AgentePatch) (*models.Agente, error)
	Delete(ctx context.Context, nip string) error
	SetMonitor(ctx context.Context, nip string, monitor bool) (*models.Agente, error)
}

type catalogoService interface {
	ListCursos(ctx context.Context) ([]models.Curso, error)
	CreateCurso(ctx context.Context, req dto.CreateCursoRequest) (*models.Curso, error)
	UpdateCurso(ctx context.Context, id int64, patch models.CursoPatch) (*models.Curso, error)
	DeleteCurso(ctx context.Context, id int64) error
	ListTurnos(ctx context.Context) ([]models.Turno, error)
}

type actividadService interface {
	Get(ctx context.Context, id int64) (*models.ActividadDetalle, error)
	Create(ctx context.Context, req dto.CreateActividadRequest) (*models.ActividadDetalle, error)
	Update(ctx context.Context, id int64, patch models.ActividadPatch) (*models.ActividadDetalle, error)
	Delete(ctx context.Context, id int64) error
	ListAgentes(ctx context.Context, id int64) ([]models.AgenteAsignado, error)
	Asignar(ctx context.Context, id int64, req dto.AsignarAgenteRequest) error
	Desasignar(ctx context.Context, id int64, nip string) error
	SetAsistencia(ctx context.Context, id int64, nip string, asistencia *bool) error
}

type dashboardService interface {
	Build(ctx context.Context, filter models.ActividadFilter) (*dto.DashboardResponse, error)
}

// LocalSource serves the panel straight from the services in this process.
type LocalSource struct {
	agentes     agenteService
	catalogo    catalogoService
	actividades actividadService
	dashboard   dashboardService
}

// NewLocalSource constructs a LocalSource.
func NewLocalSource(agentes agenteService, catalogo catalogoService, actividades actividadService, dashboard dashboardService) *LocalSource {
	return &LocalSource{agentes: agentes, catalogo: catalogo, actividades: actividades, dashboard: dashboard}
}

func result(err error, message string, status int) client.Result {
	if err != nil {
		appErr := appErrors.FromError(err)
		return client.Result{Success: false, Message: appErr.Message, Status: appErr.Status}
	}
	return client.Result{Success: true, Message: message, Status: status}
}

func (s *LocalSource) ListAgentes(ctx context.Context, filter models.AgenteFilter) ([]models.Agente, error) {
	return s.agentes.List(ctx, filter)
}

func (s *LocalSource) GetAgente(ctx context.Context, nip string) (*models.Agente, error) {
	return s.agentes.Get(ctx, nip)
}

func (s *LocalSource) CreateAgente(ctx context.Context, req dto.CreateAgenteRequest) client.Result {
	_, err := s.agentes.Create(ctx, req)
	return result(err, "agente created", http.StatusCreated)
}

func (s *LocalSource) UpdateAgente(ctx context.Context, nip string, patch models.AgentePatch) client.Result {
	_, err := s.agentes.Update(ctx, nip, patch)
	return result(err, "agente updated", http.StatusOK)
}

func (s *LocalSource) DeleteAgente(ctx context.Context, nip string) client.Result {
	return result(s.agentes.Delete(ctx, nip), "agente deleted", http.StatusNoContent)
}

func (s *LocalSource) ListMonitores(ctx context.Context) ([]models.Agente, error) {
	return s.agentes.ListMonitores(ctx)
}

func (s *LocalSource) SetMonitor(ctx context.Context, nip string, monitor bool) client.Result {
	_, err := s.agentes.SetMonitor(ctx, nip, monitor)
	if monitor {
		return result(err, "monitor assigned", http.StatusOK)
	}
	return result(err, "monitor removed", http.StatusOK)
}

func (s *LocalSource) ListCursos(ctx context.Context) ([]models.Curso, error) {
	return s.catalogo.ListCursos(ctx)
}

func (s *LocalSource) CreateCurso(ctx context.Context, req dto.CreateCursoRequest) client.Result {
	_, err := s.catalogo.CreateCurso(ctx, req)
	return result(err, "curso created", http.StatusCreated)
}

func (s *LocalSource) UpdateCurso(ctx context.Context, id int64, patch models.CursoPatch) client.Result {
	_, err := s.catalogo.UpdateCurso(ctx, id, patch)
	return result(err, "curso updated", http.StatusOK)
}

func (s *LocalSource) DeleteCurso(ctx context.Context, id int64) client.Result {
	return result(s.catalogo.DeleteCurso(ctx, id), "curso deleted", http.StatusNoContent)
}

func (s *LocalSource) ListTurnos(ctx context.Context) ([]models.Turno, error) {
	return s.catalogo.ListTurnos(ctx)
}

func (s *LocalSource) GetActividad(ctx context.Context, id int64) (*models.ActividadDetalle, error) {
	return s.actividades.Get(ctx, id)
}

func (s *LocalSource) CreateActividad(ctx context.Context, req dto.CreateActividadRequest) client.Result {
	_, err := s.actividades.Create(ctx, req)
	return result(err, "actividad created", http.StatusCreated)
}

func (s *LocalSource) UpdateActividad(ctx context.Context, id int64, patch models.ActividadPatch) client.Result {
	_, err := s.actividades.Update(ctx, id, patch)
	return result(err, "actividad updated", http.StatusOK)
}

func (s *LocalSource) DeleteActividad(ctx context.Context, id int64) client.Result {
	return result(s.actividades.Delete(ctx, id), "actividad deleted", http.StatusNoContent)
}

func (s *LocalSource) AgentesPorActividad(ctx context.Context, id int64) ([]models.AgenteAsignado, error) {
	return s.actividades.ListAgentes(ctx, id)
}

func (s *LocalSource) AsignarAgente(ctx context.Context, id int64, nip string) client.Result {
	return result(s.actividades.Asignar(ctx, id, dto.AsignarAgenteRequest{NIP: nip}), "agente assigned", http.StatusCreated)
}

func (s *LocalSource) DesasignarAgente(ctx context.Context, id int64, nip string) client.Result {
	return result(s.actividades.Desasignar(ctx, id, nip), "agente unassigned", http.StatusNoContent)
}

func (s *LocalSource) ActualizarAsistencia(ctx context.Context, nip string, actividadID int64, asistencia *bool) client.Result {
	return result(s.actividades.SetAsistencia(ctx, actividadID, nip, asistencia), "asistencia updated", http.StatusOK)
}

func (s *LocalSource) Dashboard(ctx context.Context, filter models.ActividadFilter) (*dto.DashboardResponse, error) {
	return s.dashboard.Build(ctx, filter)
}

var _ Source = (*LocalSource)(nil)
