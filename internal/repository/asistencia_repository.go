package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/agentes-admin/internal/models"
)

// AsistenciaRepository manages agente-activity links and their attendance.
type AsistenciaRepository struct {
	db *sqlx.DB
}

// NewAsistenciaRepository constructs an AsistenciaRepository.
func NewAsistenciaRepository(db *sqlx.DB) *AsistenciaRepository {
	return &AsistenciaRepository{db: db}
}

// ListByActividad returns the agentes assigned to an activity with their
// attendance status.
func (r *AsistenciaRepository) ListByActividad(ctx context.Context, actividadID int64) ([]models.AgenteAsignado, error) {
	query := r.db.Rebind(`SELECT ag.nip, ag.nombre, ag.apellido1, ag.apellido2, ag.seccion, ag.grupo, ag.activo, ag.es_monitor, aa.asistencia
        FROM agentes_actividades aa
        JOIN agentes ag ON ag.nip = aa.agente_nip
        WHERE aa.actividad_id = ?
        ORDER BY ag.apellido1, ag.nombre, ag.nip`)
	var rows []models.AgenteAsignado
	if err := r.db.SelectContext(ctx, &rows, query, actividadID); err != nil {
		return nil, fmt.Errorf("list actividad agentes: %w", err)
	}
	for i := range rows {
		rows[i].CompletarNombre()
		rows[i].Estado = models.EstadoAsistencia(rows[i].Asistencia)
	}
	return rows, nil
}

// ListAll returns every link.
func (r *AsistenciaRepository) ListAll(ctx context.Context) ([]models.AgenteActividad, error) {
	var links []models.AgenteActividad
	if err := r.db.SelectContext(ctx, &links, "SELECT agente_nip, actividad_id, asistencia FROM agentes_actividades"); err != nil {
		return nil, fmt.Errorf("list agentes_actividades: %w", err)
	}
	return links, nil
}

// Exists reports whether the agente is assigned to the activity.
func (r *AsistenciaRepository) Exists(ctx context.Context, nip string, actividadID int64) (bool, error) {
	var exists int
	query := r.db.Rebind("SELECT 1 FROM agentes_actividades WHERE agente_nip = ? AND actividad_id = ? LIMIT 1")
	if err := r.db.GetContext(ctx, &exists, query, nip, actividadID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return true, nil
}

// Assign links an agente to an activity with pending attendance.
func (r *AsistenciaRepository) Assign(ctx context.Context, nip string, actividadID int64) error {
	query := r.db.Rebind("INSERT INTO agentes_actividades (agente_nip, actividad_id, asistencia) VALUES (?, ?, NULL)")
	if _, err := r.db.ExecContext(ctx, query, nip, actividadID); err != nil {
		return classify("assign agente", err)
	}
	return nil
}

// Unassign removes a link. It returns sql.ErrNoRows when there was none.
func (r *AsistenciaRepository) Unassign(ctx context.Context, nip string, actividadID int64) error {
	query := r.db.Rebind("DELETE FROM agentes_actividades WHERE agente_nip = ? AND actividad_id = ?")
	res, err := r.db.ExecContext(ctx, query, nip, actividadID)
	if err != nil {
		return fmt.Errorf("unassign agente: %w", err)
	}
	return requireAffected(res, "unassign agente")
}

// SetAsistencia records the attendance outcome. A nil value resets it to
// pending.
func (r *AsistenciaRepository) SetAsistencia(ctx context.Context, nip string, actividadID int64, asistencia *bool) error {
	query := r.db.Rebind("UPDATE agentes_actividades SET asistencia = ? WHERE agente_nip = ? AND actividad_id = ?")
	res, err := r.db.ExecContext(ctx, query, asistencia, nip, actividadID)
	if err != nil {
		return fmt.Errorf("set asistencia: %w", err)
	}
	return requireAffected(res, "set asistencia")
}
