package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/agentes-admin/internal/models"
)

const actividadDetalleSelect = `SELECT a.id, a.fecha, a.turno_id, a.monitor_nip, a.curso_id, a.notas,
        t.nombre AS turno_nombre, c.nombre AS curso_nombre,
        m.nombre || ' ' || m.apellido1 || COALESCE(' ' || m.apellido2, '') AS monitor_nombre
        FROM actividades a
        JOIN turnos t ON t.id = a.turno_id
        JOIN cursos c ON c.id = a.curso_id
        LEFT JOIN agentes m ON m.nip = a.monitor_nip`

// ActividadRepository manages persistence for activities.
type ActividadRepository struct {
	db *sqlx.DB
}

// NewActividadRepository constructs an ActividadRepository.
func NewActividadRepository(db *sqlx.DB) *ActividadRepository {
	return &ActividadRepository{db: db}
}

// List returns every activity joined with its names, newest first.
func (r *ActividadRepository) List(ctx context.Context) ([]models.ActividadDetalle, error) {
	var actividades []models.ActividadDetalle
	if err := r.db.SelectContext(ctx, &actividades, actividadDetalleSelect+" ORDER BY a.fecha DESC, a.id DESC"); err != nil {
		return nil, fmt.Errorf("list actividades: %w", err)
	}
	return actividades, nil
}

// FindByID fetches one activity detail. It returns sql.ErrNoRows when absent.
func (r *ActividadRepository) FindByID(ctx context.Context, id int64) (*models.ActividadDetalle, error) {
	var detalle models.ActividadDetalle
	if err := r.db.GetContext(ctx, &detalle, r.db.Rebind(actividadDetalleSelect+" WHERE a.id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get actividad: %w", err)
	}
	return &detalle, nil
}

// Create inserts an activity and stores the generated id on it.
func (r *ActividadRepository) Create(ctx context.Context, actividad *models.Actividad) error {
	query := r.db.Rebind(`INSERT INTO actividades (fecha, turno_id, monitor_nip, curso_id, notas)
        VALUES (?, ?, ?, ?, ?) RETURNING id`)
	if err := r.db.GetContext(ctx, &actividad.ID, query,
		actividad.Fecha, actividad.TurnoID, actividad.MonitorNIP, actividad.CursoID, actividad.Notas,
	); err != nil {
		return classify("create actividad", err)
	}
	return nil
}

// Update rewrites every column of the activity.
func (r *ActividadRepository) Update(ctx context.Context, actividad *models.Actividad) error {
	query := r.db.Rebind(`UPDATE actividades SET fecha = ?, turno_id = ?, monitor_nip = ?, curso_id = ?, notas = ?
        WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		actividad.Fecha, actividad.TurnoID, actividad.MonitorNIP, actividad.CursoID, actividad.Notas, actividad.ID,
	)
	if err != nil {
		return classify("update actividad", err)
	}
	return requireAffected(res, "update actividad")
}

// Delete removes the attendance links and then the activity in one
// transaction.
func (r *ActividadRepository) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete actividad: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind("DELETE FROM agentes_actividades WHERE actividad_id = ?"), id); err != nil {
		return fmt.Errorf("delete actividad links: %w", err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM actividades WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete actividad: %w", err)
	}
	if err = requireAffected(res, "delete actividad"); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete actividad: %w", err)
	}
	return nil
}

// ConteosFromView reads the per-activity attendance counts from the
// aggregation view.
func (r *ActividadRepository) ConteosFromView(ctx context.Context) ([]models.ActividadConteo, error) {
	const query = `SELECT id, fecha, turno_id, monitor_nip, curso_id, notas, turno_nombre, curso_nombre, monitor_nombre,
        total_agentes, asistencia_confirmada, asistencia_no_confirmada, asistencia_pendiente
        FROM vista_actividades_con_agentes ORDER BY fecha DESC, id DESC`
	var conteos []models.ActividadConteo
	if err := r.db.SelectContext(ctx, &conteos, query); err != nil {
		return nil, fmt.Errorf("query actividades view: %w", err)
	}
	return conteos, nil
}
