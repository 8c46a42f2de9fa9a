package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/agentes-admin/internal/models"
)

// CursoRepository manages persistence for courses.
type CursoRepository struct {
	db *sqlx.DB
}

// NewCursoRepository constructs a CursoRepository.
func NewCursoRepository(db *sqlx.DB) *CursoRepository {
	return &CursoRepository{db: db}
}

// List returns every course ordered by name.
func (r *CursoRepository) List(ctx context.Context) ([]models.Curso, error) {
	var cursos []models.Curso
	if err := r.db.SelectContext(ctx, &cursos, "SELECT id, nombre, descripcion FROM cursos ORDER BY nombre, id"); err != nil {
		return nil, fmt.Errorf("list cursos: %w", err)
	}
	return cursos, nil
}

// FindByID fetches a course. It returns sql.ErrNoRows when absent.
func (r *CursoRepository) FindByID(ctx context.Context, id int64) (*models.Curso, error) {
	var curso models.Curso
	if err := r.db.GetContext(ctx, &curso, r.db.Rebind("SELECT id, nombre, descripcion FROM cursos WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get curso: %w", err)
	}
	return &curso, nil
}

// Create inserts a course and stores the generated id on it.
func (r *CursoRepository) Create(ctx context.Context, curso *models.Curso) error {
	query := r.db.Rebind("INSERT INTO cursos (nombre, descripcion) VALUES (?, ?) RETURNING id")
	if err := r.db.GetContext(ctx, &curso.ID, query, curso.Nombre, curso.Descripcion); err != nil {
		return classify("create curso", err)
	}
	return nil
}

// Update rewrites the course row.
func (r *CursoRepository) Update(ctx context.Context, curso *models.Curso) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE cursos SET nombre = ?, descripcion = ? WHERE id = ?"), curso.Nombre, curso.Descripcion, curso.ID)
	if err != nil {
		return fmt.Errorf("update curso: %w", err)
	}
	return requireAffected(res, "update curso")
}

// Delete removes a course. Callers check CountActividades first.
func (r *CursoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM cursos WHERE id = ?"), id)
	if err != nil {
		return classify("delete curso", err)
	}
	return requireAffected(res, "delete curso")
}

// CountActividades returns how many activities reference the course.
func (r *CursoRepository) CountActividades(ctx context.Context, id int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind("SELECT COUNT(*) FROM actividades WHERE curso_id = ?"), id); err != nil {
		return 0, fmt.Errorf("count curso actividades: %w", err)
	}
	return count, nil
}

// TurnoRepository reads the static shift catalogue.
type TurnoRepository struct {
	db *sqlx.DB
}

// NewTurnoRepository constructs a TurnoRepository.
func NewTurnoRepository(db *sqlx.DB) *TurnoRepository {
	return &TurnoRepository{db: db}
}

// List returns the shifts in id order.
func (r *TurnoRepository) List(ctx context.Context) ([]models.Turno, error) {
	var turnos []models.Turno
	if err := r.db.SelectContext(ctx, &turnos, "SELECT id, nombre, hora_inicio, hora_fin FROM turnos ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list turnos: %w", err)
	}
	return turnos, nil
}

// FindByID fetches one shift. It returns sql.ErrNoRows when absent.
func (r *TurnoRepository) FindByID(ctx context.Context, id int64) (*models.Turno, error) {
	var turno models.Turno
	if err := r.db.GetContext(ctx, &turno, r.db.Rebind("SELECT id, nombre, hora_inicio, hora_fin FROM turnos WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get turno: %w", err)
	}
	return &turno, nil
}
