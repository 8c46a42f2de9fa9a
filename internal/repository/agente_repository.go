package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/agentes-admin/internal/models"
)

const agenteColumns = "nip, nombre, apellido1, apellido2, seccion, grupo, activo, es_monitor"

// AgenteRepository manages persistence for agentes.
type AgenteRepository struct {
	db *sqlx.DB
}

// NewAgenteRepository constructs an AgenteRepository.
func NewAgenteRepository(db *sqlx.DB) *AgenteRepository {
	return &AgenteRepository{db: db}
}

// List returns agentes ordered by surname. Only the Activo and Monitor flags
// are applied here; SQLite's LOWER folds ASCII only, so the text dimensions
// are matched in Go by the service.
func (r *AgenteRepository) List(ctx context.Context, filter models.AgenteFilter) ([]models.Agente, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Activo != nil {
		conditions = append(conditions, "activo = ?")
		args = append(args, *filter.Activo)
	}
	if filter.Monitor != nil {
		conditions = append(conditions, "es_monitor = ?")
		args = append(args, *filter.Monitor)
	}

	query := fmt.Sprintf("SELECT %s FROM agentes WHERE %s ORDER BY apellido1, nombre, nip", agenteColumns, strings.Join(conditions, " AND "))

	var agentes []models.Agente
	if err := r.db.SelectContext(ctx, &agentes, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list agentes: %w", err)
	}
	for i := range agentes {
		agentes[i].CompletarNombre()
	}
	return agentes, nil
}

// ListMonitores returns agentes eligible to lead activities.
func (r *AgenteRepository) ListMonitores(ctx context.Context) ([]models.Agente, error) {
	monitor := true
	return r.List(ctx, models.AgenteFilter{Monitor: &monitor})
}

// FindByNIP fetches one agente. It returns sql.ErrNoRows when absent.
func (r *AgenteRepository) FindByNIP(ctx context.Context, nip string) (*models.Agente, error) {
	query := r.db.Rebind(fmt.Sprintf("SELECT %s FROM agentes WHERE nip = ?", agenteColumns))
	var agente models.Agente
	if err := r.db.GetContext(ctx, &agente, query, nip); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get agente: %w", err)
	}
	agente.CompletarNombre()
	return &agente, nil
}

// ExistsByNIP checks whether the personnel code is taken.
func (r *AgenteRepository) ExistsByNIP(ctx context.Context, nip string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind("SELECT 1 FROM agentes WHERE nip = ? LIMIT 1"), nip); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check nip: %w", err)
	}
	return true, nil
}

// Create inserts a new agente. A taken NIP yields ErrDuplicate.
func (r *AgenteRepository) Create(ctx context.Context, agente *models.Agente) error {
	query := r.db.Rebind(`INSERT INTO agentes (nip, nombre, apellido1, apellido2, seccion, grupo, activo, es_monitor)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query,
		agente.NIP, agente.Nombre, agente.Apellido1, agente.Apellido2,
		agente.Seccion, agente.Grupo, agente.Activo, agente.EsMonitor,
	); err != nil {
		return classify("create agente", err)
	}
	agente.CompletarNombre()
	return nil
}

// Update rewrites every mutable column of the agente keyed by its NIP.
func (r *AgenteRepository) Update(ctx context.Context, agente *models.Agente) error {
	query := r.db.Rebind(`UPDATE agentes SET nombre = ?, apellido1 = ?, apellido2 = ?, seccion = ?, grupo = ?, activo = ?, es_monitor = ?
        WHERE nip = ?`)
	res, err := r.db.ExecContext(ctx, query,
		agente.Nombre, agente.Apellido1, agente.Apellido2, agente.Seccion,
		agente.Grupo, agente.Activo, agente.EsMonitor, agente.NIP,
	)
	if err != nil {
		return fmt.Errorf("update agente: %w", err)
	}
	return requireAffected(res, "update agente")
}

// SetMonitor toggles instructor eligibility.
func (r *AgenteRepository) SetMonitor(ctx context.Context, nip string, monitor bool) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE agentes SET es_monitor = ? WHERE nip = ?"), monitor, nip)
	if err != nil {
		return fmt.Errorf("set monitor: %w", err)
	}
	return requireAffected(res, "set monitor")
}

// Delete removes the agente, its attendance links and any monitor reference
// in one transaction.
func (r *AgenteRepository) Delete(ctx context.Context, nip string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete agente: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind("DELETE FROM agentes_actividades WHERE agente_nip = ?"), nip); err != nil {
		return fmt.Errorf("delete agente links: %w", err)
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind("UPDATE actividades SET monitor_nip = NULL WHERE monitor_nip = ?"), nip); err != nil {
		return fmt.Errorf("clear monitor references: %w", err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM agentes WHERE nip = ?"), nip)
	if err != nil {
		return fmt.Errorf("delete agente: %w", err)
	}
	if err = requireAffected(res, "delete agente"); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete agente: %w", err)
	}
	return nil
}
