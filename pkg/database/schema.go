package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/agentes-admin/pkg/config"
)

// ViewActividades is the aggregated per-activity attendance view.
const ViewActividades = "vista_actividades_con_agentes"

const serialPlaceholder = "{{serial}}"

var tableStatements = []string{
	`CREATE TABLE IF NOT EXISTS agentes (
		nip TEXT PRIMARY KEY,
		nombre TEXT NOT NULL,
		apellido1 TEXT NOT NULL,
		apellido2 TEXT,
		seccion TEXT,
		grupo TEXT,
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		es_monitor BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS cursos (
		id {{serial}},
		nombre TEXT NOT NULL,
		descripcion TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS turnos (
		id {{serial}},
		nombre TEXT NOT NULL,
		hora_inicio TEXT,
		hora_fin TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS actividades (
		id {{serial}},
		fecha DATE NOT NULL,
		turno_id INTEGER NOT NULL REFERENCES turnos (id),
		monitor_nip TEXT REFERENCES agentes (nip),
		curso_id INTEGER NOT NULL REFERENCES cursos (id),
		notas TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS agentes_actividades (
		agente_nip TEXT NOT NULL REFERENCES agentes (nip),
		actividad_id INTEGER NOT NULL REFERENCES actividades (id),
		asistencia BOOLEAN,
		PRIMARY KEY (agente_nip, actividad_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_actividades_fecha ON actividades (fecha)`,
	`CREATE INDEX IF NOT EXISTS idx_agentes_actividades_actividad ON agentes_actividades (actividad_id)`,
}

const viewBody = `SELECT
		a.id,
		a.fecha,
		a.turno_id,
		a.monitor_nip,
		a.curso_id,
		a.notas,
		t.nombre AS turno_nombre,
		c.nombre AS curso_nombre,
		m.nombre || ' ' || m.apellido1 || COALESCE(' ' || m.apellido2, '') AS monitor_nombre,
		COUNT(aa.agente_nip) AS total_agentes,
		COALESCE(SUM(CASE WHEN aa.asistencia IS TRUE THEN 1 ELSE 0 END), 0) AS asistencia_confirmada,
		COALESCE(SUM(CASE WHEN aa.asistencia IS FALSE THEN 1 ELSE 0 END), 0) AS asistencia_no_confirmada,
		COALESCE(SUM(CASE WHEN aa.agente_nip IS NOT NULL AND aa.asistencia IS NULL THEN 1 ELSE 0 END), 0) AS asistencia_pendiente
	FROM actividades a
	JOIN turnos t ON t.id = a.turno_id
	JOIN cursos c ON c.id = a.curso_id
	LEFT JOIN agentes m ON m.nip = a.monitor_nip
	LEFT JOIN agentes_actividades aa ON aa.actividad_id = a.id
	GROUP BY a.id, a.fecha, a.turno_id, a.monitor_nip, a.curso_id, a.notas,
		t.nombre, c.nombre, m.nombre, m.apellido1, m.apellido2`

// Migrate creates the tables and, when withView is set, the aggregation
// view. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB, withView bool) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == config.DriverPostgres {
		serial = "SERIAL PRIMARY KEY"
	}

	for _, stmt := range tableStatements {
		if _, err := db.ExecContext(ctx, strings.ReplaceAll(stmt, serialPlaceholder, serial)); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}

	if !withView {
		return nil
	}
	return CreateView(ctx, db)
}

// CreateView (re)creates the aggregation view.
func CreateView(ctx context.Context, db *sqlx.DB) error {
	stmt := fmt.Sprintf("CREATE VIEW IF NOT EXISTS %s AS %s", ViewActividades, viewBody)
	if db.DriverName() == config.DriverPostgres {
		stmt = fmt.Sprintf("CREATE OR REPLACE VIEW %s AS %s", ViewActividades, viewBody)
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create view %s: %w", ViewActividades, err)
	}
	return nil
}

// DropView removes the aggregation view if present.
func DropView(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, "DROP VIEW IF EXISTS "+ViewActividades); err != nil {
		return fmt.Errorf("drop view %s: %w", ViewActividades, err)
	}
	return nil
}

type turnoSeed struct {
	nombre string
	inicio string
	fin    string
}

type cursoSeed struct {
	nombre      string
	descripcion string
}

var referenceTurnos = []turnoSeed{
	{"Mañana", "08:00", "14:00"},
	{"Tarde", "14:00", "20:00"},
	{"Noche", "20:00", "08:00"},
}

var referenceCursos = []cursoSeed{
	{"Formación Básica", "Curso básico para agentes nuevos"},
	{"Actualización", "Curso de actualización anual"},
	{"Especialización", "Curso de especialización en áreas específicas"},
}

// SeedReference loads the static shifts and the starter courses into empty
// tables. Tables that already hold rows are left alone.
func SeedReference(ctx context.Context, db *sqlx.DB) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reference seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var turnos int
	if err = tx.GetContext(ctx, &turnos, "SELECT COUNT(*) FROM turnos"); err != nil {
		return fmt.Errorf("count turnos: %w", err)
	}
	if turnos == 0 {
		insert := tx.Rebind("INSERT INTO turnos (nombre, hora_inicio, hora_fin) VALUES (?, ?, ?)")
		for _, t := range referenceTurnos {
			if _, err = tx.ExecContext(ctx, insert, t.nombre, t.inicio, t.fin); err != nil {
				return fmt.Errorf("seed turno %s: %w", t.nombre, err)
			}
		}
	}

	var cursos int
	if err = tx.GetContext(ctx, &cursos, "SELECT COUNT(*) FROM cursos"); err != nil {
		return fmt.Errorf("count cursos: %w", err)
	}
	if cursos == 0 {
		insert := tx.Rebind("INSERT INTO cursos (nombre, descripcion) VALUES (?, ?)")
		for _, c := range referenceCursos {
			if _, err = tx.ExecContext(ctx, insert, c.nombre, c.descripcion); err != nil {
				return fmt.Errorf("seed curso %s: %w", c.nombre, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit reference seed: %w", err)
	}
	return nil
}
