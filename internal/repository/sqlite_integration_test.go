package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/pkg/database"
)

func newSQLiteStore(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.NewSQLite(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db, true))
	require.NoError(t, database.SeedReference(ctx, db))
	return db
}

func strPtr(s string) *string { return &s }

func TestSQLiteAgenteDuplicateLeavesStoreUnchanged(t *testing.T) {
	db := newSQLiteStore(t)
	repo := NewAgenteRepository(db)
	ctx := context.Background()

	original := &models.Agente{NIP: "A1", Nombre: "Ana", Apellido1: "Gil", Seccion: strPtr("Seguridad"), Activo: true}
	require.NoError(t, repo.Create(ctx, original))

	err := repo.Create(ctx, &models.Agente{NIP: "A1", Nombre: "Otra", Apellido1: "Persona", Activo: true})
	require.ErrorIs(t, err, ErrDuplicate)

	stored, err := repo.FindByNIP(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.Nombre)
	assert.Equal(t, "Seguridad", *stored.Seccion)

	all, err := repo.List(ctx, models.AgenteFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteActividadDeleteRemovesLinks(t *testing.T) {
	db := newSQLiteStore(t)
	ctx := context.Background()
	agentes := NewAgenteRepository(db)
	actividades := NewActividadRepository(db)
	links := NewAsistenciaRepository(db)

	for _, nip := range []string{"A1", "A2"} {
		require.NoError(t, agentes.Create(ctx, &models.Agente{NIP: nip, Nombre: "N", Apellido1: "A", Activo: true}))
	}
	actividad := &models.Actividad{Fecha: models.NewDate(2024, time.March, 4), TurnoID: 1, CursoID: 1}
	require.NoError(t, actividades.Create(ctx, actividad))
	require.NotZero(t, actividad.ID)
	require.NoError(t, links.Assign(ctx, "A1", actividad.ID))
	require.NoError(t, links.Assign(ctx, "A2", actividad.ID))

	require.NoError(t, actividades.Delete(ctx, actividad.ID))

	rows, err := links.ListByActividad(ctx, actividad.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
	_, err = actividades.FindByID(ctx, actividad.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.ErrorIs(t, actividades.Delete(ctx, actividad.ID), sql.ErrNoRows)
}

func TestSQLiteAgenteDeleteClearsMonitor(t *testing.T) {
	db := newSQLiteStore(t)
	ctx := context.Background()
	agentes := NewAgenteRepository(db)
	actividades := NewActividadRepository(db)
	links := NewAsistenciaRepository(db)

	require.NoError(t, agentes.Create(ctx, &models.Agente{NIP: "M1", Nombre: "Marta", Apellido1: "Ruiz", Activo: true, EsMonitor: true}))
	actividad := &models.Actividad{Fecha: models.NewDate(2024, time.March, 4), TurnoID: 2, CursoID: 1, MonitorNIP: strPtr("M1")}
	require.NoError(t, actividades.Create(ctx, actividad))
	require.NoError(t, links.Assign(ctx, "M1", actividad.ID))

	detalle, err := actividades.FindByID(ctx, actividad.ID)
	require.NoError(t, err)
	require.NotNil(t, detalle.MonitorNombre)
	assert.Equal(t, "Marta Ruiz", *detalle.MonitorNombre)
	assert.Equal(t, "Tarde", detalle.TurnoNombre)

	require.NoError(t, agentes.Delete(ctx, "M1"))

	detalle, err = actividades.FindByID(ctx, actividad.ID)
	require.NoError(t, err)
	assert.Nil(t, detalle.MonitorNIP)
	assert.Nil(t, detalle.MonitorNombre)
	all, err := links.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteAssignConstraints(t *testing.T) {
	db := newSQLiteStore(t)
	ctx := context.Background()
	agentes := NewAgenteRepository(db)
	actividades := NewActividadRepository(db)
	links := NewAsistenciaRepository(db)

	require.NoError(t, agentes.Create(ctx, &models.Agente{NIP: "A1", Nombre: "Ana", Apellido1: "Gil", Activo: true}))
	actividad := &models.Actividad{Fecha: models.NewDate(2024, time.March, 4), TurnoID: 1, CursoID: 1}
	require.NoError(t, actividades.Create(ctx, actividad))

	require.NoError(t, links.Assign(ctx, "A1", actividad.ID))
	assert.ErrorIs(t, links.Assign(ctx, "A1", actividad.ID), ErrDuplicate)
	assert.ErrorIs(t, links.Assign(ctx, "ZZ", actividad.ID), ErrReference)

	rows, err := links.ListByActividad(ctx, actividad.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Asistencia)
	assert.Equal(t, models.AsistenciaPendiente, rows[0].Estado)

	no := false
	require.NoError(t, links.SetAsistencia(ctx, "A1", actividad.ID, &no))
	rows, err = links.ListByActividad(ctx, actividad.ID)
	require.NoError(t, err)
	require.NotNil(t, rows[0].Asistencia)
	assert.False(t, *rows[0].Asistencia)
	assert.Equal(t, models.AsistenciaNoConfirmada, rows[0].Estado)

	require.NoError(t, links.Unassign(ctx, "A1", actividad.ID))
	assert.ErrorIs(t, links.Unassign(ctx, "A1", actividad.ID), sql.ErrNoRows)
}

func TestSQLiteCursoCRUD(t *testing.T) {
	db := newSQLiteStore(t)
	ctx := context.Background()
	cursos := NewCursoRepository(db)
	turnos := NewTurnoRepository(db)

	list, err := cursos.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	curso := &models.Curso{Nombre: "Tiro", Descripcion: strPtr("Prácticas de tiro")}
	require.NoError(t, cursos.Create(ctx, curso))
	require.NotZero(t, curso.ID)

	curso.Descripcion = nil
	require.NoError(t, cursos.Update(ctx, curso))
	stored, err := cursos.FindByID(ctx, curso.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Descripcion)

	require.NoError(t, cursos.Delete(ctx, curso.ID))
	_, err = cursos.FindByID(ctx, curso.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	shifts, err := turnos.List(ctx)
	require.NoError(t, err)
	require.Len(t, shifts, 3)
	assert.Equal(t, "Noche", shifts[2].Nombre)
}
