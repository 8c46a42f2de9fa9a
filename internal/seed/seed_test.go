package seed

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/repository"
	"github.com/noah-isme/agentes-admin/pkg/database"
)

func newStore(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewSQLite(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db, true))
	require.NoError(t, database.SeedReference(ctx, db))
	return db
}

func newGenerator(db *sqlx.DB) *Generator {
	return NewGenerator(repository.NewAgenteRepository(db), repository.NewActividadRepository(db), repository.NewAsistenciaRepository(db), nil)
}

func smallOptions() Options {
	opts := DefaultOptions(models.NewDate(2024, time.May, 15))
	opts.Seed = 42
	opts.Agentes = 12
	opts.Monitores = 3
	opts.Actividades = 10
	opts.Span = 5
	return opts
}

func TestRunIsDeterministic(t *testing.T) {
	ctx := context.Background()
	first, second := newStore(t), newStore(t)

	s1, err := newGenerator(first).Run(ctx, smallOptions())
	require.NoError(t, err)
	s2, err := newGenerator(second).Run(ctx, smallOptions())
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Equal(t, 12, s1.Agentes)
	assert.Equal(t, 10, s1.Actividades)

	links1, err := repository.NewAsistenciaRepository(first).ListAll(ctx)
	require.NoError(t, err)
	links2, err := repository.NewAsistenciaRepository(second).ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, links1, links2)
	assert.Len(t, links1, s1.Asignaciones)
}

func TestRunRespectsMonitorsAndFutureAttendance(t *testing.T) {
	ctx := context.Background()
	db := newStore(t)
	opts := smallOptions()

	_, err := newGenerator(db).Run(ctx, opts)
	require.NoError(t, err)

	monitores, err := repository.NewAgenteRepository(db).ListMonitores(ctx)
	require.NoError(t, err)
	assert.Len(t, monitores, 3)

	actividades, err := repository.NewActividadRepository(db).List(ctx)
	require.NoError(t, err)
	future := map[int64]bool{}
	for _, a := range actividades {
		assert.LessOrEqual(t, abs(daysBetween(opts.Today, a.Fecha)), opts.Span)
		require.NotNil(t, a.MonitorNIP)
		if a.Fecha.Compare(opts.Today) > 0 {
			future[a.ID] = true
		}
	}

	links, err := repository.NewAsistenciaRepository(db).ListAll(ctx)
	require.NoError(t, err)
	for _, l := range links {
		if future[l.ActividadID] {
			assert.Nil(t, l.Asistencia, "future actividad %d has attendance", l.ActividadID)
		}
	}
}

func TestRunSkipsExistingAgentes(t *testing.T) {
	ctx := context.Background()
	db := newStore(t)
	gen := newGenerator(db)

	_, err := gen.Run(ctx, smallOptions())
	require.NoError(t, err)
	again, err := gen.Run(ctx, smallOptions())
	require.NoError(t, err)
	assert.Zero(t, again.Agentes)
	assert.Equal(t, 10, again.Actividades)
}

func TestRunRejectsEmptyOptions(t *testing.T) {
	_, err := newGenerator(newStore(t)).Run(context.Background(), Options{})
	assert.Error(t, err)
}

func daysBetween(a, b models.Date) int {
	return int(b.Sub(a.Time).Hours() / 24)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
