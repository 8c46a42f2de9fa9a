package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/repository"
	"github.com/noah-isme/agentes-admin/pkg/database"
)

func seededStore(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewSQLite(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db, true))
	require.NoError(t, database.SeedReference(ctx, db))

	agentes := repository.NewAgenteRepository(db)
	actividades := repository.NewActividadRepository(db)
	links := repository.NewAsistenciaRepository(db)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 12; i++ {
		require.NoError(t, agentes.Create(ctx, &models.Agente{
			NIP: fmt.Sprintf("N%03d", i), Nombre: "Agente", Apellido1: fmt.Sprintf("Num%d", i),
			Activo: true, EsMonitor: i < 2,
		}))
	}
	base := models.NewDate(2024, time.May, 15)
	for i := 0; i < 8; i++ {
		actividad := &models.Actividad{Fecha: base.AddDays(i - 4), TurnoID: int64(i%3 + 1), CursoID: int64(i%3 + 1)}
		if i%2 == 0 {
			monitor := "N000"
			actividad.MonitorNIP = &monitor
		}
		require.NoError(t, actividades.Create(ctx, actividad))
		if i == 7 {
			continue
		}
		for j := 0; j < 12; j++ {
			if rng.Intn(3) == 0 {
				continue
			}
			nip := fmt.Sprintf("N%03d", j)
			require.NoError(t, links.Assign(ctx, nip, actividad.ID))
			switch rng.Intn(3) {
			case 0:
				require.NoError(t, links.SetAsistencia(ctx, nip, actividad.ID, boolPtr(true)))
			case 1:
				require.NoError(t, links.SetAsistencia(ctx, nip, actividad.ID, boolPtr(false)))
			}
		}
	}
	return db
}

func TestResumenViewAndFallbackAgree(t *testing.T) {
	db := seededStore(t)
	ctx := context.Background()
	actividades := repository.NewActividadRepository(db)
	links := repository.NewAsistenciaRepository(db)
	fixedNow := func() time.Time { return time.Date(2024, time.May, 15, 10, 0, 0, 0, time.Local) }

	viewSvc := NewResumenService(actividades, links, nil, nil, zap.NewNop(), ResumenServiceConfig{UseView: true})
	viewSvc.now = fixedNow
	fallbackSvc := NewResumenService(actividades, links, nil, nil, zap.NewNop(), ResumenServiceConfig{UseView: false})
	fallbackSvc.now = fixedNow

	fromView, fuente, err := viewSvc.Resumen(ctx)
	require.NoError(t, err)
	assert.Equal(t, FuenteVista, fuente)
	fromLinks, fuente, err := fallbackSvc.Resumen(ctx)
	require.NoError(t, err)
	assert.Equal(t, FuenteCalculada, fuente)

	require.Len(t, fromView, 8)
	assert.Equal(t, fromLinks, fromView)

	var estados = map[string]int{}
	for _, row := range fromView {
		assert.Equal(t, row.TotalAgentes, row.AsistenciaConfirmada+row.AsistenciaNoConfirmada+row.AsistenciaPendiente)
		estados[row.Estado]++
	}
	assert.Equal(t, 4, estados[models.EstadoCompletada])
	assert.Equal(t, 1, estados[models.EstadoEnCurso])
	assert.Equal(t, 3, estados[models.EstadoPendiente])
}

func TestResumenFallsBackWhenViewMissing(t *testing.T) {
	db := seededStore(t)
	ctx := context.Background()
	require.NoError(t, database.DropView(ctx, db))

	svc := NewResumenService(repository.NewActividadRepository(db), repository.NewAsistenciaRepository(db), nil, NewMetricsService(), zap.NewNop(), ResumenServiceConfig{UseView: true})

	rows, fuente, err := svc.Resumen(ctx)
	require.NoError(t, err)
	assert.Equal(t, FuenteCalculada, fuente)
	assert.Len(t, rows, 8)
}
