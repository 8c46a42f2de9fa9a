package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/repository"
)

func newRedisCache(t *testing.T, metrics *MetricsService) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := repository.NewCacheRepository(client, zap.NewNop())
	return NewCacheService(repo, metrics, time.Minute, zap.NewNop(), true), mr
}

func totalAgentes(rows []models.ActividadResumen, id int64) int {
	for _, row := range rows {
		if row.ID == id {
			return row.TotalAgentes
		}
	}
	return -1
}

func TestResumenCachedCountsInvalidatedByWrites(t *testing.T) {
	db := seededStore(t)
	ctx := context.Background()
	metrics := NewMetricsService()
	cache, mr := newRedisCache(t, metrics)

	resumen := NewResumenService(repository.NewActividadRepository(db), repository.NewAsistenciaRepository(db), cache, metrics, zap.NewNop(), ResumenServiceConfig{UseView: true})
	resumen.now = func() time.Time { return time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC) }
	actividades := newActividadSvc(db, cache)

	first, fuente, err := resumen.Resumen(ctx)
	require.NoError(t, err)
	assert.Equal(t, FuenteVista, fuente)
	assert.True(t, mr.Exists(CacheKeyResumen))
	assert.Equal(t, 0, totalAgentes(first, 8))

	// a write that bypasses the services is not seen until invalidation
	require.NoError(t, repository.NewAsistenciaRepository(db).Assign(ctx, "N001", 8))
	cached, _, err := resumen.Resumen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, totalAgentes(cached, 8))
	assert.Equal(t, uint64(1), metrics.Snapshot().CacheHits)

	require.NoError(t, actividades.Asignar(ctx, 8, dto.AsignarAgenteRequest{NIP: "N002"}))
	assert.False(t, mr.Exists(CacheKeyResumen))

	fresh, _, err := resumen.Resumen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, totalAgentes(fresh, 8))
}

func TestResumenStateDerivedOnCachedRead(t *testing.T) {
	db := seededStore(t)
	ctx := context.Background()
	cache, _ := newRedisCache(t, nil)

	resumen := NewResumenService(repository.NewActividadRepository(db), repository.NewAsistenciaRepository(db), cache, nil, zap.NewNop(), ResumenServiceConfig{UseView: true})
	resumen.now = func() time.Time { return time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC) }

	rows, _, err := resumen.Resumen(ctx)
	require.NoError(t, err)
	enCurso := 0
	for _, row := range rows {
		if row.Estado == models.EstadoEnCurso {
			enCurso++
		}
	}
	assert.Equal(t, 1, enCurso)

	resumen.now = func() time.Time { return time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC) }
	rows, _, err = resumen.Resumen(ctx)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, models.EstadoCompletada, row.Estado)
	}
}

func TestResumenFiltrado(t *testing.T) {
	db := seededStore(t)
	resumen := NewResumenService(repository.NewActividadRepository(db), repository.NewAsistenciaRepository(db), nil, nil, zap.NewNop(), ResumenServiceConfig{UseView: true})
	resumen.now = func() time.Time { return time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC) }

	rows, _, err := resumen.Filtrado(context.Background(), models.ActividadFilter{Estado: models.EstadoPendiente})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	desde := models.NewDate(2024, time.May, 14)
	hasta := models.NewDate(2024, time.May, 15)
	rows, _, err = resumen.Filtrado(context.Background(), models.ActividadFilter{Desde: &desde, Hasta: &hasta, Curso: "Todos"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
