package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := NewSQLite(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db, true))
	require.NoError(t, Migrate(ctx, db, true))

	var views int
	require.NoError(t, db.Get(&views, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'view' AND name = ?", ViewActividades))
	assert.Equal(t, 1, views)

	require.NoError(t, DropView(ctx, db))
	require.NoError(t, db.Get(&views, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'view' AND name = ?", ViewActividades))
	assert.Equal(t, 0, views)
}

func TestSeedReference(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, false))

	require.NoError(t, SeedReference(ctx, db))
	require.NoError(t, SeedReference(ctx, db))

	var turnos []struct {
		Nombre string `db:"nombre"`
		Inicio string `db:"hora_inicio"`
		Fin    string `db:"hora_fin"`
	}
	require.NoError(t, db.Select(&turnos, "SELECT nombre, hora_inicio, hora_fin FROM turnos ORDER BY id"))
	require.Len(t, turnos, 3)
	assert.Equal(t, "Mañana", turnos[0].Nombre)
	assert.Equal(t, "20:00", turnos[2].Inicio)
	assert.Equal(t, "08:00", turnos[2].Fin)

	var cursos int
	require.NoError(t, db.Get(&cursos, "SELECT COUNT(*) FROM cursos"))
	assert.Equal(t, 3, cursos)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, false))

	_, err := db.Exec("INSERT INTO agentes_actividades (agente_nip, actividad_id) VALUES ('X', 99)")
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestIsUniqueViolation(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(context.Background(), db, false))

	insert := "INSERT INTO agentes (nip, nombre, apellido1) VALUES ('A1', 'Ana', 'Gil')"
	_, err := db.Exec(insert)
	require.NoError(t, err)
	_, err = db.Exec(insert)
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.False(t, IsUnavailable(err))
}

func TestIsUnavailable(t *testing.T) {
	assert.True(t, IsUnavailable(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	assert.True(t, IsUnavailable(fmt.Errorf("list: %w", &pq.Error{Code: "08006"})))
	assert.True(t, IsUnavailable(context.DeadlineExceeded))
	assert.False(t, IsUnavailable(&pq.Error{Code: "42P01"}))
	assert.False(t, IsUnavailable(nil))

	_, err := NewSQLite("/nonexistent-dir/sub/agentes.db")
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
}
