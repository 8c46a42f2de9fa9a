package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/dto"
	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/repository"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

func newCatalogo(t *testing.T) *CatalogoService {
	t.Helper()
	db := seededStore(t)
	return NewCatalogoService(repository.NewCursoRepository(db), repository.NewTurnoRepository(db), nil, nil, nil, zap.NewNop())
}

func TestCatalogoListTurnosAndCursos(t *testing.T) {
	svc := newCatalogo(t)
	ctx := context.Background()

	turnos, err := svc.ListTurnos(ctx)
	require.NoError(t, err)
	assert.Len(t, turnos, 3)

	cursos, err := svc.ListCursos(ctx)
	require.NoError(t, err)
	assert.Len(t, cursos, 3)

	_, err = svc.GetTurno(ctx, 42)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCatalogoCreateSanitisesDescripcion(t *testing.T) {
	svc := newCatalogo(t)

	curso, err := svc.CreateCurso(context.Background(), dto.CreateCursoRequest{
		Nombre:      " Tiro ",
		Descripcion: `<script>alert(1)</script>Prácticas & <b>evaluación</b>`,
	})
	require.NoError(t, err)
	assert.NotZero(t, curso.ID)
	assert.Equal(t, "Tiro", curso.Nombre)
	require.NotNil(t, curso.Descripcion)
	assert.Equal(t, "Prácticas & evaluación", *curso.Descripcion)
}

func TestCatalogoUpdateCursoPartial(t *testing.T) {
	svc := newCatalogo(t)
	ctx := context.Background()

	before, err := svc.GetCurso(ctx, 2)
	require.NoError(t, err)

	nombre := "Actualización 2024"
	after, err := svc.UpdateCurso(ctx, 2, models.CursoPatch{Nombre: &nombre})
	require.NoError(t, err)
	assert.Equal(t, nombre, after.Nombre)
	assert.Equal(t, before.Descripcion, after.Descripcion)

	blank := " "
	_, err = svc.UpdateCurso(ctx, 2, models.CursoPatch{Nombre: &blank})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestCatalogoDeleteCursoInUse(t *testing.T) {
	svc := newCatalogo(t)
	ctx := context.Background()

	err := svc.DeleteCurso(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Equal(t, "curso is used by 3 actividades", appErrors.FromError(err).Message)

	created, err := svc.CreateCurso(ctx, dto.CreateCursoRequest{Nombre: "Sin uso"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCurso(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteCurso(ctx, created.ID), appErrors.ErrNotFound)
}
