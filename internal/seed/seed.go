// Package seed fills a store with synthetic agentes, actividades and
// attendance for demos and local development.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/models"
)

var (
	nombres   = []string{"Ana", "Luis", "Marta", "Jorge", "Lucía", "Pablo", "Elena", "Sergio", "Carmen", "Raúl", "Irene", "Diego"}
	apellidos = []string{"García", "Martínez", "López", "Sánchez", "Pérez", "Gómez", "Ruiz", "Díaz", "Moreno", "Álvarez", "Romero", "Navarro"}
	secciones = []string{"Seguridad", "Atestados"}
	grupos    = []string{"G-1", "G-2"}
	notas     = []string{"Aula 1", "Galería de tiro", "Pista exterior", "Traer uniforme", ""}
)

type agenteWriter interface {
	ExistsByNIP(ctx context.Context, nip string) (bool, error)
	Create(ctx context.Context, agente *models.Agente) error
}

type actividadWriter interface {
	Create(ctx context.Context, actividad *models.Actividad) error
}

type asistenciaWriter interface {
	Assign(ctx context.Context, nip string, actividadID int64) error
	SetAsistencia(ctx context.Context, nip string, actividadID int64, asistencia *bool) error
}

// Options sizes the generated data set.
type Options struct {
	Seed        int64
	Agentes     int
	Monitores   int
	Actividades int
	// Span is how many days before and after Today activities are spread.
	Span  int
	Today models.Date
	// Turnos and Cursos are the reference ids activities draw from.
	Turnos []int64
	Cursos []int64
}

// DefaultOptions matches the reference catalogue seeded by the schema loader.
func DefaultOptions(today models.Date) Options {
	return Options{
		Seed:        1,
		Agentes:     40,
		Monitores:   6,
		Actividades: 30,
		Span:        21,
		Today:       today,
		Turnos:      []int64{1, 2, 3},
		Cursos:      []int64{1, 2, 3},
	}
}

// Summary counts what was written.
type Summary struct {
	Agentes      int
	Actividades  int
	Asignaciones int
}

// Generator writes synthetic rows through the repositories.
type Generator struct {
	agentes     agenteWriter
	actividades actividadWriter
	asistencias asistenciaWriter
	logger      *zap.Logger
}

// NewGenerator constructs a Generator.
func NewGenerator(agentes agenteWriter, actividades actividadWriter, asistencias asistenciaWriter, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{agentes: agentes, actividades: actividades, asistencias: asistencias, logger: logger}
}

// Run generates the data set described by opts. The same seed and options
// produce the same rows. Agentes whose NIP already exists are kept as they
// are and still take part in assignments.
func (g *Generator) Run(ctx context.Context, opts Options) (Summary, error) {
	var summary Summary
	if opts.Agentes <= 0 || len(opts.Turnos) == 0 || len(opts.Cursos) == 0 {
		return summary, fmt.Errorf("seed options need agentes, turnos and cursos")
	}
	if opts.Today.IsZero() {
		opts.Today = models.DateOf(time.Now())
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	nips := make([]string, 0, opts.Agentes)
	var monitores []string
	for i := 0; i < opts.Agentes; i++ {
		agente := g.agente(rng, i, i < opts.Monitores)
		nips = append(nips, agente.NIP)
		if agente.EsMonitor {
			monitores = append(monitores, agente.NIP)
		}

		exists, err := g.agentes.ExistsByNIP(ctx, agente.NIP)
		if err != nil {
			return summary, fmt.Errorf("check agente %s: %w", agente.NIP, err)
		}
		if exists {
			continue
		}
		if err := g.agentes.Create(ctx, agente); err != nil {
			return summary, fmt.Errorf("create agente %s: %w", agente.NIP, err)
		}
		summary.Agentes++
	}

	for i := 0; i < opts.Actividades; i++ {
		offset := 0
		if opts.Span > 0 {
			offset = rng.Intn(2*opts.Span+1) - opts.Span
		}
		actividad := &models.Actividad{
			Fecha:   opts.Today.AddDays(offset),
			TurnoID: opts.Turnos[rng.Intn(len(opts.Turnos))],
			CursoID: opts.Cursos[rng.Intn(len(opts.Cursos))],
			Notas:   models.NullableText(notas[rng.Intn(len(notas))]),
		}
		if len(monitores) > 0 {
			monitor := monitores[rng.Intn(len(monitores))]
			actividad.MonitorNIP = &monitor
		}
		if err := g.actividades.Create(ctx, actividad); err != nil {
			return summary, fmt.Errorf("create actividad: %w", err)
		}
		summary.Actividades++

		n, err := g.assign(ctx, rng, actividad, nips, opts.Today)
		summary.Asignaciones += n
		if err != nil {
			return summary, err
		}
	}

	g.logger.Info("synthetic data generated",
		zap.Int64("seed", opts.Seed),
		zap.Int("agentes", summary.Agentes),
		zap.Int("actividades", summary.Actividades),
		zap.Int("asignaciones", summary.Asignaciones),
	)
	return summary, nil
}

func (g *Generator) agente(rng *rand.Rand, i int, monitor bool) *models.Agente {
	agente := &models.Agente{
		NIP:       fmt.Sprintf("S%04d", i+1),
		Nombre:    nombres[rng.Intn(len(nombres))],
		Apellido1: apellidos[rng.Intn(len(apellidos))],
		Seccion:   models.NullableText(secciones[rng.Intn(len(secciones))]),
		Grupo:     models.NullableText(grupos[rng.Intn(len(grupos))]),
		Activo:    rng.Intn(10) > 0,
		EsMonitor: monitor,
	}
	if rng.Intn(4) > 0 {
		agente.Apellido2 = models.NullableText(apellidos[rng.Intn(len(apellidos))])
	}
	if monitor {
		agente.Activo = true
	}
	agente.CompletarNombre()
	return agente
}

// assign links a random subset of agentes. Attendance is only recorded for
// activities that are not in the future.
func (g *Generator) assign(ctx context.Context, rng *rand.Rand, actividad *models.Actividad, nips []string, today models.Date) (int, error) {
	size := 3 + rng.Intn(6)
	if size > len(nips) {
		size = len(nips)
	}
	count := 0
	for _, idx := range rng.Perm(len(nips))[:size] {
		nip := nips[idx]
		if err := g.asistencias.Assign(ctx, nip, actividad.ID); err != nil {
			return count, fmt.Errorf("assign %s to actividad %d: %w", nip, actividad.ID, err)
		}
		count++

		if actividad.Fecha.Compare(today) > 0 {
			continue
		}
		var asistencia *bool
		switch rng.Intn(10) {
		case 0:
			// left pending
		case 1, 2:
			v := false
			asistencia = &v
		default:
			v := true
			asistencia = &v
		}
		if asistencia == nil {
			continue
		}
		if err := g.asistencias.SetAsistencia(ctx, nip, actividad.ID, asistencia); err != nil {
			return count, fmt.Errorf("record asistencia %s/%d: %w", nip, actividad.ID, err)
		}
	}
	return count, nil
}
