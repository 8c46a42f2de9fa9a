package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/internal/repository"
	"github.com/noah-isme/agentes-admin/internal/seed"
	"github.com/noah-isme/agentes-admin/pkg/config"
	"github.com/noah-isme/agentes-admin/pkg/database"
	"github.com/noah-isme/agentes-admin/pkg/logger"
)

func main() {
	var (
		synthetic   bool
		withView    bool
		seedValue   int64
		agentes     int
		monitores   int
		actividades int
		span        int
		timeout     time.Duration
	)

	flag.BoolVar(&synthetic, "synthetic", false, "Generate synthetic agentes, actividades and attendance")
	flag.BoolVar(&withView, "view", true, "Create the aggregated attendance view")
	flag.Int64Var(&seedValue, "seed", 1, "Random seed for synthetic data")
	flag.IntVar(&agentes, "agentes", 40, "Number of synthetic agentes")
	flag.IntVar(&monitores, "monitores", 6, "How many of the synthetic agentes are monitors")
	flag.IntVar(&actividades, "actividades", 30, "Number of synthetic actividades")
	flag.IntVar(&span, "span", 21, "Days before and after today activities are spread over")
	flag.DurationVar(&timeout, "timeout", time.Minute, "Overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, withView); err != nil {
		logr.Fatal("failed to migrate database", zap.Error(err))
	}
	if err := database.SeedReference(ctx, db); err != nil {
		logr.Fatal("failed to seed reference data", zap.Error(err))
	}
	logr.Info("schema and reference data ready", zap.String("driver", cfg.Database.Driver), zap.Bool("view", withView))

	if !synthetic {
		return
	}

	opts := seed.DefaultOptions(models.DateOf(time.Now()))
	opts.Seed = seedValue
	opts.Agentes = agentes
	opts.Monitores = monitores
	opts.Actividades = actividades
	opts.Span = span

	gen := seed.NewGenerator(
		repository.NewAgenteRepository(db),
		repository.NewActividadRepository(db),
		repository.NewAsistenciaRepository(db),
		logr,
	)
	if _, err := gen.Run(ctx, opts); err != nil {
		logr.Fatal("failed to generate synthetic data", zap.Error(err))
	}
}
