// Package app arma el grafo de dependencias según la config: store, transactor y servicios.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	mem "pet-registry/internal/adapters/storage/memory"
	pg "pet-registry/internal/adapters/storage/postgres"
	lite "pet-registry/internal/adapters/storage/sqlite"
	"pet-registry/internal/domain/microchips"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/platform/config"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/platform/metrics"
	"pet-registry/internal/ports/tx"
	"pet-registry/internal/router"
)

type App struct {
	Config     config.Config
	Log        logger.Logger
	Metrics    *metrics.Metrics
	Pets       *pets.Service
	Microchips *microchips.Service

	closers []func() error
}

type stores struct {
	pets    pets.Repository
	chips   microchips.Repository
	tx      tx.Transactor
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	chipSvc := microchips.NewService(st.chips, microchips.WithLogger(log))
	petSvc := pets.NewService(st.pets, chipSvc,
		pets.WithLogger(log),
		pets.WithTransactor(st.tx),
	)

	log.Info("store ready", map[string]any{"driver": cfg.DBDriver})

	return &App{
		Config:     cfg,
		Log:        log,
		Metrics:    metrics.New("petregistry"),
		Pets:       petSvc,
		Microchips: chipSvc,
		closers:    st.closers,
	}, nil
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		s := mem.NewStore()
		return stores{pets: mem.NewPetRepo(s), chips: mem.NewMicrochipRepo(s), tx: s}, nil

	case config.DriverSQLite:
		var (
			db  *lite.DB
			err error
		)
		if cfg.DBDSN == "" {
			db, err = lite.OpenMemory(ctx)
		} else {
			db, err = lite.Open(ctx, cfg.DBDSN)
		}
		if err != nil {
			return stores{}, fmt.Errorf("open sqlite: %w", err)
		}
		return stores{
			pets:    lite.NewPetsRepo(db),
			chips:   lite.NewMicrochipsRepo(db),
			tx:      db,
			closers: []func() error{db.Close},
		}, nil

	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return stores{}, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.DBAutoSchema {
			if err := db.EnsureSchema(ctx); err != nil {
				db.Close()
				return stores{}, err
			}
		}
		return stores{
			pets:    pg.NewPetsRepo(db),
			chips:   pg.NewMicrochipsRepo(db),
			tx:      db,
			closers: []func() error{func() error { db.Close(); return nil }},
		}, nil

	default:
		return stores{}, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}

func (a *App) Handler() http.Handler {
	return router.NewRouter(router.Options{
		Pets:       a.Pets,
		Microchips: a.Microchips,
		Logger:     a.Log,
		Metrics:    a.Metrics,
	})
}

func (a *App) Close() error {
	var errList []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
