package main

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"pet-registry/internal/app"
	"pet-registry/internal/domain/microchips"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/platform/config"
	"pet-registry/internal/platform/httpclient"
	"pet-registry/internal/platform/logger"
)

// registry es lo que usan los comandos de consulta. Lo implementan el
// store local (vía servicios) y el cliente HTTP (--server).
type registry interface {
	ListPets(ctx context.Context, query string) ([]pets.Pet, error)
	GetPet(ctx context.Context, id int64) (*pets.Pet, error)
	FindPetByTag(ctx context.Context, tag string) (*pets.Pet, error)
	SafelyRemoveMicrochip(ctx context.Context, petID, microchipID int64) error
	ListMicrochips(ctx context.Context) ([]microchips.Microchip, error)
	GetMicrochip(ctx context.Context, id int64) (*microchips.Microchip, error)
}

// rootOptions son los flags globales.
type rootOptions struct {
	configFile string
	server     string
	timeout    time.Duration
	json       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "petregistry",
		Short:         "Pet and microchip registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file (env vars take precedence)")
	cmd.PersistentFlags().StringVar(&opts.server, "server", "", "base URL of a running API; queries go over HTTP instead of the local store")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", httpclient.DefaultTimeout, "HTTP timeout when --server is set")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "output as JSON")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newPetsCmd(opts))
	cmd.AddCommand(newChipsCmd(opts))
	return cmd
}

func loadConfig(opts *rootOptions, w io.Writer) (config.Config, logger.Logger, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Writer: w,
	})
	return cfg, log, nil
}

// openRegistry devuelve el registry y una función de cierre.
func openRegistry(cmd *cobra.Command, opts *rootOptions) (registry, func(), error) {
	if opts.server != "" {
		c, err := httpclient.New(opts.server, opts.timeout)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	}

	cfg, log, err := loadConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	if ephemeralStore(cfg) {
		log.Warn("db_dsn is empty: local store is in-memory and starts empty on every run", map[string]any{
			"driver": cfg.DBDriver,
			"hint":   "set DB_DSN to a sqlite file or use --server",
		})
	}
	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return localRegistry{pets: a.Pets, chips: a.Microchips}, func() { _ = a.Close() }, nil
}

func ephemeralStore(cfg config.Config) bool {
	switch cfg.DBDriver {
	case config.DriverMemory, config.DriverSQLite:
		return cfg.DBDSN == ""
	}
	return false
}

// localRegistry adapta los servicios a registry.
type localRegistry struct {
	pets  *pets.Service
	chips *microchips.Service
}

func (l localRegistry) ListPets(ctx context.Context, query string) ([]pets.Pet, error) {
	if query == "" {
		return l.pets.List(ctx)
	}
	return l.pets.SearchByNameOrSpecies(ctx, query)
}

func (l localRegistry) GetPet(ctx context.Context, id int64) (*pets.Pet, error) {
	return l.pets.GetByID(ctx, id)
}

func (l localRegistry) FindPetByTag(ctx context.Context, tag string) (*pets.Pet, error) {
	return l.pets.FindByExactTag(ctx, tag)
}

func (l localRegistry) SafelyRemoveMicrochip(ctx context.Context, petID, microchipID int64) error {
	return l.pets.SafelyRemoveMicrochip(ctx, petID, microchipID)
}

func (l localRegistry) ListMicrochips(ctx context.Context) ([]microchips.Microchip, error) {
	return l.chips.List(ctx)
}

func (l localRegistry) GetMicrochip(ctx context.Context, id int64) (*microchips.Microchip, error) {
	return l.chips.GetByID(ctx, id)
}
