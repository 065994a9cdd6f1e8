package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/powerlora/internal/catalog"
	"github.com/specialistvlad/powerlora/internal/config"
	"github.com/specialistvlad/powerlora/internal/ctxlog"
	"github.com/specialistvlad/powerlora/internal/hcl"
	"github.com/specialistvlad/powerlora/internal/registry"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	logger   *slog.Logger
	registry *registry.Registry
	catalog  catalog.Service
	loader   config.Loader
	settings *config.Settings
}

// NewApp is the constructor for the main application. Logs are written to
// logW. With no modules given, the core modules are registered.
func NewApp(logW io.Writer, settings *config.Settings, modules ...registry.Module) (*App, error) {
	logger := newLogger(settings.Log.Level, settings.Log.Format, logW)
	logger.Debug("Logger configured successfully.")

	svc, err := newCatalog(settings.Catalog)
	if err != nil {
		return nil, err
	}

	// Create and populate the registry with Go handlers.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "classes", reg.Classes())

	return &App{
		logger:   logger,
		registry: reg,
		catalog:  svc,
		loader:   hcl.NewLoader(),
		settings: settings,
	}, nil
}

// newCatalog builds the catalog described by s: the configured folders,
// followed by the manifest's entries when one is set.
func newCatalog(s config.CatalogSettings) (catalog.Service, error) {
	folders := catalog.NewFolders(s.Roots,
		catalog.WithExtensions(s.Extensions...),
		catalog.WithExclude(s.Exclude...),
	)
	if s.Manifest == "" {
		return folders, nil
	}
	static, err := catalog.LoadManifest(s.Manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog manifest: %w", err)
	}
	return catalog.Chain{folders, static}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Catalog returns the application's catalog.
func (a *App) Catalog() catalog.Service {
	return a.catalog
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
