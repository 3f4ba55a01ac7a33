package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"hrconsole/internal/cache"
	"hrconsole/internal/config"
	"hrconsole/internal/logging"
	"hrconsole/internal/sheets"
	"hrconsole/internal/source"
	"hrconsole/internal/views"
)

// App is the wired object graph shared by the server and the CLI.
type App struct {
	Config   *config.AppConfig
	DataDir  string
	Log      *logging.Logger
	Registry *sheets.Registry
	Source   source.Source
	Cache    *cache.Cache
	Views    *views.Service

	closers []io.Closer
}

// Option adjusts how an App is built.
type Option func(*options)

type options struct {
	src    source.Source
	logger *logging.Logger
}

// WithSource uses src instead of the configured row source.
func WithSource(src source.Source) Option {
	return func(o *options) { o.src = src }
}

// WithLogger sets the logger. The default writes to stderr at the configured level.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds the app for cfg. Relative paths resolve against baseDir.
func New(cfg *config.AppConfig, baseDir string, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = logging.New(os.Stderr, logging.ParseLevel(cfg.Log.Level))
	}

	if o.src == nil {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}

	dataDir, err := config.EnsureDataDir(cfg, baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	a := &App{
		Config:   cfg,
		DataDir:  dataDir,
		Log:      logger,
		Registry: sheets.Default(),
	}

	a.Source = o.src
	if a.Source == nil {
		src, closer, err := NewSource(cfg, baseDir)
		if err != nil {
			return nil, err
		}
		a.Source = src
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	}

	persister, err := NewPersister(cfg, dataDir)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Cache = cache.New(a.Source, a.Registry.Names(),
		cache.WithPersister(persister),
		cache.WithMaxAge(time.Duration(cfg.Cache.MaxAgeSeconds)*time.Second),
		cache.WithSheetTimeout(time.Duration(cfg.Source.TimeoutSeconds)*time.Second),
		cache.WithLogger(logger),
	)
	a.closers = append(a.closers, a.Cache)
	a.Views = views.NewService(a.Cache, a.Registry)

	logger.Info("[App] source=%s cache=%s data=%s", cfg.Source.Kind, cfg.Cache.Backend, dataDir)
	return a, nil
}

// NewSource builds the configured row source. The closer is nil when the
// source holds nothing open.
func NewSource(cfg *config.AppConfig, baseDir string) (source.Source, io.Closer, error) {
	switch cfg.Source.Kind {
	case config.SourceHTTP:
		src, err := source.NewHTTPSource(cfg.Source.BaseURL,
			source.WithSheetParam(cfg.Source.SheetParam),
			source.WithTimeout(time.Duration(cfg.Source.TimeoutSeconds)*time.Second),
		)
		if err != nil {
			return nil, nil, err
		}
		return src, nil, nil
	case config.SourceWorkbook:
		path := cfg.Source.WorkbookPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		wb, err := source.OpenWorkbook(path)
		if err != nil {
			return nil, nil, err
		}
		return wb, wb, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

// NewPersister builds the configured snapshot store under dataDir.
func NewPersister(cfg *config.AppConfig, dataDir string) (cache.Persister, error) {
	switch cfg.Cache.Backend {
	case config.BackendFile:
		name := cfg.Cache.FileName
		if name == "" {
			name = cache.DefaultFileName
		}
		return cache.NewFilePersister(filepath.Join(dataDir, name)), nil
	case config.BackendSQLite:
		name := cfg.Cache.FileName
		if name == "" || filepath.Ext(name) == ".json" {
			name = cache.DefaultDBName
		}
		return cache.NewSQLitePersister(filepath.Join(dataDir, name))
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// Close releases the cache and the source, in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
