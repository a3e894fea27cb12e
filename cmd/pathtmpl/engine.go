package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/config"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/store"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/store/sqlite"
)

// settings are the global flags after parsing
type settings struct {
	ConfigPath   string
	EntitiesPath string
	StoplistPath string
	NEREndpoint  string
	DBPath       string
	Workers      int
	Logger       *slog.Logger
}

func settingsFrom(c *cli.Context) (settings, error) {
	logger, err := newLogger(c.App.ErrWriter, c.String("log-level"), c.Bool("quiet"))
	if err != nil {
		return settings{}, err
	}
	return settings{
		ConfigPath:   c.String("config"),
		EntitiesPath: c.String("entities"),
		StoplistPath: c.String("stoplist"),
		NEREndpoint:  c.String("ner-endpoint"),
		DBPath:       c.String("db"),
		Workers:      c.Int("workers"),
		Logger:       logger,
	}, nil
}

func newLogger(w io.Writer, level string, quiet bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	if quiet {
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// engine is a configured templater plus its optional ledger
type engine struct {
	templater *pathtmpl.Templater
	store     store.Store // nil without a ledger
	ids       *store.IDs
	workers   int
	log       *slog.Logger
}

func (e *engine) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// record writes results to the ledger when one is configured
func (e *engine) record(ctx context.Context, results []pathtmpl.Result) error {
	if e.store == nil {
		return nil
	}
	now := time.Now()
	for _, res := range results {
		obs := store.Observation{
			ID:       e.ids.New(now),
			RawURL:   res.RawURL,
			Template: res.Template,
			SeenAt:   now,
		}
		if err := e.store.Record(ctx, obs); err != nil {
			return fmt.Errorf("record %s: %w", res.RawURL, err)
		}
	}
	return nil
}

func buildEngine(ctx context.Context, s settings) (*engine, error) {
	cfg := &config.Config{}
	if s.ConfigPath != "" {
		loaded, err := config.Load(s.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	// flags win over the config file
	if s.EntitiesPath != "" {
		cfg.Entities = s.EntitiesPath
	}
	if s.StoplistPath != "" {
		cfg.Stoplist = s.StoplistPath
	}
	if s.NEREndpoint != "" {
		cfg.NER.Endpoint = s.NEREndpoint
	}
	if s.DBPath != "" {
		cfg.DB = s.DBPath
	}
	if s.Workers != 0 {
		cfg.Workers = s.Workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	components, err := config.LoaderFor(cfg).Load()
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	e := &engine{
		templater: pathtmpl.New(pathtmpl.Options{
			Recognizer: components.Recognizer,
			Stoplist:   components.Stoplist,
			Logger:     logger,
		}),
		ids:     store.NewIDs(),
		workers: workers,
		log:     logger,
	}

	if cfg.DB != "" {
		st, err := sqlite.OpenSQLite(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.store = st
	}

	logger.Debug("engine ready",
		"entities", cfg.Entities,
		"stoplist", cfg.Stoplist,
		"ner_endpoint", cfg.NER.Endpoint,
		"db", cfg.DB,
		"workers", workers)
	return e, nil
}
