package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edgedesk/edgedesk/config"
	"github.com/edgedesk/edgedesk/internal/api"
	"github.com/edgedesk/edgedesk/internal/cache"
	"github.com/edgedesk/edgedesk/internal/dataflows"
	"github.com/edgedesk/edgedesk/internal/scan"
	"github.com/edgedesk/edgedesk/internal/session"
)

// App wires the long-lived collaborators: config manager, service
// client, repositories, caches and dataflow clients. Both the one-shot
// subcommands and the interactive dashboard run on top of one App.
type App struct {
	ConfigMgr *config.Manager
	Client    *api.Client
	Results   *cache.ResultCache
	Opps      *scan.OpportunityRepository
	Verify    *scan.VerificationRepository
	Session   session.Provider
	Flows     *dataflows.DataFlowInterface
}

// NewApp builds the application from the config file at configPath
// (empty means the default location).
func NewApp(configPath string) (*App, error) {
	mgr, err := config.NewManager(config.WithConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	setupLogging(cfg.Debug)

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.BaseURL, cfg.RequestTimeout())

	sess := session.NewEnvProvider()
	if s := sess.CurrentSession(); s.Authenticated() {
		client.SetAPIKey(s.APIKey)
	}
	sess.OnSessionChange(func(s session.Session) {
		client.SetAPIKey(s.APIKey)
	})

	results := cache.NewResultCache(cfg.DataCacheDir, cfg.CacheTTL(), cfg.CacheEnabled)

	flows := dataflows.NewDataFlowInterface(&dataflows.Config{
		DataCacheDir: cfg.DataCacheDir,
		CacheEnabled: cfg.CacheEnabled,
	})

	return &App{
		ConfigMgr: mgr,
		Client:    client,
		Results:   results,
		Opps:      scan.NewOpportunityRepository(client, results),
		Verify:    scan.NewVerificationRepository(client, results),
		Session:   sess,
		Flows:     flows,
	}, nil
}

// Config returns the current configuration snapshot.
func (a *App) Config() config.Config {
	return a.ConfigMgr.Get()
}

func setupLogging(debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
