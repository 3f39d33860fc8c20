package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/crickstat/xfactor/internal/config"
	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/domain/match"
	"github.com/crickstat/xfactor/internal/domain/performance"
	"github.com/crickstat/xfactor/internal/domain/player"
	"github.com/crickstat/xfactor/internal/infrastructure/repository/cache"
	"github.com/crickstat/xfactor/internal/infrastructure/repository/memory"
	"github.com/crickstat/xfactor/internal/infrastructure/repository/postgres"
	"github.com/crickstat/xfactor/internal/infrastructure/source/cricinfo"
	"github.com/crickstat/xfactor/internal/interfaces/httpapi"
	basecache "github.com/crickstat/xfactor/internal/platform/cache"
	"github.com/crickstat/xfactor/internal/platform/dsn"
	idgen "github.com/crickstat/xfactor/internal/platform/id"
	"github.com/crickstat/xfactor/internal/platform/logging"
	"github.com/crickstat/xfactor/internal/platform/resilience"
	"github.com/crickstat/xfactor/internal/usecase"
)

// Application holds the wired services shared by the api and worker binaries.
type Application struct {
	Config config.Config

	RankingService *usecase.RankingService
	RefreshService *usecase.RefreshService

	db     *sqlx.DB
	logger *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	gen := idgen.NewRandomGenerator()

	var (
		db           *sqlx.DB
		players      player.Repository
		matches      match.Repository
		careers      career.Repository
		performances performance.Repository
	)

	if cfg.DBURL != "" {
		opened, err := openDatabase(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = opened
		players = postgres.NewPlayerRepository(db)
		matches = postgres.NewMatchRepository(db, gen)
		careers = postgres.NewCareerRepository(db, gen)
		performances = postgres.NewPerformanceRepository(db, gen)
		logger.Info("storage backend", "kind", "postgres", "db_name", dsn.DatabaseName(cfg.DBURL))
	} else {
		perfRepo := memory.NewPerformanceRepository()
		players = memory.NewPlayerRepository()
		matches = memory.NewMatchRepository(nil)
		careers = memory.NewCareerRepository(gen, perfRepo)
		performances = perfRepo
		logger.Info("storage backend", "kind", "memory")
	}

	if cfg.CacheEnabled {
		careers = cache.NewCareerRepository(careers, basecache.NewStore(cfg.CacheTTL))
	}

	source := cricinfo.NewClient(cricinfo.ClientConfig{
		BaseURL:    cfg.CricinfoBaseURL,
		Timeout:    cfg.CricinfoTimeout,
		MaxRetries: cfg.CricinfoMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CricinfoCircuitEnabled,
			FailureThreshold: cfg.CricinfoCircuitFailures,
			OpenTimeout:      cfg.CricinfoCircuitOpenFor,
			HalfOpenMaxReq:   cfg.CricinfoCircuitHalfOpen,
		},
	})

	identitySvc := usecase.NewIdentityService(players, logger)
	ingestSvc := usecase.NewIngestService(matches, performances, careers, logger)
	statsSvc := usecase.NewStatsService(performances, careers, logger)
	scoreSvc := usecase.NewScoreService(logger)
	rankingSvc := usecase.NewRankingService(careers, logger)
	refreshSvc := usecase.NewRefreshService(
		source,
		identitySvc,
		ingestSvc,
		statsSvc,
		scoreSvc,
		careers,
		cfg.RefreshMaxWorkers,
		logger,
	)

	return &Application{
		Config:         cfg,
		RankingService: rankingSvc,
		RefreshService: refreshSvc,
		db:             db,
		logger:         logger,
	}, nil
}

func (a *Application) NewHTTPServer() (*http.Server, error) {
	handler := httpapi.NewHandler(a.RankingService, a.RefreshService, a.logger)
	router := httpapi.NewRouter(handler, a.logger, a.Config.InternalJobToken)

	server := &http.Server{
		Addr:         a.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dbURL := dsn.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dsn.DatabaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}
