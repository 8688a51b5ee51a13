package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/phantasyphish/setlist-api/external/setlistprovider"
	"github.com/phantasyphish/setlist-api/external/webhook"
	"github.com/phantasyphish/setlist-api/internal/config"
	"github.com/phantasyphish/setlist-api/internal/domain/draft"
	"github.com/phantasyphish/setlist-api/internal/domain/show"
	"github.com/phantasyphish/setlist-api/internal/domain/song"
	"github.com/phantasyphish/setlist-api/internal/infrastructure/repository/memory"
	"github.com/phantasyphish/setlist-api/internal/infrastructure/repository/postgres"
	"github.com/phantasyphish/setlist-api/internal/interfaces/httpapi"
	"github.com/phantasyphish/setlist-api/internal/platform/cache"
	idgen "github.com/phantasyphish/setlist-api/internal/platform/id"
	"github.com/phantasyphish/setlist-api/internal/platform/logging"
	"github.com/phantasyphish/setlist-api/internal/platform/resilience"
	"github.com/phantasyphish/setlist-api/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. The returned close func releases storage handles
// and must be called after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		songRepo     song.Repository
		showRepo     show.Repository
		draftRepo    draft.Repository
		closeStorage = func() error { return nil }
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		songRepo = postgres.NewSongRepository(db)
		showRepo = postgres.NewShowRepository(db)
		draftRepo = postgres.NewDraftRepository(db)
		closeStorage = db.Close
		logger.Info("storage ready", "driver", config.StoragePostgres, "db", dbNameFromURL(cfg.DBURL))
	default:
		songs := memory.NewSongRepository()
		shows := memory.NewShowRepository()
		if err := memory.Seed(ctx, songs, shows); err != nil {
			return nil, nil, fmt.Errorf("seed memory storage: %w", err)
		}
		songRepo = songs
		showRepo = shows
		draftRepo = memory.NewDraftRepository()
		logger.Info("storage ready", "driver", config.StorageMemory)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	} else {
		store = cache.NewStore(0)
	}

	var publisher usecase.WebhookPublisher
	if cfg.WebhookEnabled {
		p, err := webhook.NewPublisher(webhook.PublisherConfig{
			TargetURL: cfg.WebhookTargetURL,
			Token:     cfg.WebhookToken,
			Timeout:   cfg.WebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
			},
		}, logger)
		if err != nil {
			_ = closeStorage()
			return nil, nil, fmt.Errorf("build webhook publisher: %w", err)
		}
		publisher = p
	}

	var provider usecase.SetlistProvider
	if cfg.ProviderEnabled {
		c, err := setlistprovider.NewClient(setlistprovider.ClientConfig{
			BaseURL:    cfg.ProviderBaseURL,
			APIKey:     cfg.ProviderAPIKey,
			Timeout:    cfg.ProviderTimeout,
			MaxRetries: cfg.ProviderMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ProviderCircuitEnabled,
				FailureThreshold: cfg.ProviderCircuitFailureCount,
				OpenTimeout:      cfg.ProviderCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ProviderCircuitHalfOpenMaxReq,
			},
		})
		if err != nil {
			_ = closeStorage()
			return nil, nil, fmt.Errorf("build setlist provider client: %w", err)
		}
		provider = c
	}

	songSvc := usecase.NewSongService(songRepo)
	scoringSvc := usecase.NewScoringService(draftRepo, showRepo, songRepo, publisher, logger)
	showSvc := usecase.NewShowService(showRepo, scoringSvc)
	draftSvc := usecase.NewDraftService(draftRepo, showRepo, songRepo, scoringSvc, idgen.NewRandomGenerator())
	leaderboardSvc := usecase.NewLeaderboardService(draftRepo, store)
	syncSvc := usecase.NewSetlistSyncService(showSvc, provider, logger)
	syncSvc.SetMaxFetches(cfg.SyncMaxFetches)

	handler := httpapi.NewHandler(songSvc, showSvc, draftSvc, scoringSvc, leaderboardSvc, syncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closeStorage()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeStorage, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", cfg.DBURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
