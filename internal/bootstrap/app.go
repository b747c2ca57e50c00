package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"atscheck-backend/internal/documents"
	"atscheck-backend/internal/export"
	"atscheck-backend/internal/llm"
	"atscheck-backend/internal/llm/gemini"
	"atscheck-backend/internal/llm/openai"
	"atscheck-backend/internal/session"
	"atscheck-backend/internal/shared/config"
	"atscheck-backend/internal/shared/server"
	"atscheck-backend/internal/shared/storage/db"
	"atscheck-backend/internal/shared/storage/object"
	"atscheck-backend/internal/shared/storage/object/local"
	"atscheck-backend/internal/shared/storage/object/s3"
	"atscheck-backend/internal/shared/telemetry"
	"atscheck-backend/internal/usage"
)

// App is the wired application.
type App struct {
	Config config.Config
	Router *gin.Engine

	database *sql.DB
}

// New loads configuration and wires every component. A missing LLM
// credential is the only fatal configuration error.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := newObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	usageStore, database, err := newUsageStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	quota := usage.NewService(usageStore, cfg.AnalysisLimit)
	sessions := session.NewService(session.NewStore(), client, quota)
	docs := documents.NewService(documents.NewRepo(), store, sessions)

	router := server.NewRouter(cfg,
		documents.NewHandler(docs),
		session.NewHandler(sessions),
		export.NewHandler(sessions),
		usage.NewHandler(quota),
	)

	telemetry.Info("app.ready", map[string]any{
		"env":          cfg.Env,
		"llm_provider": cfg.LLMProvider,
		"llm_model":    cfg.LLMModel,
		"object_store": cfg.ObjectStoreType,
		"database":     database != nil,
	})

	return &App{Config: cfg, Router: router, database: database}, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.database != nil {
		a.database.Close()
	}
}

func newObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("init s3 store: %w", err)
		}
		return store, nil
	default:
		return local.New(cfg.LocalStoreDir), nil
	}
}

func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	default:
		return gemini.NewClient(ctx, cfg.GoogleAPIKey, cfg.LLMModel)
	}
}

// newUsageStore picks Postgres when DATABASE_URL is set, in-memory
// otherwise. Migrations run at startup on the Postgres path.
func newUsageStore(ctx context.Context, cfg config.Config) (usage.Store, *sql.DB, error) {
	if cfg.DatabaseURL == "" {
		return usage.NewMemoryStore(), nil, nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.RunMigrations(ctx, database); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	return usage.NewPGStore(database), database, nil
}
