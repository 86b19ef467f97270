package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/engimate/backend/internal/app/controllers"
	appMigrations "github.com/engimate/backend/internal/app/migrations"
	appRepos "github.com/engimate/backend/internal/app/repositories"
	appRoutes "github.com/engimate/backend/internal/app/routes"
	appServices "github.com/engimate/backend/internal/app/services"
	"github.com/engimate/backend/internal/config"
	"github.com/engimate/backend/internal/db"
	appMiddleware "github.com/engimate/backend/internal/middleware"
	pkgAuth "github.com/engimate/backend/internal/pkg/auth"
	"github.com/engimate/backend/internal/pkg/helpers"
	"github.com/engimate/backend/internal/pkg/logger"
	"github.com/engimate/backend/internal/seed"
)

// migrationsDir holds the development schema
const migrationsDir = "migrations"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware // nil when auth is disabled
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to the cutoff store and, in development, applies the schema migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if !cfg.Database.RunMigrations {
		return database, nil
	}
	if cfg.IsProduction() {
		lgr.Warn().Msg("run_migrations is ignored in production")
		return database, nil
	}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Database.SeedSampleData {
		// seeding errors are logged and do not block startup
		_ = seed.CreateSampleData(ctx, database.Pool, cfg.Predictor.DefaultYear, lgr)
	}

	return database, nil
}

// PredictorConfig converts the predictor section into the engine configuration
func PredictorConfig(cfg *config.Config) (appServices.PredictorConfig, error) {
	scorer, err := appServices.NewScorer(cfg.Predictor.Scoring)
	if err != nil {
		return appServices.PredictorConfig{}, err
	}

	return appServices.PredictorConfig{
		Caps: appServices.CapPolicy{
			Upper:     cfg.Predictor.UpperCap,
			Lower:     cfg.Predictor.LowerCap,
			Total:     cfg.Predictor.TotalCap,
			SafetyNet: cfg.Predictor.SafetyNet,
		},
		StateCeiling:    cfg.Predictor.StateRankCeiling,
		AllIndiaCeiling: cfg.Predictor.AllIndiaRankCeiling,
		DefaultYear:     cfg.Predictor.DefaultYear,
		Scorer:          scorer,
	}, nil
}

// RetryPolicy converts the predictor retry settings into the executor policy
func RetryPolicy(cfg *config.Config) appRepos.RetryPolicy {
	return appRepos.RetryPolicy{
		Attempts: cfg.Predictor.RetryAttempts,
		Backoff:  helpers.ParseDuration(cfg.Predictor.RetryBackoff, appRepos.DefaultRetryPolicy.Backoff),
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, store appRepos.Querier, pinger appControllers.Pinger, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	executor := appRepos.NewExecutor(RetryPolicy(cfg), helpers.ParseDuration(cfg.Database.QueryTimeout, 15*time.Second))
	deps.Repos = appRepos.NewRepositories(store, executor)

	predictorCfg, err := PredictorConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid predictor configuration: %w", err)
	}
	deps.Services = appServices.NewServices(deps.Repos, predictorCfg)

	if cfg.Auth.Enabled {
		verifier := pkgAuth.NewTokenVerifier(pkgAuth.JWTConfig{
			SecretKey:   cfg.Auth.Secret,
			TokenIssuer: cfg.Auth.Issuer,
		})
		deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(verifier)
	}

	deps.Controllers = appRoutes.Controllers{
		Preference: appControllers.NewPreferenceController(deps.Services.PreferenceService),
		College:    appControllers.NewCollegeController(deps.Services.CollegeService),
		Health:     appControllers.NewHealthController(pinger),
	}

	lgr.Info().
		Str("scoring", predictorCfg.Scorer.Name()).
		Int("defaultYear", predictorCfg.DefaultYear).
		Uint("retryAttempts", cfg.Predictor.RetryAttempts).
		Bool("auth", cfg.Auth.Enabled).
		Msg("Dependencies initialized")

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterJSONFieldNames()

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.AccessLog(),
		appMiddleware.Recovery(),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
