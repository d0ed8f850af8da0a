package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/edutech/internal/app/controllers"
	appMigrations "github.com/yigit/edutech/internal/app/migrations"
	"github.com/yigit/edutech/internal/app/models"
	appRepos "github.com/yigit/edutech/internal/app/repositories"
	appRoutes "github.com/yigit/edutech/internal/app/routes"
	appServices "github.com/yigit/edutech/internal/app/services"
	"github.com/yigit/edutech/internal/config"
	"github.com/yigit/edutech/internal/db"
	"github.com/yigit/edutech/internal/domain/ledger"
	appMiddleware "github.com/yigit/edutech/internal/middleware"
	"github.com/yigit/edutech/internal/pkg/cache"
	"github.com/yigit/edutech/internal/pkg/currency"
	"github.com/yigit/edutech/internal/pkg/logger"
	"github.com/yigit/edutech/internal/pkg/websocket"
	"github.com/yigit/edutech/internal/seed"
)

// DefaultConfigPath is read when no other path is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Cache          cache.Cache
	Hub            *websocket.Hub
	Currency       *currency.Currency
	Engine         *ledger.Engine
	CatalogService appServices.CatalogService
	UserService    appServices.UserService
	WalletService  appServices.WalletService
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger

	redis *cache.RedisCache
}

// Close releases the connections opened by BuildDependencies
func (d *Dependencies) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger configures the global logger from cfg
func SetupLogger(cfg *config.Config) zerolog.Logger {
	return logger.Configure(logger.Config{
		Level:   logger.ParseLevel(cfg.Logging.Level),
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "edutech",
	})
}

// SetupDatabase connects to PostgreSQL and applies pending migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	if err := RunMigrations(ctx, cfg, database, lgr); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// RunMigrations applies every pending file of the configured migrations directory
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SeedDatabase creates the default catalog and demo users
func SeedDatabase(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(database)
	return seed.CreateDefaultData(ctx, repos.CourseRepository, repos.UserRepository, lgr)
}

// NewCurrency builds the wallet currency from cfg
func NewCurrency(cfg *config.Config) (*currency.Currency, error) {
	return currency.New(cfg.Wallet.CurrencyCode)
}

// Plans turns the configured subscription plans into priced models
func Plans(cfg *config.Config) []models.Plan {
	plans := make([]models.Plan, 0, len(cfg.Subscription.Plans))
	for _, p := range cfg.Subscription.Plans {
		plans = append(plans, models.Plan{
			Name:  models.PlanType(p.Name),
			Price: p.PlanPrice(),
		})
	}
	return plans
}

// BuildDependencies initializes application repositories, services, and controllers.
// The hub is created but not started; the caller runs it.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	cur, err := NewCurrency(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet currency: %w", err)
	}
	deps.Currency = cur

	deps.Repos = appRepos.NewRepositories(database)

	deps.Cache = cache.NopCache{}
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedisCache(cfg.Redis.URL, "edutech:")
		if err != nil {
			lgr.Warn().Err(err).Msg("Redis unavailable, catalog cache disabled")
		} else {
			deps.redis = rc
			deps.Cache = rc
			lgr.Info().Msg("Catalog cache enabled")
		}
	}

	catalogTTL, _ := time.ParseDuration(cfg.Redis.CatalogTTL)
	processingDelay, _ := time.ParseDuration(cfg.Wallet.ProcessingDelay)

	deps.Hub = websocket.NewHub(lgr)
	deps.Engine = ledger.NewEngine(ledger.Options{Policy: ledger.AccessPolicy(cfg.Wallet.SubscriptionAccess)})

	// Initialize services
	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.CourseRepository,
		deps.Repos.UserRepository,
		deps.Cache,
		catalogTTL,
		lgr.With().Str("service", "catalog").Logger(),
	)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		cfg.StartingBalance(),
		lgr.With().Str("service", "user").Logger(),
	)
	deps.WalletService = appServices.NewWalletService(
		deps.Repos.WalletRepository,
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		deps.Engine,
		deps.Hub,
		appServices.WalletServiceConfig{
			ProcessingDelay: processingDelay,
			Plans:           Plans(cfg),
		},
		lgr.With().Str("service", "wallet").Logger(),
	)

	// Initialize controllers
	checks := map[string]appControllers.Pinger{"database": database}
	if deps.redis != nil {
		checks["redis"] = deps.redis
	}
	deps.Controllers = appRoutes.Controllers{
		Course:  appControllers.NewCourseController(deps.CatalogService, cur),
		Teacher: appControllers.NewTeacherController(deps.CatalogService, cur),
		User:    appControllers.NewUserController(deps.UserService, cur),
		Wallet:  appControllers.NewWalletController(
			deps.WalletService,
			deps.UserService,
			cur,
			websocket.NewHandler(deps.Hub, lgr.With().Str("component", "websocket").Logger()),
		),
		Subscription: appControllers.NewSubscriptionController(deps.WalletService, cur),
		Health:       appControllers.NewHealthController(checks),
	}

	lgr.Info().
		Str("accessPolicy", cfg.Wallet.SubscriptionAccess).
		Dur("processingDelay", processingDelay).
		Str("currency", cur.Code()).
		Msg("Dependencies initialized")
	return deps, nil
}

// SetupRouter creates the gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(lgr))
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router, deps.Controllers)
	return router
}
