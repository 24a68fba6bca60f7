package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/studentdesk/internal/app/controllers"
	"github.com/yigit/studentdesk/internal/app/directory"
	appMigrations "github.com/yigit/studentdesk/internal/app/migrations"
	appRepos "github.com/yigit/studentdesk/internal/app/repositories"
	"github.com/yigit/studentdesk/internal/app/repositories/sqlite"
	appRoutes "github.com/yigit/studentdesk/internal/app/routes"
	appServices "github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/config"
	"github.com/yigit/studentdesk/internal/db"
	appMiddleware "github.com/yigit/studentdesk/internal/middleware"
	pkgAuth "github.com/yigit/studentdesk/internal/pkg/auth"
	"github.com/yigit/studentdesk/internal/pkg/events"
	"github.com/yigit/studentdesk/internal/pkg/helpers"
	"github.com/yigit/studentdesk/internal/pkg/logger"
	"github.com/yigit/studentdesk/internal/pkg/websocket"
	"github.com/yigit/studentdesk/internal/seed"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Store is the record store selected by database.driver
type Store struct {
	Driver   string
	Students appRepos.StudentStore
	Users    appRepos.UserStore

	pg   *db.PostgresDB
	lite *sql.DB
}

// TxFn runs against stores bound to one transaction
type TxFn func(ctx context.Context, students appRepos.StudentStore, users appRepos.UserStore) error

// WithTransaction runs fn in a single transaction on Postgres. SQLite stores
// share one connection, so fn runs directly against them.
func (s *Store) WithTransaction(ctx context.Context, fn TxFn) error {
	if s.pg == nil {
		return fn(ctx, s.Students, s.Users)
	}
	return s.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := appRepos.NewRepositories(tx)
		return fn(ctx, repos.Students, repos.Users)
	})
}

// Close releases the database connection
func (s *Store) Close() {
	if s.pg != nil {
		s.pg.Close()
	}
	if s.lite != nil {
		s.lite.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	JWTService       *pkgAuth.JWTService
	AuthService      *appServices.AuthService
	StudentService   appServices.StudentService
	DashboardService *appServices.DashboardService
	Sessions         *directory.Sessions
	Hub              *websocket.Hub
	Rabbit           *events.RabbitPublisher // nil when no broker is configured
	AuthMiddleware   *appMiddleware.AuthMiddleware
	Handlers         appRoutes.Handlers
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(strings.ToLower(cfg.Logging.Level))
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.PrettyLogs(),
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store and brings its schema up to date.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		lgr.Info().Str("path", cfg.Database.Path).Msg("Opening SQLite database...")
		database, err := sqlite.Open(ctx, cfg.Database.Path)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to open SQLite database")
			return nil, err
		}
		return &Store{
			Driver:   config.DriverSQLite,
			Students: sqlite.NewStudentStore(database),
			Users:    sqlite.NewUserStore(database),
			lite:     database,
		}, nil

	case config.DriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(database.Pool, lgr)
		if err := migrator.Migrate(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		repos := appRepos.NewRepositories(database.Pool)
		return &Store{
			Driver:   config.DriverPostgres,
			Students: repos.Students,
			Users:    repos.Users,
			pg:       database,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// NewJWTService builds the token service from configuration
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
}

// BuildDependencies initializes services, controllers and the event fan-out,
// then seeds the default administrator.
func BuildDependencies(ctx context.Context, cfg *config.Config, store *Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Hub = websocket.NewHub(logger.Component("websocket"))

	publishers := events.Multi{events.LogPublisher{}, deps.Hub}
	if cfg.Events.AMQPURL != "" {
		rabbit, err := events.NewRabbitPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.RoutingKey)
		if err != nil {
			// Audit events still reach the log and the websocket feed
			lgr.Error().Err(err).Msg("Failed to connect to event broker, continuing without it")
		} else {
			deps.Rabbit = rabbit
			publishers = append(publishers, rabbit)
		}
	}

	deps.JWTService = NewJWTService(cfg)
	deps.AuthService = appServices.NewAuthService(store.Users, deps.JWTService, logger.Component("auth"))
	deps.StudentService = appServices.NewStudentService(store.Students, store.Users, nil, publishers, logger.Component("students"))
	deps.DashboardService = appServices.NewDashboardService(deps.StudentService)

	idle := helpers.ParseDuration(cfg.Directory.SessionIdleTimeout, 30*time.Minute)
	deps.Sessions = directory.NewSessions(deps.StudentService, idle, logger.Component("directory"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Handlers = appRoutes.Handlers{
		Auth:      appControllers.NewAuthController(deps.AuthService, lgr),
		Students:  appControllers.NewStudentController(deps.Sessions, deps.StudentService, lgr),
		Profile:   appControllers.NewProfileController(deps.StudentService, lgr),
		Dashboard: appControllers.NewDashboardController(deps.DashboardService, lgr),
		Users:     appControllers.NewUserController(deps.AuthService, lgr),
		Events:    websocket.NewHandler(deps.Hub, appMiddleware.GetIdentity, logger.Component("websocket")),
	}

	admin := seed.Admin{
		Email:       cfg.Seed.AdminEmail,
		Password:    cfg.Seed.AdminPassword,
		DisplayName: cfg.Seed.AdminName,
	}
	if err := seed.CreateDefaultData(ctx, store.Users, deps.AuthService, admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Handlers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
