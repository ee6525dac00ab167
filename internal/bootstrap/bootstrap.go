package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	appControllers "github.com/yigit/clubsphere/internal/app/controllers"
	appMigrations "github.com/yigit/clubsphere/internal/app/migrations"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/pages"
	appRepos "github.com/yigit/clubsphere/internal/app/repositories"
	appRoutes "github.com/yigit/clubsphere/internal/app/routes"
	appServices "github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/config"
	"github.com/yigit/clubsphere/internal/db"
	appMiddleware "github.com/yigit/clubsphere/internal/middleware"
	pkgAuth "github.com/yigit/clubsphere/internal/pkg/auth"
	"github.com/yigit/clubsphere/internal/pkg/filestorage"
	"github.com/yigit/clubsphere/internal/pkg/logger"
	"github.com/yigit/clubsphere/internal/pkg/realtime"
	"github.com/yigit/clubsphere/internal/pkg/websocket"
	"github.com/yigit/clubsphere/internal/seed"
	"github.com/yigit/clubsphere/internal/storage/memstore"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Database       *db.PostgresDB // nil with the memory driver
	FileStorage    *filestorage.LocalStorage
	Broker         realtime.Broker
	Services       *appServices.Services
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    *appRoutes.Controllers
	Pages          *pages.Handler
	Hub            *websocket.Hub
	Logger         zerolog.Logger
}

// Close releases the store and broker connections
func (d *Dependencies) Close() {
	if d.Broker != nil {
		if err := d.Broker.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Broker close failed")
		}
	}
	if d.Database != nil {
		d.Database.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file in the working directory is applied first when present.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to read .env file")
	}

	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logFormat := logger.ParseFormat(cfg.Logging.Format)
	logger.Configure(logger.Config{Level: logLevel, Format: logFormat})

	lgr := logger.Get()
	lgr.Info().Stringer("logLevel", logLevel).Str("logFormat", string(logFormat)).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured store, applies migrations and seeds the
// default admin. The returned database is nil with the memory driver.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *db.PostgresDB, error) {
	var (
		repos    *appRepos.Repositories
		database *db.PostgresDB
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		repos, _ = memstore.NewRepositories()
	default:
		lgr.Info().Msg("Establishing database connection...")
		var err error
		database, err = db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Msg("Running database migrations...")
		migrationsDir := cfg.Database.MigrationsPath
		if _, err := os.Stat(migrationsDir); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
		}
		applied, err := appMigrations.NewMigrator(database.Pool, lgr).Migrate(ctx, os.DirFS(migrationsDir))
		if err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Strs("applied", applied).Msg("Database migrations up to date")

		repos = appRepos.NewRepositories(database)
	}

	if err := seed.CreateDefaultData(ctx, repos, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
	return repos, database, nil
}

// SetupBroker returns the Redis broker when a URL is configured, otherwise an
// in-process one.
func SetupBroker(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (realtime.Broker, error) {
	if cfg.Realtime.RedisURL == "" {
		return realtime.NewLocalBroker(), nil
	}
	broker, err := realtime.NewRedisBroker(ctx, cfg.Realtime.RedisURL, cfg.Realtime.Channel, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect realtime broker: %w", err)
	}
	lgr.Info().Str("channel", cfg.Realtime.Channel).Msg("Realtime notifications fan out through Redis")
	return broker, nil
}

// OAuthProviders turns the configured providers into oauth2 configs
func OAuthProviders(cfg *config.Config) map[string]appServices.OAuthProviderConfig {
	providers := make(map[string]appServices.OAuthProviderConfig, len(cfg.OAuth.Providers))
	for _, name := range cfg.OAuthProviderNames() {
		p := cfg.OAuth.Providers[name]
		providers[name] = appServices.OAuthProviderConfig{
			OAuth2: &oauth2.Config{
				ClientID:     p.ClientID,
				ClientSecret: p.ClientSecret,
				Endpoint: oauth2.Endpoint{
					AuthURL:  p.AuthURL,
					TokenURL: p.TokenURL,
				},
				RedirectURL: cfg.OAuthRedirectURL(name),
				Scopes:      p.Scopes,
			},
			UserInfoURL: p.UserInfoURL,
		}
	}
	return providers
}

// BuildDependencies initializes the services, controllers and page handlers
// on top of an opened store.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, broker realtime.Broker, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Broker: broker, Logger: lgr}

	var err error
	fileStorageBaseURL := strings.TrimRight(cfg.Server.BaseURL, "/") + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		SessionExp:  cfg.SessionTTL(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos:      repos,
		JWT:        jwtService,
		Storage:    deps.FileStorage,
		Broker:     broker,
		OAuth:      OAuthProviders(cfg),
		FeedSize:   cfg.Realtime.FeedSize,
		SessionTTL: cfg.SessionTTL(),
		Logger:     lgr,
	})
	svc := deps.Services

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(svc.Auth, svc.Profiles, cfg.JWT.CookieName, logger.Component("auth"))

	deps.Hub = websocket.NewHub(broker, logger.Component("ws_hub"))
	wsLogger := logger.Component("ws")

	deps.Controllers = &appRoutes.Controllers{
		Auth:          appControllers.NewAuthController(svc.Auth, svc.OAuth, lgr),
		Profile:       appControllers.NewProfileController(svc.Profiles),
		Club:          appControllers.NewClubController(svc.Clubs, svc.Members, svc.Events, lgr),
		Event:         appControllers.NewEventController(svc.Events),
		Admin:         appControllers.NewAdminController(svc.Admin, lgr),
		Notification:  appControllers.NewNotificationController(svc.Notifications),
		Dashboard:     appControllers.NewDashboardController(svc.Dashboards),
		Notifications: websocket.NewHandler(deps.Hub, websocket.NewMessageHandler(svc.Notifications, wsLogger), cfg.Server.AllowedOrigins, wsLogger),
	}

	deps.Pages = pages.NewHandler(svc, cfg.JWT.CookieName, cfg.JWT.CookieSecure, cfg.SessionTTL(), logger.Component("pages"))

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.ConfigCORS(cfg.Server.AllowedOrigins),
		deps.AuthMiddleware.SessionResolver(),
	)

	tmpl, err := pages.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.Pages, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")))
			return
		}
		c.String(http.StatusNotFound, "page not found")
	})

	return router, nil
}

// PurgeSessionsPeriodically deletes expired session rows until ctx is done
func PurgeSessionsPeriodically(ctx context.Context, auth *appServices.AuthService, every time.Duration, lgr zerolog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := auth.PurgeExpiredSessions(ctx)
			if err != nil {
				lgr.Warn().Err(err).Msg("Expired session purge failed")
				continue
			}
			if n > 0 {
				lgr.Debug().Int64("count", n).Msg("Expired sessions purged")
			}
		}
	}
}
