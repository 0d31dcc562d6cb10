// @title                       AegisFlow API
// @version                     1.0
// @description                 Bearer-token authentication with role-gated administration over ownership-scoped projects.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/aegisflow/aegisflow-api/docs"
	"github.com/aegisflow/aegisflow-api/internal/api"
	"github.com/aegisflow/aegisflow-api/internal/api/metrics"
	"github.com/aegisflow/aegisflow-api/internal/core/ports"
	"github.com/aegisflow/aegisflow-api/internal/core/service"
	"github.com/aegisflow/aegisflow-api/internal/infrastructure/config"
	"github.com/aegisflow/aegisflow-api/internal/infrastructure/db/memory"
	mongodb "github.com/aegisflow/aegisflow-api/internal/infrastructure/db/mongo"
	"github.com/aegisflow/aegisflow-api/internal/infrastructure/db/postgres"
	redisdb "github.com/aegisflow/aegisflow-api/internal/infrastructure/db/redis"
	httpserver "github.com/aegisflow/aegisflow-api/internal/infrastructure/http"
	"github.com/aegisflow/aegisflow-api/internal/infrastructure/http/handlers"
	"github.com/aegisflow/aegisflow-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "aegisflow: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "aegisflow-api",
	})

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	if err := st.roles.EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	checks := map[string]handlers.Check{"store": st.ping}
	throttle, closeRedis, err := openThrottle(ctx, cfg, checks)
	if err != nil {
		return err
	}
	defer closeRedis()

	tokens, err := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TokenTTL(), service.WithIssuer(cfg.JWT.Issuer))
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	accounts := service.NewAccountService(st.users, st.roles, service.NewBcryptHasher(0), tokens, throttle, log.With().Str("component", "accounts").Logger())
	projects := service.NewProjectService(st.projects, log.With().Str("component", "projects").Logger())

	if cfg.Admin.Username != "" {
		admin, err := accounts.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		log.Info().Str("user_id", admin.ID).Str("username", admin.Username).Msg("admin account ready")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	e := api.NewRouter(api.Dependencies{
		Accounts:     accounts,
		Projects:     projects,
		Resolver:     service.NewIdentityResolver(tokens, st.users),
		HealthChecks: checks,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		Logger:       log,
		Registry:     registry,
	})

	return httpserver.Serve(ctx, e, ":"+cfg.Port, log)
}

// store bundles the repositories of the configured driver.
type store struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	projects ports.ProjectRepository
	ping     handlers.Check
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	log := logger.Get()

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return &store{
			users:    mongodb.NewUserRepository(db),
			roles:    mongodb.NewRoleRepository(db),
			projects: mongodb.NewProjectRepository(db),
			ping:     mongodb.Pinger(db),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Warn().Err(err).Msg("mongo disconnect")
				}
			},
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return &store{
			users:    postgres.NewUserRepository(db),
			roles:    postgres.NewRoleRepository(db),
			projects: postgres.NewProjectRepository(db),
			ping:     db.PingContext,
			close: func() {
				if err := db.Close(); err != nil {
					log.Warn().Err(err).Msg("postgres close")
				}
			},
		}, nil

	default:
		log.Warn().Msg("using the in-memory store; data is lost on restart")
		mem := memory.NewStore()
		return &store{
			users:    mem.Users(),
			roles:    mem.Roles(),
			projects: mem.Projects(),
			ping:     mem.Ping,
			close:    func() {},
		}, nil
	}
}

// openThrottle connects redis for login throttling and registers its
// readiness check. Throttling is off when LOGIN_MAX_ATTEMPTS is 0 or
// REDIS_ADDR is empty.
func openThrottle(ctx context.Context, cfg *config.Config, checks map[string]handlers.Check) (ports.LoginThrottle, func(), error) {
	log := logger.Get()
	if cfg.Login.MaxAttempts == 0 || cfg.Redis.Addr == "" {
		log.Warn().Msg("login throttling disabled")
		return nil, func() {}, nil
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		return nil, nil, err
	}
	checks["redis"] = redisdb.Pinger(client)

	log.Info().
		Int("max_attempts", cfg.Login.MaxAttempts).
		Dur("window", cfg.Login.LockoutWindow).
		Msg("login throttling enabled")

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}
	return redisdb.NewLoginThrottle(client, cfg.Login.MaxAttempts, cfg.Login.LockoutWindow), closeFn, nil
}
