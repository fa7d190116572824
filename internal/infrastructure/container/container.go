// Package container wires the system together with go.uber.org/fx,
// adapted from the teacher's container.go module layout (Config/Logger/
// Database/Cache/Repository/Service/HTTP modules, lifecycle hooks).
package container

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/larderai/pantry/internal/application/cookability"
	"github.com/larderai/pantry/internal/application/ingredient"
	"github.com/larderai/pantry/internal/application/pantry"
	recipeapp "github.com/larderai/pantry/internal/application/recipe"
	"github.com/larderai/pantry/internal/application/search"
	"github.com/larderai/pantry/internal/application/substitution"
	"github.com/larderai/pantry/internal/infrastructure/ai/chat"
	"github.com/larderai/pantry/internal/infrastructure/cache"
	"github.com/larderai/pantry/internal/infrastructure/config"
	"github.com/larderai/pantry/internal/infrastructure/http/apiserver"
	gormpersist "github.com/larderai/pantry/internal/infrastructure/persistence/gorm"
	"github.com/larderai/pantry/internal/infrastructure/vectorindex"
	"github.com/larderai/pantry/internal/ports/inbound"
	"github.com/larderai/pantry/internal/ports/outbound"
	"github.com/larderai/pantry/pkg/logger"
	"github.com/larderai/pantry/pkg/metrics"
)

// denseVectorDimension matches text-embedding-3-small's output width, the
// default embedding model (config.go's setDefaults).
const denseVectorDimension = 1536

// Module wires every component named by SPEC_FULL.md.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	CollaboratorModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration.
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides structured logging.
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule opens the Relational Store's GORM connection, Postgres in
// production and SQLite for local development (config.Database.Driver).
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		var (
			db  *gorm.DB
			err error
		)

		gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

		switch cfg.Database.Driver {
		case "postgres":
			db, err = gorm.Open(postgres.Open(cfg.GetDSN()), gormCfg)
		default:
			db, err = gorm.Open(sqlite.Open(cfg.Database.Database), gormCfg)
		}
		if err != nil {
			return nil, err
		}

		if cfg.Database.AutoMigrate {
			if err := db.AutoMigrate(gormpersist.AllModels()...); err != nil {
				log.Warn("auto-migration failed", zap.Error(err))
			}
		}

		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
			sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
			sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
		}

		log.Info("connected to relational store", zap.String("driver", cfg.Database.Driver))
		return db, nil
	},
)

// CacheModule provides the Redis-backed Cache Layer.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *cache.RedisClient {
		return cache.NewRedisClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			Database: cfg.Redis.Database,
			PoolSize: cfg.Redis.PoolSize,
		}, log)
	},
	func(redisClient *cache.RedisClient, cfg *config.Config, log *zap.Logger) outbound.CacheLayer {
		metrics.SetAvailable(metrics.CacheLayerAvailable, true)
		return cache.NewLayer(redisClient, cfg.Redis.TTL, log)
	},
)

// CollaboratorModule provides the LLM chat client and the Vector Index
// client, DE/SE's external-speaking collaborators.
var CollaboratorModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.ChatClient {
		c := chat.NewClient(chat.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			ChatModel:      cfg.LLM.ChatModel,
			EmbeddingModel: cfg.LLM.EmbeddingModel,
			Timeout:        cfg.LLM.Timeout,
		}, log)
		metrics.SetAvailable(metrics.DenseEmbedderAvailable, c.Available())
		return c
	},
	func(cfg *config.Config, log *zap.Logger) outbound.VectorIndex {
		v := vectorindex.NewClient(vectorindex.Config{
			BaseURL:   fmt.Sprintf("%s:%d", cfg.VectorIndex.Host, cfg.VectorIndex.Port),
			Dimension: denseVectorDimension,
			Timeout:   cfg.VectorIndex.Timeout,
		}, log)
		metrics.SetAvailable(metrics.VectorIndexAvailable, v.Available())
		return v
	},
)

// RepositoryModule provides the Relational Store's repository adapters.
var RepositoryModule = fx.Provide(
	fx.Annotate(gormpersist.NewRecipeRepository, fx.As(new(outbound.RecipeRepository))),
	fx.Annotate(gormpersist.NewAliasRepository, fx.As(new(outbound.AliasRepository))),
	fx.Annotate(gormpersist.NewPantryRepository, fx.As(new(outbound.PantryRepository))),
)

// ServiceModule provides the application-layer orchestrators.
var ServiceModule = fx.Provide(
	ingredient.NewResolver,
	fx.Annotate(ingredient.NewHTTPService, fx.As(new(inbound.IngredientService))),
	fx.Annotate(recipeapp.NewService, fx.As(new(inbound.RecipeService))),
	fx.Annotate(pantry.NewService, fx.As(new(inbound.PantryService))),
	fx.Annotate(cookability.NewService, fx.As(new(inbound.CookabilityService))),
	fx.Annotate(search.NewService, fx.As(new(inbound.SearchService))),
	fx.Annotate(substitution.NewService, fx.As(new(inbound.SubstitutionService))),
)

// HTTPModule provides the HTTP server.
var HTTPModule = fx.Provide(apiserver.NewServer)

// LifecycleModule registers start/stop hooks.
var LifecycleModule = fx.Invoke(RegisterLifecycleHooks)

// RegisterLifecycleHooks starts the HTTP server on OnStart and drains it on
// OnStop, closing the Relational Store connection last.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting pantry retrieval engine",
				zap.String("environment", cfg.App.Environment),
			)
			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error("failed to shut down HTTP server", zap.Error(err))
			}

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
