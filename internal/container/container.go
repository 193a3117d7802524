package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/catalog"
	"github.com/su-gabriel/ScreenlistApp/internal/config"
	"github.com/su-gabriel/ScreenlistApp/internal/handlers"
	"github.com/su-gabriel/ScreenlistApp/internal/logger"
	"github.com/su-gabriel/ScreenlistApp/internal/services"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

// Container wires the database pool, redis, the catalog client and the
// domain services together, and owns their teardown.
type Container struct {
	DB              *pgxpool.Pool
	Redis           *redis.Client
	Logger          *logrus.Logger
	Store           storage.Store
	Catalog         *catalog.Client
	Resolver        *services.ShowResolver
	Insights        *services.InsightService
	Recommendations *services.RecommendationService
}

func New(ctx context.Context) (*Container, error) {
	logger := logger.Get()

	db, err := newDatabase(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := newRedis(ctx, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	baseURL, apiKey := config.CatalogConfig()
	catalogClient := catalog.NewClient(&catalog.ClientConfig{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		Timeout:   15 * time.Second,
		RateLimit: 4,
		Logger:    logger,
		Redis:     redisClient,
	})

	store := storage.NewPostgresStore(db)

	return &Container{
		DB:              db,
		Redis:           redisClient,
		Logger:          logger,
		Store:           store,
		Catalog:         catalogClient,
		Resolver:        services.NewShowResolver(store, catalogClient, logger),
		Insights:        services.NewInsightService(store, catalogClient, logger),
		Recommendations: services.NewRecommendationService(store, catalogClient, logger),
	}, nil
}

// API assembles the HTTP handler set over the container's services.
func (c *Container) API() *handlers.API {
	return &handlers.API{
		Middleware:      &handlers.Middleware{Store: c.Store, Logger: c.Logger},
		Auth:            &handlers.AuthHandler{Store: c.Store, Logger: c.Logger},
		Preferences:     &handlers.PreferencesHandler{Store: c.Store, Logger: c.Logger},
		History:         &handlers.HistoryHandler{Store: c.Store, Resolver: c.Resolver, Logger: c.Logger},
		Watchlist:       &handlers.WatchlistHandler{Store: c.Store, Resolver: c.Resolver, Logger: c.Logger},
		Settings:        &handlers.SettingsHandler{Store: c.Store, Logger: c.Logger},
		Profile:         &handlers.ProfileHandler{Store: c.Store, Logger: c.Logger},
		Shows:           &handlers.ShowsHandler{Catalog: c.Catalog, Store: c.Store, Logger: c.Logger},
		Genres:          &handlers.GenresHandler{Catalog: c.Catalog, Logger: c.Logger},
		Insights:        &handlers.InsightsHandler{Insights: c.Insights, Logger: c.Logger},
		Recommendations: &handlers.RecommendationsHandler{Recommendations: c.Recommendations, Logger: c.Logger},
	}
}

func (c *Container) Close() {
	if c.Redis != nil {
		c.Redis.Close()
		c.Logger.Info("Redis connection closed")
	}
	if c.DB != nil {
		c.DB.Close()
		c.Logger.Info("Database connection closed")
	}
}

func newDatabase(ctx context.Context, logger *logrus.Logger) (*pgxpool.Pool, error) {
	host, port, user, password, databaseName := config.DatabaseConfig()

	if host == "" || port == "" || user == "" || password == "" || databaseName == "" {
		return nil, fmt.Errorf("missing required database configuration")
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, databaseName)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection successful")
	return pool, nil
}

func newRedis(ctx context.Context, logger *logrus.Logger) (*redis.Client, error) {
	host, port, password := config.RedisConfig()

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection successful")
	return client, nil
}
