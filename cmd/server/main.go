package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/su-gabriel/ScreenlistApp/internal/auth"
	"github.com/su-gabriel/ScreenlistApp/internal/config"
	"github.com/su-gabriel/ScreenlistApp/internal/container"
	"github.com/su-gabriel/ScreenlistApp/internal/logger"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

func main() {
	logger.Init(config.GetEnv("LOG_LEVEL", "info"))
	log := logger.Get()

	if err := godotenv.Load(".env.local"); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	jwtSecret := config.JWTSecret()
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required. Set it in .env file or as environment variable")
	}
	auth.Init(jwtSecret)

	ctx := context.Background()
	c, err := container.New(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer c.Close()

	if store, ok := c.Store.(*storage.PostgresStore); ok {
		if err := store.Migrate(ctx); err != nil {
			log.WithError(err).Fatal("Failed to run schema migration")
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	mux := c.API().Routes()

	log.Infof("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
