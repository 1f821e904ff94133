package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftdash/internal"
	"liftdash/internal/config"
	"liftdash/internal/container"
	"liftdash/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level))
	defer logger.Sync()
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	deps, err := container.New(appConfig, logger)
	if err == nil {
		err = deps.Init(initCtx)
	}
	cancel()
	if err != nil {
		logger.Error("[Startup] %v", err)
		os.Exit(1)
	}
	defer deps.Close()

	deps.Warm(ctx)

	server, err := ui.NewServer(deps.Tables, logger)
	if err != nil {
		logger.Error("[Startup] Failed to create dashboard server: %v", err)
		os.Exit(1)
	}

	if err := server.Start(ctx, ":"+appConfig.Server.Port); err != nil {
		logger.Error("[Server] %v", err)
		os.Exit(1)
	}
}
