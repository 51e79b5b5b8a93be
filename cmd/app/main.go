package main

import (
	"ChatbotFunil/internal/config"
	"ChatbotFunil/pkg/artifact"
	"ChatbotFunil/pkg/log"
	"ChatbotFunil/pkg/redis"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	logger := log.NewLogger()
	if envErr != nil {
		logger.Warnf("No .env file loaded, using process environment: %v", envErr)
	}

	source, err := artifact.NewSourceFromEnv()
	if err != nil {
		logger.Fatalf("Error creating artifact source: %v", err)
	}
	bundle := artifact.NewLoader(source, logger).Load()

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New(logger)

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithArtifacts(bundle),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithMiddleware(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error shutting down server: %v", err)
	}
}
