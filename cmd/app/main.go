package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	gateway := cmd.NewMessageGateway(configs, logger)
	app := cmd.NewCompositionRoot(configs, gormDB, gateway, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validationConsumer := app.CreateValidationResponseConsumer()
	allocationConsumer := app.CreateAllocationResponseConsumer()
	go validationConsumer.Run(ctx)
	go allocationConsumer.Run(ctx)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	app.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil &&
			err != http.ErrServerClosed {
			logger.Error("Web server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Web server shutdown failed", "error", err)
	}

	jobManager.StopAll()

	if err := validationConsumer.Close(); err != nil {
		logger.Error("Failed to close validation consumer", "error", err)
	}
	if err := allocationConsumer.Close(); err != nil {
		logger.Error("Failed to close allocation consumer", "error", err)
	}
	if err := gateway.Close(); err != nil {
		logger.Error("Failed to close kafka writers", "error", err)
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		KafkaHost:                    goDotEnvVariable("KAFKA_HOST"),
		KafkaConsumerGroup:           goDotEnvVariable("KAFKA_CONSUMER_GROUP"),
		KafkaValidationRequestTopic:  goDotEnvVariable("KAFKA_VALIDATION_REQUEST_TOPIC"),
		KafkaValidationResponseTopic: goDotEnvVariable("KAFKA_VALIDATION_RESPONSE_TOPIC"),
		KafkaAllocationRequestTopic:  goDotEnvVariable("KAFKA_ALLOCATION_REQUEST_TOPIC"),
		KafkaAllocationResponseTopic: goDotEnvVariable("KAFKA_ALLOCATION_RESPONSE_TOPIC"),
		KafkaDeallocationTopic:       goDotEnvVariable("KAFKA_DEALLOCATION_TOPIC"),

		StatusAwaitTimeout:    durationEnvVariable("STATUS_AWAIT_TIMEOUT", 3*time.Second),
		StalledOrderThreshold: durationEnvVariable("STALLED_ORDER_THRESHOLD", 15*time.Minute),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %s", key, raw)
	}
	return parsed
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}
