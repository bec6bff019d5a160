package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"compliance/cmd"
	httpadapter "compliance/internal/adapters/in/http"
	"compliance/internal/adapters/out/postgres/documentrepo"
	"compliance/internal/adapters/out/postgres/orderrepo"
	"compliance/internal/adapters/out/postgres/timelinerepo"
	"compliance/internal/adapters/out/rabbit"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/rabbitmq/amqp091-go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	amqpChannel := mustConnectRabbit(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, amqpChannel, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	consumer := rabbit.NewGenerationResultConsumer(
		amqpChannel, app.CreateRecordGeneratedVersionCommandHandler(), logger)
	if err := consumer.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start generation result consumer: %v", err)
	}

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		RabbitURL:  goDotEnvVariable("RABBIT_URL"),

		StallWindowMinutes: goDotEnvVariableOr("STALL_WINDOW_MINUTES", "30"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// goDotEnvVariableOr reads an optional knob, falling back when unset.
func goDotEnvVariableOr(key, fallback string) string {
	if value := goDotEnvVariable(key); value != "" {
		return value
	}
	return fallback
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&documentrepo.DocumentVersionDTO{},
		&timelinerepo.TimelineEntryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func mustConnectRabbit(configs cmd.Config) *amqp091.Channel {
	conn, err := amqp091.Dial(configs.RabbitURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open RabbitMQ channel: %v", err)
	}

	if err := rabbit.DeclareTopology(ch); err != nil {
		log.Fatalf("Failed to declare RabbitMQ topology: %v", err)
	}

	return ch
}

func startWebServer(app cmd.CompositionRoot, port string) {
	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateApplyTransitionCommandHandler(),
		app.CreateMarkPaidCommandHandler(),
		app.CreateApproveVersionCommandHandler(),
		app.CreateRequestRegenerationCommandHandler(),
		app.CreateRequestClientInfoCommandHandler(),
		app.CreateSubmitClientResponseCommandHandler(),
		app.CreateRecordGeneratedVersionCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetOrderTimelineQueryHandler(),
		app.CreateGetPipelineSnapshotQueryHandler(),
		app.CreateListOrdersByStatusQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
