package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"lastmile/cmd"
	httpin "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/postgres/deliveryrepo"
	"lastmile/internal/adapters/out/postgres/notificationrepo"
	"lastmile/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectToDB(configs)
	mustMigrateDB(gormDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.CreateDispatchNotificationsCommandHandler(),
		configs.DispatchSchedule,
		configs.DispatchBatchSize,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		SlotModelPath:     goDotEnvVariable("SLOT_MODEL_PATH"),
		SlotDatasetPath:   goDotEnvVariable("SLOT_DATASET_PATH"),
		ProofDir:          goDotEnvVariable("PROOF_DIR"),
		CodeLength:        goDotEnvIntVariable("CODE_LENGTH"),
		DispatchSchedule:  goDotEnvVariable("DISPATCH_SCHEDULE"),
		DispatchBatchSize: goDotEnvIntVariable("DISPATCH_BATCH_SIZE"),
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

func goDotEnvIntVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

func mustConnectToDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBPort, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&notificationrepo.NotificationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpin.NewServer(
		app.CreateBookDeliveryCommandHandler(),
		app.CreateVerifyDeliveryCommandHandler(),
		app.CreateOverrideDeliveryStatusCommandHandler(),
		app.CreateGetDailyDeliveriesQueryHandler(),
		app.SlotAdvisor(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
