package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"fulfilment/cmd"
	fulfilmenthttp "fulfilment/internal/adapters/in/http"
	"fulfilment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := connectDB(configs)
	app := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := jobs.NewJobManager(app.CreateDailyReportQueryHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
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
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := fulfilmenthttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateCreateManualOrderCommandHandler(),
		app.CreateChangeStatusCommandHandler(),
		app.CreateAssignDriverCommandHandler(),
		app.CreateRequestQuoteCommandHandler(),
		app.CreateAcceptQuoteCommandHandler(),
		app.CreatePostOrderMessageCommandHandler(),
		app.CreateRecordSupplierStatusCommandHandler(),
		app.CreateRecordPaymentCommandHandler(),
		app.CreateIssueRefundCommandHandler(),
		app.CreateRequestPayoutCommandHandler(),
		app.CreateUpdatePayoutStatusCommandHandler(),
		app.CreateOrderTimelineQueryHandler(),
		app.CreateDailyReportQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
