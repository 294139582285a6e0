package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"ClinicCare360/config"
	"ClinicCare360/controllers"
	"ClinicCare360/jobs"
	"ClinicCare360/middleware"
	"ClinicCare360/models"
	"ClinicCare360/monitoring"
	"ClinicCare360/routes"
	"ClinicCare360/services"
)

var (
	connectDB   = config.ConnectDB
	startServer = func(r *gin.Engine, addr string) error { return r.Run(addr) }
	isTest      = false
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error in loading the ENV")
	}

	ctx := context.Background()
	client, db, err := connectDB(ctx)
	if err != nil {
		log.Println("MongoDB connection failed:", err)
		return err
	}
	defer config.Disconnect(client)
	log.Println("MongoDB connection successful")

	visitStore, err := models.NewMongoVisitStore(ctx, db)
	if err != nil {
		return err
	}
	userStore := models.NewMongoUserStore(db)

	patientSvc := services.NewPatientService(visitStore)
	authSvc := services.NewAuthService(userStore)

	if err := monitoring.InitSentry(os.Getenv("SENTRY_DSN")); err != nil {
		log.Println("Error from InitSentry:", err)
	}
	monitoring.Init()

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.PrometheusMetrics(), middleware.ErrorReporter())

	routes.Routes(r, patientSvc, authSvc, pingFunc(client))

	if !isTest {
		jobs.StartDailyScheduler(visitStore)
	}

	port := serverPort()
	log.Println("Server running on port", port)
	return startServer(r, ":"+port)
}

func pingFunc(client *mongo.Client) controllers.PingFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

func serverPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "5057"
}
