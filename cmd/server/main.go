package main

import (
	"log"
	"os"

	"field-report-api/config"
	"field-report-api/internal/hospital"
	"field-report-api/internal/logs"
	"field-report-api/internal/product"
	"field-report-api/internal/submission"
	"field-report-api/internal/upload"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	dsn := "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=disable"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&hospital.Hospital{},
		&product.Product{},
		&submission.FormSubmission{},
		&submission.FormSubmissionDetail{},
		&submission.FormSubmissionFile{},
		&logs.SystemLog{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	logService := &logs.LogService{DB: db}
	logs.RegisterRoutes(r, logService)

	// REDIS_ADDR is optional; without it hospital lookups go straight to the DB
	var listCache hospital.ListCache
	if rc := hospital.OpenRedis(cfg.RedisAddr); rc != nil {
		listCache = rc
	}
	hospitalService := hospital.NewHospitalService(db, listCache)
	hospital.RegisterRoutes(r, hospitalService)

	productService := product.NewProductService(db)
	product.RegisterRoutes(r, productService)

	uploadService, err := upload.NewUploadService(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to prepare upload directory:", err)
	}
	upload.RegisterRoutes(r, uploadService, logService)

	submissionService := submission.NewSubmissionService(db)
	submission.RegisterRoutes(r, submissionService, logService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on 0.0.0.0:%s ...", port)
	log.Fatal(r.Run("0.0.0.0:" + port))
}
