package main

import (
	"context"
	"database/sql"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "payment-recon/docs"
	"payment-recon/internal/config"
	"payment-recon/internal/engine"
	"payment-recon/internal/handler"
	"payment-recon/internal/middleware"
	"payment-recon/internal/repository"
	"payment-recon/internal/service"
	"payment-recon/pkg/logger"
)

// @title Payment Ledger Reconciliation API
// @version 1.0
// @description API for reconciling payment switch exports against payment gateway exports

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.App.LogLevel)
	logger.GetLogger().Info("Starting Payment Ledger Reconciliation Service")

	policy, err := engine.ParseDuplicatePolicy(cfg.App.DuplicatePolicy)
	if err != nil {
		logger.GetLogger().WithError(err).Fatal("Invalid configuration")
	}

	// Initialize repository
	repo, closeStore, err := openRepository(cfg)
	if err != nil {
		logger.GetLogger().WithError(err).Fatal("Failed to open result store")
	}
	defer closeStore()

	// Initialize services
	reconEngine := engine.NewReconciliationEngine(engine.Options{
		SwitchColumns:   cfg.Columns.Switch,
		GatewayColumns:  cfg.Columns.Gateway,
		DuplicatePolicy: policy,
	})
	reconService := service.NewReconciliationService(repo, reconEngine)

	// Initialize handlers
	reconHandler := handler.NewReconciliationHandler(reconService)
	pageHandler := handler.NewPageHandler(reconService)

	tmpl, err := handler.LoadTemplates()
	if err != nil {
		logger.GetLogger().WithError(err).Fatal("Failed to load templates")
	}

	// Setup router
	router := setupRouter(cfg, tmpl, reconHandler, pageHandler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.GetLogger().WithFields(map[string]interface{}{
		"address":          addr,
		"store":            cfg.App.StoreBackend,
		"duplicate_policy": policy,
	}).Info("Server starting")

	if err := router.Run(addr); err != nil {
		logger.GetLogger().WithError(err).Fatal("Failed to start server")
	}
}

func openRepository(cfg *config.Config) (repository.ReconciliationRepository, func(), error) {
	if cfg.App.StoreBackend == config.StoreMemory {
		return repository.NewMemoryRepository(), func() {}, nil
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repository.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	logger.GetLogger().Info("Database connection established")

	return repository.NewReconciliationRepository(db), func() { db.Close() }, nil
}

func connectDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func setupRouter(
	cfg *config.Config,
	tmpl *template.Template,
	reconHandler *handler.ReconciliationHandler,
	pageHandler *handler.PageHandler,
) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.BodyLimit(cfg.Server.MaxUploadBytes()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Browser upload flow
	router.GET("/", pageHandler.Index)
	router.POST("/", pageHandler.Upload)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		reconciliation := v1.Group("/reconcile")
		{
			reconciliation.POST("", reconHandler.Reconcile)
			reconciliation.POST("/rows", reconHandler.ReconcileRows)
			reconciliation.GET("/jobs/:job_id", reconHandler.GetJobStatus)
			reconciliation.GET("/jobs/:job_id/result", reconHandler.GetJobResult)
			reconciliation.GET("/jobs/:job_id/export", reconHandler.ExportJobResult)
		}
	}

	return router
}
