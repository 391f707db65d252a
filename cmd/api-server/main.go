package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/api/swagger"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/handler"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/middleware"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/repository"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/service"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/config"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/database"
	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/logger"
	corsmiddleware "github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/middleware/cors"
	reqidmiddleware "github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/pkg/middleware/requestid"
)

// @title Actualización de Seguimiento de Rechazos API
// @version 1.0.0
// @description Procesa archivos de rechazos y deriva homologaciones
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	rejections := repository.NewRejectionRepository(db, cfg.Schemas)
	products := repository.NewProductHomologationRepository(db, cfg.Schemas)
	branches := repository.NewBranchHomologationRepository(db, cfg.Schemas)
	catalog := repository.NewCatalogRepository(db, cfg.Schemas)
	sessions := repository.NewSessionRepository(db)

	metricsSvc := service.NewMetricsService()
	updateSvc := service.NewUpdateService(rejections, logr)
	productSvc := service.NewProductHomologationService(products, catalog, logr)
	branchSvc := service.NewBranchHomologationService(branches, catalog, logr)
	processSvc := service.NewProcessService(rejections, updateSvc, productSvc, branchSvc, metricsSvc, logr)
	sessionSvc := service.NewSessionService(sessions, logr)

	processHandler := handler.NewProcessHandler(processSvc, cfg.Upload.MaxFileSizeBytes)
	sessionHandler := handler.NewSessionHandler(sessionSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	api.POST("/rejections/process", processHandler.Process)
	api.GET("/rejections/columns", processHandler.Columns)
	api.GET("/session", sessionHandler.Current)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
