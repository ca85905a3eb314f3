// Package server assembles the HTTP router and the record store it serves.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/cohort-tools-api/internal/handler"
	"github.com/noah-isme/cohort-tools-api/internal/middleware"
	"github.com/noah-isme/cohort-tools-api/internal/repository/tokens"
	"github.com/noah-isme/cohort-tools-api/internal/service"
	"github.com/noah-isme/cohort-tools-api/pkg/config"
	"github.com/noah-isme/cohort-tools-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/cohort-tools-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/cohort-tools-api/pkg/middleware/requestid"
)

// Dependencies carries the process-scoped handles the router wires together.
// Revocations and Metrics may be nil.
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	Cohorts     service.CohortRepository
	Students    service.StudentRepository
	Users       service.UserRepository
	Store       handler.Pinger
	Revocations *tokens.RevocationRepository
	Metrics     *service.MetricsService
}

// NewRouter builds the gin engine with every route and global middleware.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	validate := validator.New()
	opts := service.RecordOptions{
		StrictNotFound:     cfg.Records.StrictNotFound,
		CohortDeletePolicy: cfg.Records.CohortDeletePolicy,
	}

	cohortSvc := service.NewCohortService(deps.Cohorts, deps.Students, validate, logr, opts)
	studentSvc := service.NewStudentService(deps.Students, validate, logr, opts)
	exportSvc := service.NewExportService(deps.Cohorts, deps.Students, logr)
	authSvc := service.NewAuthService(deps.Users, deps.Revocations, validate, logr, deps.Metrics, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(deps.Users, logr)

	cohortHandler := handler.NewCohortHandler(cohortSvc, exportSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	metricsHandler := handler.NewMetricsHandler(deps.Metrics, deps.Store)
	docsHandler := handler.NewDocsHandler(cfg.Assets.DocsViewPath, cfg.Assets.StaticDir)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if deps.Metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	r.GET("/docs", docsHandler.Docs)

	jwt := middleware.JWT(authSvc)

	auth := r.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/verify", jwt, authHandler.Verify)
	auth.POST("/logout", jwt, authHandler.Logout)

	api := r.Group("/api")

	students := api.Group("/students")
	students.POST("", studentHandler.Create)
	students.GET("", studentHandler.List)
	students.GET("/cohort/:cohortId", studentHandler.ListByCohort)
	students.GET("/:studentId", studentHandler.Get)
	students.PUT("/:studentId", studentHandler.Update)
	students.DELETE("/:studentId", studentHandler.Delete)

	cohorts := api.Group("/cohorts")
	cohorts.POST("", cohortHandler.Create)
	cohorts.GET("", cohortHandler.List)
	cohorts.GET("/:cohortId", cohortHandler.Get)
	cohorts.PUT("/:cohortId", cohortHandler.Update)
	cohorts.DELETE("/:cohortId", cohortHandler.Delete)
	cohorts.GET("/:cohortId/roster", cohortHandler.Roster)

	api.GET("/users/:id", jwt, middleware.SelfOnly("id"), userHandler.Get)

	r.NoRoute(docsHandler.Fallback)

	return r
}
