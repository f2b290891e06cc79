package handlers

import (
	"strings"
	"time"

	"github.com/caixadigital/fluxo_backend/cmd/docs"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
	"github.com/caixadigital/fluxo_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// notblank rejects strings that are only whitespace; `required` alone
// accepts " ".
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerDocumentRoutes(v1, service.Document, service.Settlement, service.Reversal)
	registerLedgerRoutes(v1, service.Ledger, service.Reversal)
	registerScopeRoutes(v1, service.Scope, service.Recalc)
	registerReportingRoutes(v1, service.Reporting)

	// Statement uploads burn IO and CPU, so they get their own rate limit
	// on top of auth.
	imports := v1.Group("", middleware.RateLimit(importLimiter()))
	registerStatementRoutes(imports, service.Statement, cfg.ImportBatchSize)
}

func importLimiter() *limiter.Limiter {
	rate := limiter.Rate{Period: time.Minute, Limit: 10}
	return limiter.New(memory.NewStore(), rate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
