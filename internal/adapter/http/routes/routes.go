package routes

import (
	"net/http"
	"time"

	_ "telehealth_flow/docs"
	"telehealth_flow/internal/adapter/http/handlers"
	"telehealth_flow/internal/adapter/http/middleware"
	"telehealth_flow/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Options carries what the router needs from the composition root.
type Options struct {
	Orchestrator   usecase.IFlowOrchestrator
	Logger         zerolog.Logger
	MetricsHandler http.Handler
	RequestTimeout time.Duration
	ServiceName    string
	Debug          bool
}

// NewRouter builds the HTTP engine: middlewares, swagger, metrics and the /v1 API.
func NewRouter(opts Options) *gin.Engine {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	setMiddlewares(router, opts)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	flowHandler := handlers.NewFlowHandler(opts.Orchestrator)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addFlowRoutes(v1, flowHandler)

	return router
}

func setMiddlewares(router *gin.Engine, opts Options) {
	log := opts.Logger
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(middleware.Timeout(opts.RequestTimeout))
}
