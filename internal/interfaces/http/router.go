package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vetiver/internal/application/ticket/usecases"
	"vetiver/internal/infrastructure/cache"
	"vetiver/internal/infrastructure/config"
	"vetiver/internal/infrastructure/repository"
	"vetiver/internal/infrastructure/schema"
	"vetiver/internal/infrastructure/search"
	"vetiver/internal/interfaces/http/handlers"
	tickethandlers "vetiver/internal/interfaces/http/handlers/ticket"
	"vetiver/internal/interfaces/http/middleware"
	"vetiver/internal/interfaces/http/routes"
	"vetiver/internal/shared/db"
	"vetiver/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	ticketHandler  *tickethandlers.TicketHandler
	systemHandler  *handlers.SystemHandler
	authMiddleware *middleware.TokenAuthMiddleware
	rateLimiter    *middleware.RateLimiter
	cfg            *config.Config
	logger         logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(gdb *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	detector := schema.NewDetector(gdb)
	searchIndex := search.NewTicketIndex(gdb, detector)

	ticketRepo := repository.NewTicketRepository(gdb, searchIndex, log)
	eventRepo := repository.NewTicketEventRepository(gdb, log)
	txManager := db.NewTransactionManager(gdb)

	var statsCache cache.StatsCache
	if redisClient != nil {
		ttl := time.Duration(cfg.Stats.CacheTTLSeconds) * time.Second
		statsCache = cache.NewRedisStatsCache(redisClient, ttl, log)
	} else {
		statsCache = &cache.NoopStatsCache{}
	}

	createUC := usecases.NewCreateTicketUseCase(ticketRepo, eventRepo, statsCache, log)
	getUC := usecases.NewGetTicketUseCase(ticketRepo, log)
	listUC := usecases.NewListTicketsUseCase(ticketRepo, log)
	updateUC := usecases.NewUpdateTicketUseCase(ticketRepo, eventRepo, statsCache, log)
	deleteUC := usecases.NewDeleteTicketUseCase(ticketRepo, eventRepo, statsCache, log)
	restoreUC := usecases.NewRestoreTicketUseCase(ticketRepo, eventRepo, statsCache, log)
	purgeUC := usecases.NewPurgeTicketUseCase(ticketRepo, eventRepo, statsCache, log)
	importUC := usecases.NewImportTicketsUseCase(ticketRepo, eventRepo, txManager, searchIndex, statsCache, cfg.Import.BatchSize, log)
	statsUC := usecases.NewGetTicketStatsUseCase(ticketRepo, statsCache, log)
	historyUC := usecases.NewGetTicketHistoryUseCase(eventRepo, log)

	ticketHandler := tickethandlers.NewTicketHandler(
		createUC, getUC, listUC, updateUC, deleteUC,
		restoreUC, purgeUC, importUC, statsUC, historyUC,
		cfg.Import.MaxRecords,
	)
	systemHandler := handlers.NewSystemHandler()

	authMiddleware := middleware.NewTokenAuthMiddleware(cfg.Auth.AdminToken, log)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.Requests, window)
	}

	return &Router{
		engine:         engine,
		ticketHandler:  ticketHandler,
		systemHandler:  systemHandler,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		cfg:            cfg,
		logger:         log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.ErrorHandler())
	r.engine.Use(middleware.RequestLogger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.NoStore())
	r.engine.Use(middleware.APIVersion())

	r.engine.GET("/health", r.systemHandler.HealthCheck)
	r.engine.GET("/version", r.systemHandler.Version)

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:  r.ticketHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
