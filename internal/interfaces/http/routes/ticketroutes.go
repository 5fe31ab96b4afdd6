package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "vetiver/internal/interfaces/http/handlers/ticket"
	"vetiver/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	AuthMiddleware *middleware.TokenAuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

	// Read operations are public.
	reads := engine.Group("/tickets")
	{
		reads.GET("",
			config.TicketHandler.ListTickets)
		reads.GET("/stats",
			config.TicketHandler.GetTicketStats)

		// Generic parameterized routes (must come LAST)
		reads.GET("/:id",
			config.TicketHandler.GetTicket)
		reads.GET("/:id/history",
			config.TicketHandler.GetTicketHistory)
	}

	// Mutations require the admin token and are rate limited.
	writes := engine.Group("/tickets")
	writes.Use(config.AuthMiddleware.RequireToken())
	if config.RateLimiter != nil {
		writes.Use(config.RateLimiter.Limit())
	}
	{
		writes.POST("",
			config.TicketHandler.CreateTicket)
		writes.POST("/import",
			config.TicketHandler.ImportTickets)

		// Generic parameterized routes (must come LAST)
		writes.PUT("/:id",
			config.TicketHandler.UpdateTicket)
		writes.DELETE("/:id",
			config.TicketHandler.DeleteTicket)
		writes.POST("/:id/restore",
			config.TicketHandler.RestoreTicket)
		writes.DELETE("/:id/purge",
			config.TicketHandler.PurgeTicket)
	}
}
