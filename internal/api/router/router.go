package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketdesk/backend/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, authCfg *AuthConfig) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "ticket-api-service",
		})
	})

	ticketHandler := handler.NewTicketHandler(deps)
	userHandler := handler.NewUserHandler(deps)

	auth := AuthMiddleware(deps.Logger, authCfg)

	tickets := r.Group("/tickets")
	{
		// Ticket intake is open; reporters are not required to hold an
		// account.
		tickets.POST("", ticketHandler.CreateTicket)
		tickets.GET("/:ticket_id", ticketHandler.GetTicket)

		tickets.GET("", auth, ticketHandler.ListTickets)
		tickets.PATCH("/:ticket_id/status", auth, ticketHandler.UpdateTicketStatus)
		tickets.PATCH("/:ticket_id/assign", auth, ticketHandler.AssignTicket)

		tickets.POST("/bulk", auth, ticketHandler.BulkCreateTickets)
		tickets.GET("/bulk/:job_id", auth, ticketHandler.GetImportJob)

		tickets.POST("/:ticket_id/comments", auth, ticketHandler.CreateComment)
		tickets.GET("/:ticket_id/comments", auth, ticketHandler.ListComments)
	}

	users := r.Group("/users", auth)
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:email", userHandler.GetUserByEmail)
		users.PATCH("/:user_id/deactivate", userHandler.DeactivateUser)
	}

	return r
}
