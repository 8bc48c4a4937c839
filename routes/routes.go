package routes

import (
	"net/http"

	"innoviahub/handlers"
	"innoviahub/middleware"
	"innoviahub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational booking endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.Chat.Chat)
		api.POST("/confirm", hb.Chat.Confirm)
	}
}

// RegisterBookingRoutes registers the direct booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.Bookings.ListMyBookings)
		api.GET("/date/:date", hb.Bookings.ListMyBookingsByDate)
		api.GET("/availability", hb.Bookings.GetAvailability)
		api.POST("", hb.Bookings.CreateBooking)
		api.DELETE("/:id", hb.Bookings.DeleteBooking)
	}
}

// RegisterResourceRoutes registers the resource directory endpoints.
func RegisterResourceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/resources")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.Resources.GetResources)
		api.GET("/types", hb.Resources.GetResourceTypes)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	RegisterHealthRoute(r)
	RegisterChatRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterResourceRoutes(r, hb)
}
