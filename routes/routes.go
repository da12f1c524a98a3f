package routes

import (
	"net/http"
	"time"

	"caregrid/handlers"
	"caregrid/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Schedule *handlers.ScheduleHandler
	Document *handlers.DocumentHandler
	Voice    *handlers.VoiceHandler
}

// RegisterScheduleRoutes registers every schedule endpoint.
func RegisterScheduleRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/schedules")
	{
		// All schedule endpoints require authentication.
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Schedule.CreateScheduleHandler)
		api.GET("", hb.Schedule.ListSchedulesHandler)
		api.GET("/week", hb.Schedule.WeekViewHandler)
		api.GET("/:id", hb.Schedule.GetScheduleHandler)
		api.DELETE("/:id", hb.Schedule.DeleteScheduleHandler)
		api.DELETE("/:id/dates/:date", hb.Schedule.CancelDateHandler)

		api.POST("/document", hb.Document.UploadDocumentHandler)
		api.POST("/voice", hb.Voice.UploadVoiceHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm CareGrid"})
	})
}

// RegisterRoutes wires CORS plus every route group onto the engine.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterScheduleRoutes(r, hb)
}
