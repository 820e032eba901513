package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "busreserve/internal/config"
	h "busreserve/internal/http/handlers"
	"busreserve/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetMaxSeatsPerBooking(env.MaxSeatsPerBooking)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		stations := api.Group("/stations")
		stations.GET("", h.GetStations)
		stations.GET("/:id", h.GetStationByID)
		stations.POST("", h.CreateStation)

		seats := api.Group("/seats")
		seats.GET("", h.GetSeats)
		seats.GET("/:number", h.GetSeatByNumber)

		meals := api.Group("/meals")
		meals.GET("", h.GetMeals)
		meals.GET("/category/:category", h.GetMealsByCategory)
		meals.POST("", h.CreateMeal)
		meals.PUT("/:id/availability", h.UpdateMealAvailability)

		bookings := api.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("/history/:email", h.GetBookingHistory)
		bookings.GET("/:reference", h.GetBooking)
		bookings.DELETE("/:reference", h.CancelBooking)
		bookings.PUT("/:reference/meals", h.UpdateBookingMeals)
		bookings.GET("/:reference/e-ticket", h.GetBookingETicket)

		predictions := api.Group("/predictions")
		predictions.POST("/booking-confirmation", h.PredictBookingConfirmation)
	}

	return r
}
