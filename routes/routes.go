package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"office-backend/controllers"
	"office-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances onto the HTTP surface.
func SetupRouter(
	ac *controllers.AllocationController,
	rc *controllers.ReservationController,
	fc *controllers.FloorController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Tenant-User"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		expenses := api.Group("/expenses")
		{
			expenses.POST("/allocate", ac.AllocateExpenses)
		}

		offices := api.Group("/offices")
		{
			offices.GET("/:id/charges", ac.GetChargeHistory)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", rc.GetMyReservations)
			reservations.POST("", rc.CreateReservation)

			// sweep must register before /:id routes
			reservations.PUT("/sweep", rc.SweepReservations)

			reservations.PUT("/:id/cancel", rc.CancelReservation)
			reservations.PUT("/:id/complete", rc.CompleteReservation)
		}

		servicesGroup := api.Group("/services")
		{
			servicesGroup.GET("/:id/slots", rc.GetOccupiedSlots)
		}

		buildings := api.Group("/buildings")
		{
			buildings.GET("/:id/floors", fc.GetFloors)
			buildings.POST("/:id/floors", fc.AddFloors)
			buildings.POST("/:id/floors/remove", fc.RemoveFloors)
			buildings.GET("/:id/offices", fc.GetOffices)
		}
	}

	return r
}
