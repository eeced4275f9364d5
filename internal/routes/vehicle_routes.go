package routes

import (
	"impound_manager/internal/controllers"
	"impound_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(r *gin.Engine) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.RequireAuthWithRole("agent"))
	{
		vehicles.POST("/", controllers.CreateVehicle)
		vehicles.GET("/", controllers.ListVehicles)
		vehicles.GET("/:id", controllers.GetVehicle)
		vehicles.PUT("/:id", controllers.UpdateVehicle)
	}
}
