package routes

import (
	"impound_manager/internal/controllers"
	"impound_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func OwnerRoutes(r *gin.Engine) {
	owners := r.Group("/owners")
	owners.Use(middleware.RequireAuthWithRole("agent"))
	{
		owners.POST("/", controllers.CreateOwner)
		owners.GET("/", controllers.ListOwners)
		owners.GET("/:id", controllers.GetOwner)
		owners.PUT("/:id", controllers.UpdateOwner)
		owners.DELETE("/:id", controllers.DeleteOwner)
	}
}
