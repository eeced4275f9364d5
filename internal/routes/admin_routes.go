package routes

import (
	"impound_manager/internal/controllers"
	"impound_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/users", controllers.CreateUser)
		admin.GET("/users", controllers.ListUsers)
		admin.PUT("/users/:id", controllers.UpdateUser)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.GET("/settings", controllers.ListSettings)
		admin.PUT("/settings", controllers.UpdateSetting)

		admin.POST("/facilities", controllers.CreateFacility)
		admin.GET("/facilities", controllers.ListFacilities)
		admin.GET("/facilities/:id", controllers.GetFacility)
		admin.PUT("/facilities/:id", controllers.UpdateFacility)
		admin.DELETE("/facilities/:id", controllers.DeleteFacility)

		admin.POST("/vehicles/:id/status", controllers.OverrideVehicleStatus)

		admin.GET("/notifications", controllers.ListNotifications)
		admin.POST("/notifications/:id/resend", controllers.ResendNotification)
		admin.POST("/notifications/deadline-warnings", controllers.SendDeadlineWarnings)
	}
}
