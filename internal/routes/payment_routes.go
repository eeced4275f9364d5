package routes

import (
	"impound_manager/internal/controllers"
	"impound_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func PaymentRoutes(r *gin.Engine) {
	payments := r.Group("/payments")
	payments.Use(middleware.RequireAuthWithRole("finance"))
	{
		payments.POST("/", controllers.RecordPayment)
		payments.GET("/", controllers.ListPayments)
	}
}
