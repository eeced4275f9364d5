package routes

import (
	"impound_manager/internal/controllers"
	"impound_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ProcedureRoutes(r *gin.Engine) {
	procedures := r.Group("/procedures")
	procedures.Use(middleware.RequireAuthWithRole("agent"))
	{
		procedures.POST("/", controllers.OpenProcedure)
		procedures.GET("/", controllers.ListProcedures)
		procedures.GET("/quote", controllers.QuoteProcedure)
		procedures.GET("/:id", controllers.GetProcedure)
		procedures.POST("/:id/advance", controllers.AdvanceProcedure)
		procedures.POST("/:id/cancel", controllers.CancelProcedure)
		procedures.POST("/:id/complete", controllers.CompleteProcedure)
		procedures.POST("/:id/documents", controllers.AttachDocument)
	}

	// Balance is a finance concern but agents may read it too.
	balance := r.Group("/procedures")
	balance.Use(middleware.RequireAuthWithRole("agent", "finance"))
	{
		balance.GET("/:id/balance", controllers.GetBalance)
	}
}
