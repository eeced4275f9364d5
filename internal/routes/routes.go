package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Recovery and request logging run ahead of every route
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	VehicleRoutes(r)
	OwnerRoutes(r)
	ProcedureRoutes(r)
	PaymentRoutes(r)
	AdminRoutes(r)

	return r
}
