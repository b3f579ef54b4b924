package routes

import (
	"github.com/ObraLink/ObraLink-Backend/src/controllers"
	"github.com/ObraLink/ObraLink-Backend/src/middleware"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupObraRoutes(router *gin.Engine, service *services.ObraService, pagoService *services.PagoService, presupuestoService *services.PresupuestoService) {

	obraController := controllers.NewObraController(service, pagoService, presupuestoService)

	// Protected routes
	obras := router.Group("/obras")
	obras.Use(middleware.AuthMiddleware())
	{
		obras.POST("/", obraController.CreateObra)
		obras.GET("/", obraController.GetObras)
		obras.GET("/:id", obraController.GetObraByID)
		obras.PATCH("/:id/finalize", obraController.FinalizeObra)
	}
}
