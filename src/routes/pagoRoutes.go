package routes

import (
	"github.com/ObraLink/ObraLink-Backend/src/controllers"
	"github.com/ObraLink/ObraLink-Backend/src/middleware"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupPagoRoutes(router *gin.Engine, service *services.PagoService) {

	pagoController := controllers.NewPagoController(service)

	// Protected routes, anidadas bajo la obra
	obras := router.Group("/obras")
	obras.Use(middleware.AuthMiddleware())
	{
		obras.POST("/:id/pagos", pagoController.CreatePago)
		obras.GET("/:id/pagos", pagoController.GetPagos)
	}
}
