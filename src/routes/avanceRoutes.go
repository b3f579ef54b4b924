package routes

import (
	"github.com/ObraLink/ObraLink-Backend/src/controllers"
	"github.com/ObraLink/ObraLink-Backend/src/middleware"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupAvanceRoutes(router *gin.Engine, service *services.AvanceService) {

	avanceController := controllers.NewAvanceController(service)

	// Protected routes, anidadas bajo la obra
	obras := router.Group("/obras")
	obras.Use(middleware.AuthMiddleware())
	{
		obras.POST("/:id/avances", avanceController.UploadAvance)
		obras.GET("/:id/avances", avanceController.GetAvances)
	}
}
