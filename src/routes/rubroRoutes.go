package routes

import (
	"github.com/ObraLink/ObraLink-Backend/src/controllers"
	"github.com/ObraLink/ObraLink-Backend/src/middleware"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupRubroRoutes(router *gin.Engine, service *services.RubroService) {

	rubroController := controllers.NewRubroController(service)

	// Protected routes
	rubros := router.Group("/rubros")
	rubros.Use(middleware.AuthMiddleware())
	{
		rubros.PUT("/:id", rubroController.UpdateRubro)
		rubros.PUT("/:id/avance", rubroController.UpdateAvance)
		rubros.DELETE("/:id", rubroController.DeleteRubro)
	}
}
