package routes

import (
	"github.com/ObraLink/ObraLink-Backend/src/controllers"
	"github.com/ObraLink/ObraLink-Backend/src/middleware"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupPresupuestoRoutes(router *gin.Engine, service *services.PresupuestoService, rubroService *services.RubroService) {

	presupuestoController := controllers.NewPresupuestoController(service)
	rubroController := controllers.NewRubroController(rubroService)

	// Anidadas bajo la obra: alta de versión y consulta de la vigente
	obras := router.Group("/obras")
	obras.Use(middleware.AuthMiddleware())
	{
		obras.POST("/:id/presupuestos", presupuestoController.CreatePresupuesto)
		obras.GET("/:id/presupuestos/latest", presupuestoController.GetLatest)
	}

	// Operaciones sobre un presupuesto puntual
	presupuestos := router.Group("/presupuestos")
	presupuestos.Use(middleware.AuthMiddleware())
	{
		presupuestos.PATCH("/:id/status", presupuestoController.UpdateEstado)
		presupuestos.GET("/:id/export", presupuestoController.ExportExcel)
		presupuestos.POST("/:id/rubros", rubroController.CreateRubro)
	}
}
