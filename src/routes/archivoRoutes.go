package routes

import (
	"github.com/ObraLink/ObraLink-Backend/src/controllers"
	"github.com/ObraLink/ObraLink-Backend/src/middleware"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupArchivoRoutes(router *gin.Engine, service *services.ArchivoService) {

	archivoController := controllers.NewArchivoController(service)

	// Protected routes. En POST y GET el :id es la obra; en DELETE y
	// descarga es el archivo.
	files := router.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.POST("/:id", archivoController.UploadArchivo)
		files.GET("/:id", archivoController.GetArchivos)
		files.GET("/:id/download", archivoController.DownloadArchivo)
		files.DELETE("/:id", archivoController.DeleteArchivo)
	}
}
