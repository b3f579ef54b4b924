package routes

import (
	"github.com/ObraLink/ObraLink-Backend/src/controllers"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService) {

	userController := controllers.NewUserController(service)

	// Public routes: login y el flujo de reseteo de contraseña
	users := router.Group("/users")
	{
		users.POST("/register", userController.Register)
		users.POST("/login", userController.Login)
		users.POST("/forgot-password", userController.ForgotPassword)
		users.PATCH("/reset-password/:token", userController.ResetPassword)
	}
}
