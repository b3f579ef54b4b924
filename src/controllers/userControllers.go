package controllers

import (
	"net/http"

	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// Register handles POST requests to create a new user with its role data
func (c *UserController) Register(ctx *gin.Context) {
	var req dtos.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	user, err := c.service.Register(&req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusCreated, "usuario registrado", user)
}

// Login handles POST requests to authenticate a user
func (c *UserController) Login(ctx *gin.Context) {
	var req dtos.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	resp, err := c.service.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "login exitoso", resp)
}

// ForgotPassword handles POST requests to issue a password reset token. La
// respuesta es la misma exista o no el email; el token viaja por mail, no acá.
func (c *UserController) ForgotPassword(ctx *gin.Context) {
	var req dtos.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if _, err := c.service.ForgotPassword(req.Email); err != nil {
		// NotFound también responde éxito para no revelar qué emails existen
		respondOK(ctx, http.StatusOK, "si el email existe, se envió un link de reseteo", nil)
		return
	}
	respondOK(ctx, http.StatusOK, "si el email existe, se envió un link de reseteo", nil)
}

// ResetPassword handles PATCH requests to consume a reset token
func (c *UserController) ResetPassword(ctx *gin.Context) {
	token := ctx.Param("token")

	var req dtos.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if err := c.service.ResetPassword(token, req.Password); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "contraseña actualizada", nil)
}
