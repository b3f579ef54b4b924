package controllers

import (
	"net/http"
	"strconv"

	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type RubroController struct {
	service *services.RubroService
}

func NewRubroController(service *services.RubroService) *RubroController {
	return &RubroController{service: service}
}

// CreateRubro handles POST requests to add a line item to a budget
func (c *RubroController) CreateRubro(ctx *gin.Context) {
	presupuestoId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid presupuesto ID"})
		return
	}

	var req dtos.CreateRubroRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	rubro, err := c.service.CreateRubro(presupuestoId, &req, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusCreated, "rubro creado", rubro)
}

// UpdateRubro handles PUT requests to edit a line item
func (c *RubroController) UpdateRubro(ctx *gin.Context) {
	rubroId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid rubro ID"})
		return
	}

	var req dtos.UpdateRubroRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	rubro, err := c.service.UpdateRubro(rubroId, &req, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "rubro actualizado", rubro)
}

// DeleteRubro handles DELETE requests to remove a line item
func (c *RubroController) DeleteRubro(ctx *gin.Context) {
	rubroId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid rubro ID"})
		return
	}

	if err := c.service.DeleteRubro(rubroId, currentActor(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "rubro borrado", nil)
}

// UpdateAvance handles PUT requests to report line item progress
func (c *RubroController) UpdateAvance(ctx *gin.Context) {
	rubroId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid rubro ID"})
		return
	}

	var req dtos.UpdateAvanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	tracking, err := c.service.UpdateAvance(rubroId, &req, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "avance registrado", tracking)
}
