package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type PresupuestoController struct {
	service *services.PresupuestoService
}

func NewPresupuestoController(service *services.PresupuestoService) *PresupuestoController {
	return &PresupuestoController{service: service}
}

// CreatePresupuesto handles POST requests to create/fork a budget version
func (c *PresupuestoController) CreatePresupuesto(ctx *gin.Context) {
	obraId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid obra ID"})
		return
	}

	presupuesto, err := c.service.CreatePresupuesto(obraId, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusCreated, "presupuesto creado", presupuesto)
}

// GetLatest handles GET requests for the current budget version with line items
func (c *PresupuestoController) GetLatest(ctx *gin.Context) {
	obraId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid obra ID"})
		return
	}

	presupuesto, err := c.service.FindLatest(obraId, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "presupuesto vigente", presupuesto)
}

// UpdateEstado handles PATCH requests to approve/reject/cancel/submit a budget
func (c *PresupuestoController) UpdateEstado(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid presupuesto ID"})
		return
	}

	var req dtos.UpdateEstadoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	presupuesto, err := c.service.UpdateEstado(id, &req, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "estado actualizado", presupuesto)
}

// ExportExcel handles GET requests to download the budget as a spreadsheet
func (c *PresupuestoController) ExportExcel(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid presupuesto ID"})
		return
	}

	buf, nombre, err := c.service.ExportExcel(id, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nombre))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
