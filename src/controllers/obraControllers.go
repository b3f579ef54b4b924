package controllers

import (
	"net/http"
	"strconv"

	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type ObraController struct {
	service            *services.ObraService
	pagoService        *services.PagoService
	presupuestoService *services.PresupuestoService
}

func NewObraController(service *services.ObraService, pagoService *services.PagoService, presupuestoService *services.PresupuestoService) *ObraController {
	return &ObraController{service: service, pagoService: pagoService, presupuestoService: presupuestoService}
}

// CreateObra handles POST requests to create a new obra
func (c *ObraController) CreateObra(ctx *gin.Context) {
	var req dtos.CreateObraRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	obra, err := c.service.CreateObra(&req, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusCreated, "obra creada", obra)
}

// GetObras handles GET requests to list obras visible to the caller
func (c *ObraController) GetObras(ctx *gin.Context) {
	obras, err := c.service.GetVisibleObras(currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "obras", obras)
}

// GetObraByID handles GET requests for obra detail, con su resumen financiero
func (c *ObraController) GetObraByID(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid obra ID"})
		return
	}

	actor := currentActor(ctx)
	obra, err := c.service.GetObraByID(id, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}

	resumen, err := c.service.GetObraResumen(id, actor, c.pagoService, c.presupuestoService)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, "obra", gin.H{"obra": obra, "resumen": resumen})
}

// FinalizeObra handles PATCH requests to mark an obra as finalized
func (c *ObraController) FinalizeObra(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid obra ID"})
		return
	}

	obra, err := c.service.FinalizeObra(id, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "obra finalizada", obra)
}
