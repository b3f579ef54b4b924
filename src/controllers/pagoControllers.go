package controllers

import (
	"net/http"
	"strconv"

	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type PagoController struct {
	service *services.PagoService
}

func NewPagoController(service *services.PagoService) *PagoController {
	return &PagoController{service: service}
}

// CreatePago handles POST requests to record a payment against an obra
func (c *PagoController) CreatePago(ctx *gin.Context) {
	obraId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid obra ID"})
		return
	}

	var req dtos.CreatePagoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	pago, err := c.service.RecordPago(obraId, &req, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusCreated, "pago registrado", pago)
}

// GetPagos handles GET requests to list the payment ledger of an obra
func (c *PagoController) GetPagos(ctx *gin.Context) {
	obraId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid obra ID"})
		return
	}

	pagos, err := c.service.ListPagos(obraId, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	total, err := c.service.TotalPagado(obraId)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, "pagos", gin.H{"pagos": pagos, "totalPagado": total})
}
