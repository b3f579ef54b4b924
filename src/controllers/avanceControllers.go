package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/ObraLink/ObraLink-Backend/src/models"
	"github.com/ObraLink/ObraLink-Backend/src/policy"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type AvanceController struct {
	service *services.AvanceService
}

func NewAvanceController(service *services.AvanceService) *AvanceController {
	return &AvanceController{service: service}
}

// UploadAvance handles POST requests to attach photo evidence to a rubro
func (c *AvanceController) UploadAvance(ctx *gin.Context) {
	obraId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid obra ID"})
		return
	}

	actor := currentActor(ctx)
	if !policy.CanManageObra(actor.Rol) {
		ctx.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "subir avances requiere rol Arquitecto o Encargado"})
		return
	}

	rubroId, err := strconv.Atoi(ctx.PostForm("rubroId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "faltan campos obligatorios: rubroId"})
		return
	}

	_, path, meta, err := guardarArchivoLocal(ctx, "foto", "avances", fmt.Sprintf("obra_%d_rubro_%d", obraId, rubroId))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	// La evidencia de avance es siempre fotográfica
	if !strings.HasPrefix(meta.ContentType, "image/") {
		os.Remove(path)
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "la evidencia de avance debe ser una imagen"})
		return
	}

	avance := models.AvanceModel{
		ObraId:      obraId,
		RubroId:     rubroId,
		Descripcion: ctx.PostForm("descripcion"),
		Filename:    meta.Filename,
		FilePath:    meta.FilePath,
		ContentType: meta.ContentType,
		Size:        meta.Size,
		UsuarioId:   actor.Id,
	}

	if err := c.service.SaveAvance(&avance); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusCreated, "avance registrado", avance)
}

// GetAvances handles GET requests to list an obra's photo evidence
func (c *AvanceController) GetAvances(ctx *gin.Context) {
	obraId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid obra ID"})
		return
	}

	avances, err := c.service.ListAvances(obraId, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "avances", avances)
}
