package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ObraLink/ObraLink-Backend/src/models"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Tope por archivo para adjuntos y evidencia fotográfica.
const maxFileSize = 5 << 20 // 5MB

type ArchivoController struct {
	service *services.ArchivoService
}

func NewArchivoController(service *services.ArchivoService) *ArchivoController {
	return &ArchivoController{service: service}
}

func uploadDir(sub string) string {
	base := os.Getenv("UPLOAD_DIR")
	if base == "" {
		base = "uploads"
	}
	return filepath.Join(base, sub)
}

// guardarArchivoLocal escribe el multipart a disco con nombre único y
// devuelve (filename, path). El caller es responsable de limpiar el archivo
// si la metadata no llega a persistir.
func guardarArchivoLocal(ctx *gin.Context, campo, sub, prefijo string) (string, string, *models.ArchivoModel, error) {
	file, err := ctx.FormFile(campo)
	if err != nil {
		return "", "", nil, fmt.Errorf("no se subió ningún archivo en el campo %s", campo)
	}
	if file.Size > maxFileSize {
		return "", "", nil, fmt.Errorf("el archivo supera el tope de 5MB")
	}

	dir := uploadDir(sub)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", nil, fmt.Errorf("no se pudo crear el directorio de uploads")
	}

	filename := fmt.Sprintf("%s_%s%s", prefijo, uuid.NewString(), filepath.Ext(file.Filename))
	path := filepath.Join(dir, filename)
	if err := ctx.SaveUploadedFile(file, path); err != nil {
		return "", "", nil, fmt.Errorf("no se pudo guardar el archivo")
	}

	meta := &models.ArchivoModel{
		Filename:     filename,
		OriginalName: file.Filename,
		FilePath:     path,
		ContentType:  file.Header.Get("Content-Type"),
		Size:         file.Size,
	}
	return filename, path, meta, nil
}

// UploadArchivo handles POST requests to attach a document to an obra
func (c *ArchivoController) UploadArchivo(ctx *gin.Context) {
	obraId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid obra ID"})
		return
	}

	actor := currentActor(ctx)
	if actor.Rol == models.RolCliente {
		ctx.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "subir archivos requiere un rol distinto de Cliente"})
		return
	}

	tipo := ctx.PostForm("tipo")

	_, path, meta, err := guardarArchivoLocal(ctx, "archivo", "archivos", fmt.Sprintf("obra_%d", obraId))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	// El tipo se valida después de escribir el temporal; un tipo fuera de la
	// lista borra el archivo ya escrito
	if !models.TipoArchivoValido(tipo) {
		os.Remove(path)
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": fmt.Sprintf("tipo de archivo inválido: %s", tipo)})
		return
	}

	archivo := *meta
	archivo.ObraId = obraId
	archivo.Tipo = tipo
	archivo.UsuarioId = actor.Id

	if err := c.service.SaveArchivo(&archivo); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusCreated, "archivo subido", archivo)
}

// GetArchivos handles GET requests to list an obra's documents
func (c *ArchivoController) GetArchivos(ctx *gin.Context) {
	obraId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid obra ID"})
		return
	}

	archivos, err := c.service.ListArchivos(obraId, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, http.StatusOK, "archivos", archivos)
}

// DownloadArchivo handles GET requests to serve the stored binary
func (c *ArchivoController) DownloadArchivo(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid archivo ID"})
		return
	}

	archivo, err := c.service.GetArchivoByID(id, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	if _, err := os.Stat(archivo.FilePath); os.IsNotExist(err) {
		ctx.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "el archivo físico no existe"})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archivo.OriginalName))
	ctx.File(archivo.FilePath)
}

// DeleteArchivo handles DELETE requests to remove a document. Si la metadata
// se borró pero el binario quedó, la advertencia viaja en la respuesta.
func (c *ArchivoController) DeleteArchivo(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid archivo ID"})
		return
	}

	warning, err := c.service.DeleteArchivo(id, currentActor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	if warning != "" {
		ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "archivo borrado", "warning": warning})
		return
	}
	respondOK(ctx, http.StatusOK, "archivo borrado", nil)
}
