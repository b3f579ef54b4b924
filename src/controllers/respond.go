package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/models"
	"github.com/gin-gonic/gin"
)

// respondOK arma el sobre uniforme {status, message, data}.
func respondOK(ctx *gin.Context, httpStatus int, message string, data interface{}) {
	ctx.JSON(httpStatus, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// respondError traduce el tipo de error a un status HTTP. Los errores no
// clasificados salen como 500: con detalle fuera de release, genéricos en
// release para no filtrar internals.
func respondError(ctx *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case apperrors.KindValidation:
			status = http.StatusBadRequest
		case apperrors.KindUnauthorized:
			status = http.StatusUnauthorized
		case apperrors.KindForbidden:
			status = http.StatusForbidden
		case apperrors.KindNotFound:
			status = http.StatusNotFound
		case apperrors.KindConflict:
			status = http.StatusConflict
		case apperrors.KindInvalidState:
			status = http.StatusUnprocessableEntity
		case apperrors.KindStorage:
			log.Printf("[ERROR] storage: %v (causa: %v)", appErr.Message, appErr.Err)
			if gin.Mode() == gin.ReleaseMode {
				ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "error interno"})
				return
			}
		}
		ctx.JSON(status, gin.H{"status": "error", "message": appErr.Message})
		return
	}

	log.Printf("[ERROR] no clasificado: %v", err)
	if gin.Mode() == gin.ReleaseMode {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "error interno"})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
}

// currentActor reconstruye el principal {id, rol} que dejó el middleware.
func currentActor(ctx *gin.Context) models.Actor {
	return models.Actor{
		Id:  ctx.GetInt("userId"),
		Rol: ctx.GetString("userRol"),
	}
}
