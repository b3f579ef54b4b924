package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/models"
	"github.com/ObraLink/ObraLink-Backend/src/utils"
	"gorm.io/gorm"
)

type ArchivoService struct {
	db          *gorm.DB
	obraService *ObraService
}

// NewArchivoService creates a new instance of ArchivoService
func NewArchivoService(db *gorm.DB, obraService *ObraService) *ArchivoService {
	return &ArchivoService{db: db, obraService: obraService}
}

// SaveArchivo persiste la metadata de un archivo ya escrito a disco. Si el
// insert falla, el binario huérfano se borra acá antes de devolver el error:
// escritura y metadata se tratan como un par compensable.
func (s *ArchivoService) SaveArchivo(archivo *models.ArchivoModel) error {
	if !models.TipoArchivoValido(archivo.Tipo) {
		os.Remove(archivo.FilePath)
		return apperrors.Validation("tipo de archivo inválido: %s", archivo.Tipo)
	}

	if err := s.db.Create(archivo).Error; err != nil {
		os.Remove(archivo.FilePath)
		return apperrors.Storage("no se pudo guardar la metadata del archivo", err)
	}

	// Espejo opcional en Drive; si falla, queda en el log y nada más
	if utils.DriveMirrorEnabled() {
		if err := utils.MirrorFileToGoogleDrive(archivo.FilePath, archivo.Filename, archivo.ContentType); err != nil {
			log.Printf("[ARCHIVO] No se pudo espejar %s en Drive: %v", archivo.Filename, err)
		}
	}
	return nil
}

// GetArchivoByID devuelve la metadata del archivo verificando visibilidad del
// actor sobre la obra.
func (s *ArchivoService) GetArchivoByID(id int, actor models.Actor) (*models.ArchivoModel, error) {
	var archivo models.ArchivoModel
	if err := s.db.First(&archivo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no existe el archivo %d", id)
		}
		return nil, apperrors.Storage("no se pudo buscar el archivo", err)
	}

	if _, err := s.obraService.GetObraByID(archivo.ObraId, actor); err != nil {
		return nil, err
	}
	return &archivo, nil
}

// ListArchivos lista los archivos de una obra visible para el actor.
func (s *ArchivoService) ListArchivos(obraId int, actor models.Actor) ([]models.ArchivoModel, error) {
	if _, err := s.obraService.GetObraByID(obraId, actor); err != nil {
		return nil, err
	}

	var archivos []models.ArchivoModel
	if err := s.db.Where("obra_id = ?", obraId).Order("id DESC").Find(&archivos).Error; err != nil {
		return nil, apperrors.Storage("no se pudieron listar los archivos", err)
	}
	return archivos, nil
}

// DeleteArchivo borra la fila de metadata y después el binario. Si la fila se
// borró pero el archivo físico no, la operación se reporta exitosa con una
// advertencia explícita sobre el residuo: no se enmascara.
func (s *ArchivoService) DeleteArchivo(id int, actor models.Actor) (string, error) {
	if actor.Rol == models.RolCliente {
		return "", apperrors.Forbidden("borrar archivos requiere un rol distinto de Cliente")
	}

	archivo, err := s.GetArchivoByID(id, actor)
	if err != nil {
		return "", err
	}

	if err := s.db.Delete(&models.ArchivoModel{}, archivo.Id).Error; err != nil {
		return "", apperrors.Storage("no se pudo borrar la metadata del archivo", err)
	}

	if err := os.Remove(archivo.FilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Sprintf("metadata borrada, pero el archivo físico quedó en disco: %v", err), nil
	}
	return "", nil
}
