package services

import (
	"errors"
	"log"
	"os"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/models"
	"github.com/ObraLink/ObraLink-Backend/src/utils"
	"gorm.io/gorm"
)

type AvanceService struct {
	db          *gorm.DB
	obraService *ObraService
}

// NewAvanceService creates a new instance of AvanceService
func NewAvanceService(db *gorm.DB, obraService *ObraService) *AvanceService {
	return &AvanceService{db: db, obraService: obraService}
}

// SaveAvance persiste la evidencia fotográfica ya escrita a disco. Valida que
// el rubro exista y pertenezca a un presupuesto de la obra; si algo falla, el
// binario huérfano se limpia antes de devolver el error.
func (s *AvanceService) SaveAvance(avance *models.AvanceModel) error {
	var rubro models.RubroModel
	if err := s.db.First(&rubro, avance.RubroId).Error; err != nil {
		os.Remove(avance.FilePath)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("no existe el rubro %d", avance.RubroId)
		}
		return apperrors.Storage("no se pudo buscar el rubro", err)
	}

	var presupuesto models.PresupuestoModel
	if err := s.db.First(&presupuesto, rubro.PresupuestoId).Error; err != nil {
		os.Remove(avance.FilePath)
		return apperrors.Storage("no se pudo buscar el presupuesto del rubro", err)
	}
	if presupuesto.ObraId != avance.ObraId {
		os.Remove(avance.FilePath)
		return apperrors.Validation("el rubro %d no pertenece a la obra %d", avance.RubroId, avance.ObraId)
	}

	if err := s.db.Create(avance).Error; err != nil {
		os.Remove(avance.FilePath)
		return apperrors.Storage("no se pudo guardar la evidencia de avance", err)
	}

	if utils.DriveMirrorEnabled() {
		if err := utils.MirrorFileToGoogleDrive(avance.FilePath, avance.Filename, avance.ContentType); err != nil {
			log.Printf("[AVANCE] No se pudo espejar %s en Drive: %v", avance.Filename, err)
		}
	}
	return nil
}

// ListAvances lista la evidencia fotográfica de una obra visible para el actor.
func (s *AvanceService) ListAvances(obraId int, actor models.Actor) ([]models.AvanceModel, error) {
	if _, err := s.obraService.GetObraByID(obraId, actor); err != nil {
		return nil, err
	}

	var avances []models.AvanceModel
	err := s.db.Preload("Rubro").
		Where("obra_id = ?", obraId).
		Order("id DESC").
		Find(&avances).Error
	if err != nil {
		return nil, apperrors.Storage("no se pudieron listar los avances", err)
	}
	return avances, nil
}
