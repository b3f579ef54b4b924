package services

import (
	"strings"
	"time"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/models"
	"gorm.io/gorm"
)

type PagoService struct {
	db                 *gorm.DB
	obraService        *ObraService
	presupuestoService *PresupuestoService
}

// NewPagoService creates a new instance of PagoService
func NewPagoService(db *gorm.DB, obraService *ObraService, presupuestoService *PresupuestoService) *PagoService {
	return &PagoService{db: db, obraService: obraService, presupuestoService: presupuestoService}
}

// RecordPago agrega una entrada al libro de pagos de la obra. Solo Arquitecto.
// Requiere un presupuesto aprobado, y el total pagado nunca puede superar el
// total de ese presupuesto: el tope se valida acá, del lado del servidor.
func (s *PagoService) RecordPago(obraId int, req *dtos.CreatePagoRequest, actor models.Actor) (*models.PagoModel, error) {
	if actor.Rol != models.RolArquitecto {
		return nil, apperrors.Forbidden("registrar pagos requiere rol Arquitecto")
	}

	if _, err := s.obraService.GetObraByID(obraId, actor); err != nil {
		return nil, err
	}

	var missing []string
	if req.Monto == 0 {
		missing = append(missing, "monto")
	}
	if strings.TrimSpace(req.FechaPago) == "" {
		missing = append(missing, "fechaPago")
	}
	if len(missing) > 0 {
		return nil, apperrors.Validation("faltan campos obligatorios: %s", strings.Join(missing, ", "))
	}
	if req.Monto < 0 {
		return nil, apperrors.Validation("monto debe ser un número positivo")
	}

	fecha, err := time.Parse("2006-01-02", req.FechaPago)
	if err != nil {
		return nil, apperrors.Validation("fechaPago inválida, usar formato YYYY-MM-DD")
	}

	aprobado, err := s.presupuestoService.findLatestByEstado(obraId, models.PresupuestoAprobado)
	if err != nil {
		var appErr *apperrors.Error
		if e, ok := err.(*apperrors.Error); ok {
			appErr = e
		}
		if appErr != nil && appErr.Kind == apperrors.KindNotFound {
			return nil, apperrors.InvalidState("la obra %d no tiene un presupuesto aprobado contra el cual registrar pagos", obraId)
		}
		return nil, err
	}

	pagado, err := s.TotalPagado(obraId)
	if err != nil {
		return nil, err
	}
	if pagado+req.Monto > aprobado.Total() {
		return nil, apperrors.Validation(
			"el pago de %.2f supera el saldo del presupuesto aprobado (total %.2f, pagado %.2f)",
			req.Monto, aprobado.Total(), pagado)
	}

	pago := models.PagoModel{
		ObraId:      obraId,
		Monto:       req.Monto,
		FechaPago:   fecha,
		Descripcion: strings.TrimSpace(req.Descripcion),
		UsuarioId:   actor.Id,
	}
	if err := s.db.Create(&pago).Error; err != nil {
		return nil, apperrors.Storage("no se pudo registrar el pago", err)
	}
	return &pago, nil
}

// TotalPagado suma todos los pagos de la obra.
func (s *PagoService) TotalPagado(obraId int) (float64, error) {
	var total float64
	err := s.db.Model(&models.PagoModel{}).
		Where("obra_id = ?", obraId).
		Select("COALESCE(SUM(monto), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Storage("no se pudo sumar los pagos", err)
	}
	return total, nil
}

// ListPagos lista los pagos de la obra, del más reciente al más viejo. El
// desempate por id mantiene un orden estable entre pagos del mismo día.
func (s *PagoService) ListPagos(obraId int, actor models.Actor) ([]models.PagoModel, error) {
	if _, err := s.obraService.GetObraByID(obraId, actor); err != nil {
		return nil, err
	}

	var pagos []models.PagoModel
	err := s.db.Where("obra_id = ?", obraId).
		Order("fecha_pago DESC").
		Order("id DESC").
		Find(&pagos).Error
	if err != nil {
		return nil, apperrors.Storage("no se pudieron listar los pagos", err)
	}
	return pagos, nil
}
