package services

import (
	"errors"
	"strings"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/lifecycle"
	"github.com/ObraLink/ObraLink-Backend/src/models"
	"github.com/ObraLink/ObraLink-Backend/src/policy"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RubroService struct {
	db                 *gorm.DB
	presupuestoService *PresupuestoService
}

// NewRubroService creates a new instance of RubroService
func NewRubroService(db *gorm.DB, presupuestoService *PresupuestoService) *RubroService {
	return &RubroService{db: db, presupuestoService: presupuestoService}
}

// CreateRubro agrega un rubro al presupuesto junto con su tracking inicial.
// Solo con el presupuesto en Borrador o Negociación. Rubro y tracking se
// insertan en la misma transacción: quedan los dos o ninguno.
func (s *RubroService) CreateRubro(presupuestoId int, req *dtos.CreateRubroRequest, actor models.Actor) (*models.RubroModel, error) {
	if !policy.CanManageObra(actor.Rol) {
		return nil, apperrors.Forbidden("agregar rubros requiere rol Arquitecto o Encargado")
	}

	presupuesto, err := s.presupuestoService.GetPresupuestoByID(presupuestoId, actor)
	if err != nil {
		return nil, err
	}

	if !lifecycle.PermiteCrearRubros(presupuesto.Estado) {
		return nil, apperrors.InvalidState("no se pueden agregar rubros con el presupuesto en estado %s", presupuesto.Estado)
	}

	var missing []string
	if strings.TrimSpace(req.Descripcion) == "" {
		missing = append(missing, "descripcion")
	}
	if req.Cantidad == 0 {
		missing = append(missing, "cantidad")
	}
	if req.CostoUnitario == 0 {
		missing = append(missing, "costoUnitario")
	}
	if len(missing) > 0 {
		return nil, apperrors.Validation("faltan campos obligatorios: %s", strings.Join(missing, ", "))
	}
	if req.Cantidad < 0 {
		return nil, apperrors.Validation("cantidad debe ser un número positivo")
	}
	if req.CostoUnitario < 0 {
		return nil, apperrors.Validation("costoUnitario debe ser un número positivo")
	}

	inicio, err := parseFecha(req.FechaInicioPlan, "fechaInicioPlan")
	if err != nil {
		return nil, err
	}
	fin, err := parseFecha(req.FechaFinPlan, "fechaFinPlan")
	if err != nil {
		return nil, err
	}

	rubro := models.RubroModel{
		PresupuestoId:   presupuesto.Id,
		Descripcion:     strings.TrimSpace(req.Descripcion),
		Unidad:          strings.TrimSpace(req.Unidad),
		Cantidad:        req.Cantidad,
		CostoUnitario:   req.CostoUnitario,
		FechaInicioPlan: inicio,
		FechaFinPlan:    fin,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rubro).Error; err != nil {
			return err
		}
		tracking := models.TrackingAvanceModel{
			RubroId:          rubro.Id,
			AvanceEstado:     models.AvanceNoIniciado,
			PorcentajeAvance: 0,
		}
		return tx.Create(&tracking).Error
	})
	if err != nil {
		return nil, apperrors.Storage("no se pudo crear el rubro", err)
	}

	return &rubro, nil
}

// getRubroConPresupuesto trae el rubro con su presupuesto y valida
// visibilidad del actor.
func (s *RubroService) getRubroConPresupuesto(rubroId int, actor models.Actor) (*models.RubroModel, *models.PresupuestoModel, error) {
	var rubro models.RubroModel
	if err := s.db.First(&rubro, rubroId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("no existe el rubro %d", rubroId)
		}
		return nil, nil, apperrors.Storage("no se pudo buscar el rubro", err)
	}

	presupuesto, err := s.presupuestoService.GetPresupuestoByID(rubro.PresupuestoId, actor)
	if err != nil {
		return nil, nil, err
	}
	return &rubro, presupuesto, nil
}

// UpdateRubro edita un rubro. Solo en Borrador o Rechazado.
func (s *RubroService) UpdateRubro(rubroId int, req *dtos.UpdateRubroRequest, actor models.Actor) (*models.RubroModel, error) {
	rubro, presupuesto, err := s.getRubroConPresupuesto(rubroId, actor)
	if err != nil {
		return nil, err
	}

	if !policy.CanEditLineItems(actor.Rol, presupuesto.Estado) {
		if actor.Rol == models.RolCliente {
			return nil, apperrors.Forbidden("editar rubros requiere rol Arquitecto o Encargado")
		}
		return nil, apperrors.InvalidState("no se pueden editar rubros con el presupuesto en estado %s", presupuesto.Estado)
	}

	cambios := map[string]interface{}{}
	if req.Descripcion != nil {
		if strings.TrimSpace(*req.Descripcion) == "" {
			return nil, apperrors.Validation("descripcion no puede quedar vacía")
		}
		cambios["descripcion"] = strings.TrimSpace(*req.Descripcion)
	}
	if req.Unidad != nil {
		cambios["unidad"] = strings.TrimSpace(*req.Unidad)
	}
	if req.Cantidad != nil {
		if *req.Cantidad <= 0 {
			return nil, apperrors.Validation("cantidad debe ser un número positivo")
		}
		cambios["cantidad"] = *req.Cantidad
	}
	if req.CostoUnitario != nil {
		if *req.CostoUnitario <= 0 {
			return nil, apperrors.Validation("costoUnitario debe ser un número positivo")
		}
		cambios["costo_unitario"] = *req.CostoUnitario
	}
	if req.FechaInicioPlan != nil {
		inicio, err := parseFecha(req.FechaInicioPlan, "fechaInicioPlan")
		if err != nil {
			return nil, err
		}
		cambios["fecha_inicio_plan"] = inicio
	}
	if req.FechaFinPlan != nil {
		fin, err := parseFecha(req.FechaFinPlan, "fechaFinPlan")
		if err != nil {
			return nil, err
		}
		cambios["fecha_fin_plan"] = fin
	}

	if len(cambios) == 0 {
		return rubro, nil
	}

	if err := s.db.Model(rubro).Updates(cambios).Error; err != nil {
		return nil, apperrors.Storage("no se pudo actualizar el rubro", err)
	}

	if err := s.db.First(rubro, rubroId).Error; err != nil {
		return nil, apperrors.Storage("no se pudo releer el rubro", err)
	}
	return rubro, nil
}

// DeleteRubro borra el rubro y su tracking. Solo en Borrador o Rechazado.
func (s *RubroService) DeleteRubro(rubroId int, actor models.Actor) error {
	rubro, presupuesto, err := s.getRubroConPresupuesto(rubroId, actor)
	if err != nil {
		return err
	}

	if !policy.CanEditLineItems(actor.Rol, presupuesto.Estado) {
		if actor.Rol == models.RolCliente {
			return apperrors.Forbidden("borrar rubros requiere rol Arquitecto o Encargado")
		}
		return apperrors.InvalidState("no se pueden borrar rubros con el presupuesto en estado %s", presupuesto.Estado)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rubro_id = ?", rubro.Id).Delete(&models.TrackingAvanceModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RubroModel{}, rubro.Id).Error
	})
	if err != nil {
		return apperrors.Storage("no se pudo borrar el rubro", err)
	}
	return nil
}

// UpdateAvance registra el avance de un rubro con un upsert atómico sobre
// rubro_id: dos reportes concurrentes nunca dejan dos filas. Si el estado es
// Terminado el porcentaje se fuerza a 100 acá, venga lo que venga del cliente.
func (s *RubroService) UpdateAvance(rubroId int, req *dtos.UpdateAvanceRequest, actor models.Actor) (*models.TrackingAvanceModel, error) {
	if !policy.CanManageObra(actor.Rol) {
		return nil, apperrors.Forbidden("actualizar avances requiere rol Arquitecto o Encargado")
	}

	switch req.AvanceEstado {
	case models.AvanceNoIniciado, models.AvanceEnProceso, models.AvanceTerminado, models.AvanceBloqueado:
	default:
		return nil, apperrors.Validation("avanceEstado inválido: %s", req.AvanceEstado)
	}

	porcentaje := req.PorcentajeAvance
	if req.AvanceEstado == models.AvanceTerminado {
		porcentaje = 100
	}
	if porcentaje < 0 || porcentaje > 100 {
		return nil, apperrors.Validation("porcentajeAvance debe estar entre 0 y 100")
	}

	rubro, _, err := s.getRubroConPresupuesto(rubroId, actor)
	if err != nil {
		return nil, err
	}

	tracking := models.TrackingAvanceModel{
		RubroId:          rubro.Id,
		AvanceEstado:     req.AvanceEstado,
		PorcentajeAvance: porcentaje,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rubro_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"avance_estado", "porcentaje_avance", "updated_at"}),
	}).Create(&tracking).Error
	if err != nil {
		return nil, apperrors.Storage("no se pudo registrar el avance", err)
	}

	var actual models.TrackingAvanceModel
	if err := s.db.Where("rubro_id = ?", rubro.Id).First(&actual).Error; err != nil {
		return nil, apperrors.Storage("no se pudo releer el avance", err)
	}
	return &actual, nil
}
