package services

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/lifecycle"
	"github.com/ObraLink/ObraLink-Backend/src/models"
	"github.com/ObraLink/ObraLink-Backend/src/policy"
	excelize "github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type PresupuestoService struct {
	db          *gorm.DB
	obraService *ObraService
}

// NewPresupuestoService creates a new instance of PresupuestoService
func NewPresupuestoService(db *gorm.DB, obraService *ObraService) *PresupuestoService {
	return &PresupuestoService{db: db, obraService: obraService}
}

// CreatePresupuesto crea la versión siguiente del presupuesto de la obra. Si
// había una versión previa, copia todos sus rubros (sin observaciones) con un
// tracking fresco en No Iniciado / 0%. Todo dentro de una transacción.
//
// Dos llamadas concurrentes pueden leer el mismo máximo y pelear por la misma
// versión; el índice único (obra_id, version_numero) hace perder a una de las
// dos y eso se devuelve como Conflict, no como error genérico.
func (s *PresupuestoService) CreatePresupuesto(obraId int, actor models.Actor) (*models.PresupuestoModel, error) {
	if !policy.CanManageObra(actor.Rol) {
		return nil, apperrors.Forbidden("crear presupuestos requiere rol Arquitecto o Encargado")
	}

	if _, err := s.obraService.GetObraByID(obraId, actor); err != nil {
		return nil, err
	}

	var nuevo models.PresupuestoModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1) Buscar la versión máxima actual (si hay)
		var previo models.PresupuestoModel
		hayPrevio := true
		err := tx.Where("obra_id = ?", obraId).
			Order("version_numero DESC").
			First(&previo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hayPrevio = false
		} else if err != nil {
			return err
		}

		nuevo = models.PresupuestoModel{
			ObraId:        obraId,
			VersionNumero: 1,
			Estado:        models.PresupuestoBorrador,
		}
		if hayPrevio {
			nuevo.VersionNumero = previo.VersionNumero + 1
		}

		// 2) Insertar la versión nueva; si otra request ganó la carrera, el
		// índice único corta acá
		if err := tx.Create(&nuevo).Error; err != nil {
			return err
		}

		if !hayPrevio {
			return nil
		}

		// 3) Copiar los rubros de la versión anterior
		var rubros []models.RubroModel
		if err := tx.Where("presupuesto_id = ?", previo.Id).Order("id").Find(&rubros).Error; err != nil {
			return err
		}

		for _, r := range rubros {
			copia := models.RubroModel{
				PresupuestoId:   nuevo.Id,
				Descripcion:     r.Descripcion,
				Unidad:          r.Unidad,
				Cantidad:        r.Cantidad,
				CostoUnitario:   r.CostoUnitario,
				FechaInicioPlan: r.FechaInicioPlan,
				FechaFinPlan:    r.FechaFinPlan,
				// Observaciones en blanco: eran devoluciones sobre la versión vieja
			}
			if err := tx.Create(&copia).Error; err != nil {
				return err
			}

			tracking := models.TrackingAvanceModel{
				RubroId:          copia.Id,
				AvanceEstado:     models.AvanceNoIniciado,
				PorcentajeAvance: 0,
			}
			if err := tx.Create(&tracking).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("otra versión del presupuesto se creó al mismo tiempo, reintentar")
		}
		return nil, apperrors.Storage("no se pudo crear el presupuesto", err)
	}

	return &nuevo, nil
}

// FindLatest devuelve la versión vigente (máximo version_numero) con sus
// rubros y tracking precargados.
func (s *PresupuestoService) FindLatest(obraId int, actor models.Actor) (*models.PresupuestoModel, error) {
	if _, err := s.obraService.GetObraByID(obraId, actor); err != nil {
		return nil, err
	}

	var presupuesto models.PresupuestoModel
	err := s.db.Preload("Rubros", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Rubros.Tracking").
		Where("obra_id = ?", obraId).
		Order("version_numero DESC").
		First(&presupuesto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("la obra %d no tiene presupuestos", obraId)
		}
		return nil, apperrors.Storage("no se pudo buscar el presupuesto", err)
	}
	return &presupuesto, nil
}

// findLatestByEstado busca la versión más alta en el estado dado, con rubros.
// Lo usan el resumen de obra y el tope de pagos.
func (s *PresupuestoService) findLatestByEstado(obraId int, estado string) (*models.PresupuestoModel, error) {
	var presupuesto models.PresupuestoModel
	err := s.db.Preload("Rubros").
		Where("obra_id = ? AND estado = ?", obraId, estado).
		Order("version_numero DESC").
		First(&presupuesto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("la obra %d no tiene presupuestos en estado %s", obraId, estado)
		}
		return nil, apperrors.Storage("no se pudo buscar el presupuesto", err)
	}
	return &presupuesto, nil
}

// GetPresupuestoByID devuelve el presupuesto con su obra, chequeando
// visibilidad del actor sobre la obra.
func (s *PresupuestoService) GetPresupuestoByID(id int, actor models.Actor) (*models.PresupuestoModel, error) {
	var presupuesto models.PresupuestoModel
	err := s.db.Preload("Obra").First(&presupuesto, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no existe el presupuesto %d", id)
		}
		return nil, apperrors.Storage("no se pudo buscar el presupuesto", err)
	}

	if !policy.CanViewObra(actor, presupuesto.Obra) {
		return nil, apperrors.Forbidden("la obra del presupuesto no pertenece al cliente")
	}
	return &presupuesto, nil
}

// UpdateEstado aplica una transición de estado con la tabla del paquete
// lifecycle. También persiste las notas generales y la devolución por rubro si
// vienen en el request. Cada rubroId de la devolución tiene que pertenecer al
// presupuesto: una devolución cruzada se rechaza entera.
func (s *PresupuestoService) UpdateEstado(id int, req *dtos.UpdateEstadoRequest, actor models.Actor) (*models.PresupuestoModel, error) {
	if !lifecycle.EstadoValido(req.Estado) {
		return nil, apperrors.Validation("estado inválido: %s", req.Estado)
	}

	presupuesto, err := s.GetPresupuestoByID(id, actor)
	if err != nil {
		return nil, err
	}

	// Un cliente solo puede aprobar o rechazar, y solo sobre su obra (ya
	// validado por visibilidad).
	if actor.Rol == models.RolCliente && !policy.CanActOnBudgetAsClient(actor.Rol, req.Estado) {
		return nil, apperrors.Forbidden("un cliente solo puede aprobar o rechazar el presupuesto")
	}

	if err := lifecycle.Check(presupuesto.Estado, req.Estado, actor.Rol); err != nil {
		return nil, err
	}

	// Validar pertenencia de la devolución antes de escribir nada
	if len(req.RubroFeedback) > 0 {
		var propios []int
		if err := s.db.Model(&models.RubroModel{}).
			Where("presupuesto_id = ?", presupuesto.Id).
			Pluck("id", &propios).Error; err != nil {
			return nil, apperrors.Storage("no se pudieron buscar los rubros", err)
		}
		esPropio := make(map[int]bool, len(propios))
		for _, id := range propios {
			esPropio[id] = true
		}
		for _, fb := range req.RubroFeedback {
			if !esPropio[fb.RubroId] {
				return nil, apperrors.Validation("el rubro %d no pertenece al presupuesto %d", fb.RubroId, presupuesto.Id)
			}
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		cambios := map[string]interface{}{"estado": req.Estado}
		if req.NotasGenerales != nil {
			cambios["notas_generales"] = *req.NotasGenerales
		}
		if err := tx.Model(presupuesto).Updates(cambios).Error; err != nil {
			return err
		}

		for _, fb := range req.RubroFeedback {
			if err := tx.Model(&models.RubroModel{}).
				Where("id = ?", fb.RubroId).
				Update("observaciones", fb.Observacion).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage("no se pudo actualizar el estado del presupuesto", err)
	}

	presupuesto.Estado = req.Estado
	if req.NotasGenerales != nil {
		presupuesto.NotasGenerales = *req.NotasGenerales
	}
	return presupuesto, nil
}

// ExportExcel arma una planilla con los rubros del presupuesto y su total.
func (s *PresupuestoService) ExportExcel(id int, actor models.Actor) (*bytes.Buffer, string, error) {
	if !policy.CanManageObra(actor.Rol) {
		return nil, "", apperrors.Forbidden("exportar presupuestos requiere rol Arquitecto o Encargado")
	}

	presupuesto, err := s.GetPresupuestoByID(id, actor)
	if err != nil {
		return nil, "", err
	}

	var rubros []models.RubroModel
	if err := s.db.Where("presupuesto_id = ?", presupuesto.Id).Order("id").Find(&rubros).Error; err != nil {
		return nil, "", apperrors.Storage("no se pudieron buscar los rubros", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Presupuesto"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Descripción", "Unidad", "Cantidad", "Costo Unitario", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	var total float64
	for i, r := range rubros {
		fila := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", fila), r.Descripcion)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", fila), r.Unidad)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", fila), r.Cantidad)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", fila), r.CostoUnitario)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", fila), r.Total())
		total += r.Total()
	}
	filaTotal := len(rubros) + 2
	f.SetCellValue(sheet, fmt.Sprintf("D%d", filaTotal), "TOTAL")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", filaTotal), total)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", apperrors.Storage("no se pudo generar la planilla", err)
	}

	nombre := fmt.Sprintf("presupuesto_obra%d_v%d.xlsx", presupuesto.ObraId, presupuesto.VersionNumero)
	return buf, nombre, nil
}
