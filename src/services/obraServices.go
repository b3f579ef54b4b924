package services

import (
	"errors"
	"strings"
	"time"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/models"
	"github.com/ObraLink/ObraLink-Backend/src/policy"
	"gorm.io/gorm"
)

type ObraService struct {
	db *gorm.DB
}

// NewObraService creates a new instance of ObraService
func NewObraService(db *gorm.DB) *ObraService {
	return &ObraService{db: db}
}

func parseFecha(valor *string, campo string) (*time.Time, error) {
	if valor == nil || strings.TrimSpace(*valor) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *valor)
	if err != nil {
		return nil, apperrors.Validation("%s inválida, usar formato YYYY-MM-DD", campo)
	}
	return &t, nil
}

// CreateObra crea una obra a nombre del actor. Solo Arquitecto o Encargado.
func (s *ObraService) CreateObra(req *dtos.CreateObraRequest, actor models.Actor) (*models.ObraModel, error) {
	if !policy.CanManageObra(actor.Rol) {
		return nil, apperrors.Forbidden("crear obras requiere rol Arquitecto o Encargado")
	}

	var missing []string
	if strings.TrimSpace(req.Nombre) == "" {
		missing = append(missing, "nombre")
	}
	if req.ClienteId == 0 {
		missing = append(missing, "clienteId")
	}
	if len(missing) > 0 {
		return nil, apperrors.Validation("faltan campos obligatorios: %s", strings.Join(missing, ", "))
	}

	// El cliente tiene que existir y tener rol Cliente
	var cliente models.UserModel
	if err := s.db.First(&cliente, req.ClienteId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no existe el cliente %d", req.ClienteId)
		}
		return nil, apperrors.Storage("no se pudo buscar el cliente", err)
	}
	if cliente.Rol != models.RolCliente {
		return nil, apperrors.Validation("el usuario %d no tiene rol Cliente", req.ClienteId)
	}

	inicio, err := parseFecha(req.FechaInicioEstimada, "fechaInicioEstimada")
	if err != nil {
		return nil, err
	}
	fin, err := parseFecha(req.FechaFinEstimada, "fechaFinEstimada")
	if err != nil {
		return nil, err
	}

	obra := models.ObraModel{
		Nombre:              strings.TrimSpace(req.Nombre),
		Direccion:           strings.TrimSpace(req.Direccion),
		Estado:              models.ObraActiva,
		ArquitectoId:        actor.Id,
		ClienteId:           req.ClienteId,
		FechaInicioEstimada: inicio,
		FechaFinEstimada:    fin,
	}
	if err := s.db.Create(&obra).Error; err != nil {
		return nil, apperrors.Storage("no se pudo crear la obra", err)
	}
	return &obra, nil
}

// GetVisibleObras lista las obras visibles para el actor: los clientes ven
// solo las suyas, el resto ve todas.
func (s *ObraService) GetVisibleObras(actor models.Actor) ([]models.ObraModel, error) {
	var obras []models.ObraModel
	query := s.db.Preload("Arquitecto").Preload("Cliente").Order("id")
	if actor.Rol == models.RolCliente {
		query = query.Where("cliente_id = ?", actor.Id)
	}
	if err := query.Find(&obras).Error; err != nil {
		return nil, apperrors.Storage("no se pudieron listar las obras", err)
	}
	return obras, nil
}

// GetObraByID devuelve la obra si el actor tiene visibilidad sobre ella.
// Un cliente ajeno recibe Forbidden, nunca los datos.
func (s *ObraService) GetObraByID(id int, actor models.Actor) (*models.ObraModel, error) {
	var obra models.ObraModel
	if err := s.db.Preload("Arquitecto").Preload("Cliente").First(&obra, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no existe la obra %d", id)
		}
		return nil, apperrors.Storage("no se pudo buscar la obra", err)
	}

	if !policy.CanViewObra(actor, &obra) {
		return nil, apperrors.Forbidden("la obra %d no pertenece al cliente", id)
	}
	return &obra, nil
}

// FinalizeObra marca la obra como Finalizada. Es un camino de ida: no existe
// operación para volverla a Activa.
func (s *ObraService) FinalizeObra(id int, actor models.Actor) (*models.ObraModel, error) {
	if actor.Rol != models.RolArquitecto {
		return nil, apperrors.Forbidden("finalizar una obra requiere rol Arquitecto")
	}

	obra, err := s.GetObraByID(id, actor)
	if err != nil {
		return nil, err
	}
	if obra.Estado == models.ObraFinalizada {
		return nil, apperrors.InvalidState("la obra ya está en estado %s", obra.Estado)
	}

	if err := s.db.Model(obra).Update("estado", models.ObraFinalizada).Error; err != nil {
		return nil, apperrors.Storage("no se pudo finalizar la obra", err)
	}
	obra.Estado = models.ObraFinalizada
	return obra, nil
}

// GetObraResumen arma el resumen financiero: total del último presupuesto
// aprobado, total pagado y saldo. El saldo no se persiste nunca.
func (s *ObraService) GetObraResumen(id int, actor models.Actor, pagoService *PagoService, presupuestoService *PresupuestoService) (*dtos.ObraResumen, error) {
	if _, err := s.GetObraByID(id, actor); err != nil {
		return nil, err
	}

	totalPagado, err := pagoService.TotalPagado(id)
	if err != nil {
		return nil, err
	}

	resumen := dtos.ObraResumen{TotalPagado: totalPagado}

	aprobado, err := presupuestoService.findLatestByEstado(id, models.PresupuestoAprobado)
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindNotFound {
			return &resumen, nil
		}
		return nil, err
	}

	total := aprobado.Total()
	saldo := total - totalPagado
	resumen.TotalAprobado = &total
	resumen.Saldo = &saldo
	return &resumen, nil
}
