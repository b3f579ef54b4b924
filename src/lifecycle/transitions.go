package lifecycle

import (
	"strings"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/models"
)

// Tabla explícita de transiciones del presupuesto: estado actual × estado
// pedido → roles habilitados. Todo lo que no figura acá es ilegal. Aprobado y
// Cancelado son absorbentes: no tienen salidas.
//
//	Borrador ─→ Negociación | Pendiente
//	Negociación ⇄ Pendiente
//	Negociación | Pendiente ─→ Aprobado | Rechazado   (solo el cliente decide)
//	Rechazado ─→ Cancelado                            (o se forkea una versión nueva)
var transitions = map[string]map[string][]string{
	models.PresupuestoBorrador: {
		models.PresupuestoNegociacion: {models.RolArquitecto, models.RolEncargado, models.RolAdmin},
		models.PresupuestoPendiente:   {models.RolArquitecto, models.RolEncargado, models.RolAdmin},
	},
	models.PresupuestoNegociacion: {
		models.PresupuestoPendiente: {models.RolArquitecto, models.RolEncargado, models.RolAdmin},
		models.PresupuestoAprobado:  {models.RolCliente, models.RolAdmin},
		models.PresupuestoRechazado: {models.RolCliente, models.RolAdmin},
	},
	models.PresupuestoPendiente: {
		models.PresupuestoNegociacion: {models.RolArquitecto, models.RolEncargado, models.RolAdmin},
		models.PresupuestoAprobado:    {models.RolCliente, models.RolAdmin},
		models.PresupuestoRechazado:   {models.RolCliente, models.RolAdmin},
	},
	models.PresupuestoRechazado: {
		models.PresupuestoCancelado: {models.RolArquitecto, models.RolEncargado, models.RolAdmin},
	},
}

// Check valida la transición pedida. Devuelve nil si el rol puede aplicarla,
// InvalidState si no existe una transición del estado actual al pedido, y
// Forbidden si la transición existe pero el rol no está habilitado.
func Check(estadoActual, estadoPedido, rol string) error {
	targets, ok := transitions[estadoActual]
	if !ok {
		return apperrors.InvalidState("el presupuesto está en estado %s y no admite cambios de estado", estadoActual)
	}

	roles, ok := targets[estadoPedido]
	if !ok {
		return apperrors.InvalidState("no se puede pasar de %s a %s", estadoActual, estadoPedido)
	}

	for _, r := range roles {
		if r == rol {
			return nil
		}
	}
	return apperrors.Forbidden("la transición %s → %s requiere rol %s", estadoActual, estadoPedido, strings.Join(roles, " o "))
}

// EstadoValido valida contra la enumeración cerrada de estados.
func EstadoValido(estado string) bool {
	switch estado {
	case models.PresupuestoBorrador, models.PresupuestoNegociacion, models.PresupuestoPendiente,
		models.PresupuestoAprobado, models.PresupuestoRechazado, models.PresupuestoCancelado:
		return true
	}
	return false
}

// PermiteCrearRubros: alta de rubros solo en Borrador o Negociación.
func PermiteCrearRubros(estado string) bool {
	return estado == models.PresupuestoBorrador || estado == models.PresupuestoNegociacion
}

// PermiteEditarRubros: edición y baja de rubros solo en Borrador o Rechazado.
// Negociación queda afuera a propósito: ahí solo se agregan rubros nuevos.
func PermiteEditarRubros(estado string) bool {
	return estado == models.PresupuestoBorrador || estado == models.PresupuestoRechazado
}
