package policy

import "github.com/ObraLink/ObraLink-Backend/src/models"

// Predicados de acceso puros: sin base de datos, sin efectos. Los services
// deciden qué error devolver cuando un predicado da false.

// CanManageObra indica si el rol puede crear obras, presupuestos y rubros.
func CanManageObra(rol string) bool {
	return rol == models.RolArquitecto || rol == models.RolEncargado
}

// CanViewObra indica si el usuario puede ver la obra. Los clientes solo ven
// obras donde figuran como cliente; el resto de los roles ve todo.
func CanViewObra(actor models.Actor, obra *models.ObraModel) bool {
	if actor.Rol != models.RolCliente {
		return true
	}
	return actor.Id == obra.ClienteId
}

// CanActOnBudgetAsClient indica si un cliente puede pedir el estado dado
// sobre un presupuesto: solo aprobar o rechazar.
func CanActOnBudgetAsClient(rol, estadoPedido string) bool {
	if rol != models.RolCliente {
		return false
	}
	return estadoPedido == models.PresupuestoAprobado || estadoPedido == models.PresupuestoRechazado
}

// CanEditLineItems indica si el rol puede editar o borrar rubros con el
// presupuesto en el estado dado. En Negociación se pueden AGREGAR rubros pero
// no editar ni borrar los existentes; esa ventana la controla el service de
// rubros, no este predicado.
func CanEditLineItems(rol, estadoPresupuesto string) bool {
	if rol == models.RolCliente {
		return false
	}
	return estadoPresupuesto == models.PresupuestoBorrador || estadoPresupuesto == models.PresupuestoRechazado
}
