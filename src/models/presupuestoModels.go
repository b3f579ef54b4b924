package models

import "time"

// Estados del presupuesto. El flujo completo vive en el paquete lifecycle;
// acá solo se declaran los valores persistidos.
const (
	PresupuestoBorrador    = "Borrador"
	PresupuestoNegociacion = "Negociación"
	PresupuestoPendiente   = "Pendiente"
	PresupuestoAprobado    = "Aprobado"
	PresupuestoRechazado   = "Rechazado"
	PresupuestoCancelado   = "Cancelado"
)

// PresupuestoModel es una versión de presupuesto de una obra. La versión con
// version_numero máximo es "el" presupuesto vigente. Nunca se borra una fila:
// las versiones viejas quedan como historial.
type PresupuestoModel struct {
	Id             int          `json:"id" gorm:"primaryKey;autoIncrement"`
	ObraId         int          `json:"obraId" gorm:"column:obra_id;not null;uniqueIndex:idx_obra_version"`
	Obra           *ObraModel   `json:"obra,omitempty" gorm:"foreignKey:ObraId;references:Id"`
	VersionNumero  int          `json:"versionNumero" gorm:"column:version_numero;not null;uniqueIndex:idx_obra_version"`
	Estado         string       `json:"estado" gorm:"type:varchar(30);not null;default:'Borrador'"`
	NotasGenerales string       `json:"notasGenerales" gorm:"type:text"`
	Rubros         []RubroModel `json:"rubros,omitempty" gorm:"foreignKey:PresupuestoId;references:Id"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// Total suma cantidad × costo unitario de todos los rubros cargados.
// Requiere que Rubros venga precargado; no pega a la base.
func (p *PresupuestoModel) Total() float64 {
	var total float64
	for _, r := range p.Rubros {
		total += r.Total()
	}
	return total
}
