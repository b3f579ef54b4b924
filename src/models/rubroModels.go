package models

import "time"

// Estados de avance de un rubro.
const (
	AvanceNoIniciado = "No Iniciado"
	AvanceEnProceso  = "En Proceso"
	AvanceTerminado  = "Terminado"
	AvanceBloqueado  = "Bloqueado"
)

type RubroModel struct {
	Id              int                  `json:"id" gorm:"primaryKey;autoIncrement"`
	PresupuestoId   int                  `json:"presupuestoId" gorm:"column:presupuesto_id;not null;index"`
	Descripcion     string               `json:"descripcion" gorm:"type:varchar(255);not null"`
	Unidad          string               `json:"unidad" gorm:"type:varchar(50)"`
	Cantidad        float64              `json:"cantidad" gorm:"not null"`
	CostoUnitario   float64              `json:"costoUnitario" gorm:"column:costo_unitario;not null"`
	FechaInicioPlan *time.Time           `json:"fechaInicioPlan" gorm:"type:date"`
	FechaFinPlan    *time.Time           `json:"fechaFinPlan" gorm:"type:date"`
	Observaciones   string               `json:"observaciones" gorm:"type:text"`
	Tracking        *TrackingAvanceModel `json:"tracking,omitempty" gorm:"foreignKey:RubroId;references:Id"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// Total es cantidad × costo unitario. Se calcula, nunca se persiste.
func (r *RubroModel) Total() float64 {
	return r.Cantidad * r.CostoUnitario
}

// TrackingAvanceModel registra el avance de un rubro. Exactamente una fila por
// rubro: el índice único sobre rubro_id respalda el upsert del service.
type TrackingAvanceModel struct {
	Id               int       `json:"id" gorm:"primaryKey;autoIncrement"`
	RubroId          int       `json:"rubroId" gorm:"column:rubro_id;not null;uniqueIndex"`
	AvanceEstado     string    `json:"avanceEstado" gorm:"column:avance_estado;type:varchar(30);not null;default:'No Iniciado'"`
	PorcentajeAvance float64   `json:"porcentajeAvance" gorm:"column:porcentaje_avance;not null;default:0"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
