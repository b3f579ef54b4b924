package models

import "time"

// Estados de una obra. Finalizada es terminal: no hay vuelta atrás.
const (
	ObraActiva     = "Activa"
	ObraFinalizada = "Finalizada"
)

type ObraModel struct {
	Id                  int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Nombre              string     `json:"nombre" gorm:"type:varchar(255);not null"`
	Direccion           string     `json:"direccion" gorm:"type:varchar(255)"`
	Estado              string     `json:"estado" gorm:"type:varchar(30);not null;default:'Activa'"`
	ArquitectoId        int        `json:"arquitectoId" gorm:"column:arquitecto_id;not null;index"`
	Arquitecto          *UserModel `json:"arquitecto,omitempty" gorm:"foreignKey:ArquitectoId;references:Id"`
	ClienteId           int        `json:"clienteId" gorm:"column:cliente_id;not null;index"`
	Cliente             *UserModel `json:"cliente,omitempty" gorm:"foreignKey:ClienteId;references:Id"`
	FechaInicioEstimada *time.Time `json:"fechaInicioEstimada" gorm:"type:date"`
	FechaFinEstimada    *time.Time `json:"fechaFinEstimada" gorm:"type:date"`
	CreatedAt           time.Time  `json:"createdAt"`
}
