package models

import "time"

// PagoModel es una entrada del libro de pagos de una obra. Solo se agrega,
// nunca se edita ni se borra.
type PagoModel struct {
	Id          int        `json:"id" gorm:"primaryKey;autoIncrement"`
	ObraId      int        `json:"obraId" gorm:"column:obra_id;not null;index"`
	Monto       float64    `json:"monto" gorm:"not null"`
	FechaPago   time.Time  `json:"fechaPago" gorm:"column:fecha_pago;type:date;not null"`
	Descripcion string     `json:"descripcion" gorm:"type:varchar(255)"`
	UsuarioId   int        `json:"usuarioId" gorm:"column:usuario_id;not null"`
	Usuario     *UserModel `json:"usuario,omitempty" gorm:"foreignKey:UsuarioId;references:Id"`
	CreatedAt   time.Time  `json:"createdAt"`
}
