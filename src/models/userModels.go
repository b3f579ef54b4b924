package models

import "time"

// Roles del sistema. Enumeración cerrada: cualquier otro valor es inválido.
const (
	RolAdmin      = "Admin"
	RolArquitecto = "Arquitecto"
	RolCliente    = "Cliente"
	RolEncargado  = "Encargado"
)

type UserModel struct {
	Id               int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Email            string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password         string     `json:"-" gorm:"type:varchar(100);not null"`
	Nombre           string     `json:"nombre" gorm:"type:varchar(255);not null"`
	Rol              string     `json:"rol" gorm:"type:varchar(30);not null"`
	Activo           bool       `json:"activo" gorm:"default:true"`
	ResetToken       *string    `json:"-" gorm:"type:varchar(64);index"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ArquitectoModel guarda los datos profesionales del arquitecto, 1:1 con el usuario.
type ArquitectoModel struct {
	UserId    int    `json:"userId" gorm:"primaryKey"`
	Matricula string `json:"matricula" gorm:"type:varchar(50)"`
}

// ClienteModel guarda los datos fiscales del cliente, 1:1 con el usuario.
type ClienteModel struct {
	UserId      int    `json:"userId" gorm:"primaryKey"`
	RazonSocial string `json:"razonSocial" gorm:"type:varchar(255)"`
	Cuit        string `json:"cuit" gorm:"type:varchar(20)"`
}

// Actor es el principal autenticado que el middleware deja en el contexto.
type Actor struct {
	Id  int
	Rol string
}
