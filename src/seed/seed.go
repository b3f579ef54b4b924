package seed

import (
	"log"

	"github.com/ObraLink/ObraLink-Backend/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB) {
	// Usuarios base para desarrollo: un admin, un arquitecto y un cliente
	seedUser(db, "admin@obralink.local", "admin", "Admin ObraLink", models.RolAdmin)
	arquitecto := seedUser(db, "arquitecto@obralink.local", "arquitecto", "Arquitecto Demo", models.RolArquitecto)
	cliente := seedUser(db, "cliente@obralink.local", "cliente", "Cliente Demo", models.RolCliente)

	if arquitecto != nil {
		var arq models.ArquitectoModel
		if err := db.Where("user_id = ?", arquitecto.Id).First(&arq).Error; err != nil {
			arq = models.ArquitectoModel{UserId: arquitecto.Id, Matricula: "MAT-0001"}
			if err := db.Create(&arq).Error; err != nil {
				log.Printf("Failed to create arquitecto row: %v\n", err)
			}
		}
	}

	if cliente != nil {
		var cli models.ClienteModel
		if err := db.Where("user_id = ?", cliente.Id).First(&cli).Error; err != nil {
			cli = models.ClienteModel{UserId: cliente.Id, RazonSocial: "Cliente Demo SA", Cuit: "30-00000000-0"}
			if err := db.Create(&cli).Error; err != nil {
				log.Printf("Failed to create cliente row: %v\n", err)
			}
		}
	}
}

func seedUser(db *gorm.DB, email, password, nombre, rol string) *models.UserModel {
	var user models.UserModel
	result := db.Where("email = ?", email).First(&user)
	if result.Error == nil {
		log.Printf("User %q already exists\n", email)
		return &user
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	newUser := models.UserModel{
		Email:    email,
		Password: string(hashedPassword),
		Nombre:   nombre,
		Rol:      rol,
		Activo:   true,
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create user %q: %v\n", email, err)
		return nil
	}
	log.Printf("User %q created\n", email)
	return &newUser
}
