package services

import (
	"fmt"
	"testing"

	"github.com/ObraLink/ObraLink-Backend/src/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB arma una base SQLite en memoria con el mismo esquema que
// producción, índices únicos incluidos, así los tests ejercitan de verdad el
// upsert de tracking y la unicidad de (obra_id, version_numero).
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("no se pudo abrir la base de test: %v", err)
	}

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.ArquitectoModel{},
		&models.ClienteModel{},
		&models.ObraModel{},
		&models.PresupuestoModel{},
		&models.RubroModel{},
		&models.TrackingAvanceModel{},
		&models.PagoModel{},
		&models.ArchivoModel{},
		&models.AvanceModel{},
	)
	if err != nil {
		t.Fatalf("no se pudo migrar el esquema de test: %v", err)
	}
	return db
}

func crearUsuario(t *testing.T, db *gorm.DB, email, rol string) models.UserModel {
	t.Helper()
	user := models.UserModel{
		Email:    email,
		Password: "hash-irrelevante",
		Nombre:   email,
		Rol:      rol,
		Activo:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("no se pudo crear el usuario %s: %v", email, err)
	}
	return user
}

func crearObra(t *testing.T, db *gorm.DB, arquitectoId, clienteId int) models.ObraModel {
	t.Helper()
	obra := models.ObraModel{
		Nombre:       "Casa Mitre",
		Direccion:    "Mitre 1234",
		Estado:       models.ObraActiva,
		ArquitectoId: arquitectoId,
		ClienteId:    clienteId,
	}
	if err := db.Create(&obra).Error; err != nil {
		t.Fatalf("no se pudo crear la obra: %v", err)
	}
	return obra
}

// setEstado mueve un presupuesto a un estado arbitrario por debajo del
// service, para armar escenarios.
func setEstado(t *testing.T, db *gorm.DB, presupuestoId int, estado string) {
	t.Helper()
	if err := db.Model(&models.PresupuestoModel{}).Where("id = ?", presupuestoId).
		Update("estado", estado).Error; err != nil {
		t.Fatalf("no se pudo forzar el estado %s: %v", estado, err)
	}
}

func actorDe(u models.UserModel) models.Actor {
	return models.Actor{Id: u.Id, Rol: u.Rol}
}
