package services

import (
	"testing"
	"time"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/middleware"
	"github.com/ObraLink/ObraLink-Backend/src/models"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	t.Run("arquitecto queda con su fila satélite", func(t *testing.T) {
		user, err := service.Register(&dtos.RegisterRequest{
			Email: "arq@test", Password: "secreto123", Nombre: "Ana",
			Rol: models.RolArquitecto, Matricula: "MAT-001",
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secreto123")); err != nil {
			t.Error("la contraseña debería guardarse hasheada con bcrypt")
		}

		var arq models.ArquitectoModel
		if err := db.Where("user_id = ?", user.Id).First(&arq).Error; err != nil {
			t.Fatalf("debería existir la fila de arquitecto: %v", err)
		}
		if arq.Matricula != "MAT-001" {
			t.Errorf("matricula = %q", arq.Matricula)
		}
	})

	t.Run("cliente queda con su fila satélite", func(t *testing.T) {
		user, err := service.Register(&dtos.RegisterRequest{
			Email: "cli@test", Password: "secreto123", Nombre: "Beto",
			Rol: models.RolCliente, RazonSocial: "Beto SRL", Cuit: "20-12345678-9",
		})
		if err != nil {
			t.Fatal(err)
		}
		var cli models.ClienteModel
		if err := db.Where("user_id = ?", user.Id).First(&cli).Error; err != nil {
			t.Fatalf("debería existir la fila de cliente: %v", err)
		}
	})

	t.Run("email duplicado da Conflict", func(t *testing.T) {
		_, err := service.Register(&dtos.RegisterRequest{
			Email: "arq@test", Password: "otra", Nombre: "Otra Ana", Rol: models.RolArquitecto,
		})
		wantKind(t, err, apperrors.KindConflict)
	})

	t.Run("rol inválido", func(t *testing.T) {
		_, err := service.Register(&dtos.RegisterRequest{
			Email: "x@test", Password: "secreto", Nombre: "X", Rol: "Gerente",
		})
		wantKind(t, err, apperrors.KindValidation)
	})

	t.Run("campos faltantes", func(t *testing.T) {
		_, err := service.Register(&dtos.RegisterRequest{Rol: models.RolCliente})
		wantKind(t, err, apperrors.KindValidation)
	})
}

func TestAuthenticateUser(t *testing.T) {
	middleware.SetSecretKey("clave-de-test")
	db := setupTestDB(t)
	service := NewUserService(db)

	if _, err := service.Register(&dtos.RegisterRequest{
		Email: "arq@test", Password: "secreto123", Nombre: "Ana", Rol: models.RolArquitecto,
	}); err != nil {
		t.Fatal(err)
	}

	t.Run("credenciales correctas", func(t *testing.T) {
		resp, err := service.AuthenticateUser("arq@test", "secreto123")
		if err != nil {
			t.Fatal(err)
		}
		if resp.Token == "" {
			t.Error("esperaba un token firmado")
		}
		if resp.Rol != models.RolArquitecto {
			t.Errorf("rol = %s", resp.Rol)
		}
	})

	t.Run("contraseña incorrecta", func(t *testing.T) {
		_, err := service.AuthenticateUser("arq@test", "incorrecta")
		wantKind(t, err, apperrors.KindForbidden)
	})

	t.Run("email inexistente da el mismo error", func(t *testing.T) {
		_, err := service.AuthenticateUser("nadie@test", "secreto123")
		wantKind(t, err, apperrors.KindForbidden)
	})

	t.Run("usuario inactivo no entra", func(t *testing.T) {
		db.Model(&models.UserModel{}).Where("email = ?", "arq@test").Update("activo", false)
		_, err := service.AuthenticateUser("arq@test", "secreto123")
		wantKind(t, err, apperrors.KindForbidden)
	})
}

func TestResetPasswordFlow(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	if _, err := service.Register(&dtos.RegisterRequest{
		Email: "cli@test", Password: "vieja123", Nombre: "Beto", Rol: models.RolCliente,
	}); err != nil {
		t.Fatal(err)
	}

	token, err := service.ForgotPassword("cli@test")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("esperaba un token de reseteo")
	}

	t.Run("token válido cambia la contraseña y se consume", func(t *testing.T) {
		if err := service.ResetPassword(token, "nueva456"); err != nil {
			t.Fatal(err)
		}
		var user models.UserModel
		db.Where("email = ?", "cli@test").First(&user)
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("nueva456")); err != nil {
			t.Error("la contraseña nueva debería estar vigente")
		}
		if user.ResetToken != nil {
			t.Error("el token debería limpiarse al usarse")
		}

		err := service.ResetPassword(token, "otra789")
		wantKind(t, err, apperrors.KindNotFound)
	})

	t.Run("token vencido", func(t *testing.T) {
		token, err := service.ForgotPassword("cli@test")
		if err != nil {
			t.Fatal(err)
		}
		vencido := time.Now().Add(-time.Minute)
		db.Model(&models.UserModel{}).Where("email = ?", "cli@test").
			Update("reset_token_expiry", vencido)

		err = service.ResetPassword(token, "nueva456")
		wantKind(t, err, apperrors.KindInvalidState)
	})

	t.Run("email inexistente", func(t *testing.T) {
		_, err := service.ForgotPassword("nadie@test")
		wantKind(t, err, apperrors.KindNotFound)
	})
}
