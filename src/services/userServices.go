package services

import (
	"errors"
	"strings"
	"time"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/middleware"
	"github.com/ObraLink/ObraLink-Backend/src/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func rolValido(rol string) bool {
	switch rol {
	case models.RolAdmin, models.RolArquitecto, models.RolCliente, models.RolEncargado:
		return true
	}
	return false
}

// Register crea el usuario y su fila satélite según el rol, en una sola
// transacción: o quedan las dos filas o ninguna.
func (s *UserService) Register(req *dtos.RegisterRequest) (*models.UserModel, error) {
	var missing []string
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(req.Password) == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(req.Nombre) == "" {
		missing = append(missing, "nombre")
	}
	if len(missing) > 0 {
		return nil, apperrors.Validation("faltan campos obligatorios: %s", strings.Join(missing, ", "))
	}
	if !rolValido(req.Rol) {
		return nil, apperrors.Validation("rol inválido: %s", req.Rol)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Storage("no se pudo procesar la contraseña", err)
	}

	user := models.UserModel{
		Email:    strings.TrimSpace(req.Email),
		Password: string(hashedPassword),
		Nombre:   strings.TrimSpace(req.Nombre),
		Rol:      req.Rol,
		Activo:   true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch req.Rol {
		case models.RolArquitecto:
			arq := models.ArquitectoModel{UserId: user.Id, Matricula: req.Matricula}
			if err := tx.Create(&arq).Error; err != nil {
				return err
			}
		case models.RolCliente:
			cli := models.ClienteModel{UserId: user.Id, RazonSocial: req.RazonSocial, Cuit: req.Cuit}
			if err := tx.Create(&cli).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("ya existe un usuario con el email %s", req.Email)
		}
		return nil, apperrors.Storage("no se pudo registrar el usuario", err)
	}

	return &user, nil
}

// AuthenticateUser checks user credentials and returns a JWT token if valid
func (s *UserService) AuthenticateUser(email, password string) (*dtos.LoginResponse, error) {
	var user models.UserModel
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.Forbidden("email o contraseña inválidos")
		}
		return nil, apperrors.Storage("no se pudo buscar el usuario", result.Error)
	}

	if !user.Activo {
		return nil, apperrors.Forbidden("el usuario está inactivo")
	}

	// Compare the provided password with the hashed password in the database
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Forbidden("email o contraseña inválidos")
	}

	claims := jwt.MapClaims{
		"id":  user.Id,
		"rol": user.Rol,
		"exp": time.Now().Add(time.Hour * 12).Unix(), // Token expires in 12 hours
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(middleware.GetSecretKey()))
	if err != nil {
		return nil, apperrors.Storage("no se pudo firmar el token", err)
	}

	return &dtos.LoginResponse{
		Id:     user.Id,
		Email:  user.Email,
		Nombre: user.Nombre,
		Rol:    user.Rol,
		Token:  tokenString,
	}, nil
}

// ForgotPassword genera y guarda un token de reseteo con vencimiento a una
// hora. El envío del mail queda fuera del backend; por eso, exista o no el
// email, la respuesta del endpoint es la misma.
func (s *UserService) ForgotPassword(email string) (string, error) {
	var user models.UserModel
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound("no existe un usuario con el email %s", email)
		}
		return "", apperrors.Storage("no se pudo buscar el usuario", result.Error)
	}

	token := uuid.NewString()
	expiry := time.Now().Add(time.Hour)
	err := s.db.Model(&user).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error
	if err != nil {
		return "", apperrors.Storage("no se pudo guardar el token de reseteo", err)
	}

	return token, nil
}

// ResetPassword consume el token: valida vencimiento, setea la contraseña
// nueva y limpia el token para que no se pueda reusar.
func (s *UserService) ResetPassword(token, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperrors.Validation("faltan campos obligatorios: password")
	}

	var user models.UserModel
	result := s.db.Where("reset_token = ?", token).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("token de reseteo inválido")
		}
		return apperrors.Storage("no se pudo buscar el token", result.Error)
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return apperrors.InvalidState("el token de reseteo está vencido")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Storage("no se pudo procesar la contraseña", err)
	}

	err = s.db.Model(&user).Updates(map[string]interface{}{
		"password":           string(hashedPassword),
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error
	if err != nil {
		return apperrors.Storage("no se pudo actualizar la contraseña", err)
	}
	return nil
}

// GetUserByID retrieves a User record by its ID
func (s *UserService) GetUserByID(id int) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no existe el usuario %d", id)
		}
		return nil, apperrors.Storage("no se pudo buscar el usuario", err)
	}
	return &user, nil
}
