package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var (
	driveService *drive.Service
	driveOnce    sync.Once
)

// DriveMirrorEnabled indica si hay credenciales configuradas. Sin credenciales
// el backend funciona igual, solo con almacenamiento local.
func DriveMirrorEnabled() bool {
	return os.Getenv("GOOGLE_DRIVE_CREDENTIALS_PATH") != "" || os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON") != ""
}

// InitGoogleDriveService inicializa el servicio de Google Drive usando Service Account
func InitGoogleDriveService() error {
	var initErr error
	driveOnce.Do(func() {
		ctx := context.Background()

		var credsBytes []byte
		if path := os.Getenv("GOOGLE_DRIVE_CREDENTIALS_PATH"); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				initErr = fmt.Errorf("error leyendo archivo de credenciales: %w", err)
				return
			}
			credsBytes = b
		} else if raw := os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"); raw != "" {
			credsBytes = []byte(raw)
		} else {
			initErr = fmt.Errorf("GOOGLE_DRIVE_CREDENTIALS_PATH o GOOGLE_DRIVE_CREDENTIALS_JSON debe estar configurado")
			return
		}

		creds, err := google.CredentialsFromJSON(ctx, credsBytes, drive.DriveFileScope)
		if err != nil {
			initErr = fmt.Errorf("error cargando credenciales: %w", err)
			return
		}

		driveService, err = drive.NewService(ctx, option.WithCredentials(creds))
		if err != nil {
			initErr = fmt.Errorf("error creando servicio de Google Drive: %w", err)
			return
		}

		log.Printf("[GOOGLE_DRIVE] Servicio inicializado correctamente")
	})
	return initErr
}

// GetGoogleDriveService retorna el servicio de Google Drive (inicializa si es necesario)
func GetGoogleDriveService() (*drive.Service, error) {
	if driveService == nil {
		if err := InitGoogleDriveService(); err != nil {
			return nil, err
		}
	}
	return driveService, nil
}

// MirrorFileToGoogleDrive sube una copia del archivo local a la carpeta de
// respaldo (GOOGLE_DRIVE_FOLDER_ID). Es un espejo best-effort: el que llama
// loguea el error y sigue, el upload local ya quedó confirmado.
func MirrorFileToGoogleDrive(localPath, name, mimeType string) error {
	service, err := GetGoogleDriveService()
	if err != nil {
		return fmt.Errorf("error obteniendo servicio de Google Drive: %w", err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("error abriendo archivo local: %w", err)
	}
	defer f.Close()

	meta := &drive.File{Name: name}
	if folderID := os.Getenv("GOOGLE_DRIVE_FOLDER_ID"); folderID != "" {
		meta.Parents = []string{folderID}
	}

	uploaded, err := service.Files.Create(meta).Media(f, googleapiContentType(mimeType)).Do()
	if err != nil {
		return fmt.Errorf("error subiendo archivo a Google Drive: %w", err)
	}

	log.Printf("[GOOGLE_DRIVE] Espejo creado: %s (id %s)", name, uploaded.Id)
	return nil
}

func googleapiContentType(mimeType string) googleapi.MediaOption {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return googleapi.ContentType(mimeType)
}
