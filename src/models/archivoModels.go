package models

import "time"

// Tipos de documento admitidos para adjuntos de obra.
const (
	ArchivoFotoAvance     = "Foto Avance"
	ArchivoPlano          = "Plano"
	ArchivoDocumentoLegal = "Documento Legal"
)

// TipoArchivoValido valida contra la lista cerrada de tipos.
func TipoArchivoValido(tipo string) bool {
	switch tipo {
	case ArchivoFotoAvance, ArchivoPlano, ArchivoDocumentoLegal:
		return true
	}
	return false
}

// ArchivoModel es la metadata de un documento adjunto a una obra. El binario
// vive en disco (FilePath); borrar metadata y archivo es una sola operación
// lógica con limpieza compensatoria en el service.
type ArchivoModel struct {
	Id           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ObraId       int       `json:"obraId" gorm:"column:obra_id;not null;index"`
	Tipo         string    `json:"tipo" gorm:"type:varchar(50);not null"`
	Filename     string    `json:"filename" gorm:"type:varchar(255);not null"`
	OriginalName string    `json:"originalName" gorm:"column:original_name;type:varchar(255)"`
	FilePath     string    `json:"-" gorm:"column:file_path;type:varchar(500);not null"`
	ContentType  string    `json:"contentType" gorm:"column:content_type;type:varchar(100)"`
	Size         int64     `json:"size"`
	UsuarioId    int       `json:"usuarioId" gorm:"column:usuario_id;not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AvanceModel es una evidencia fotográfica de avance, atada a un rubro.
type AvanceModel struct {
	Id          int         `json:"id" gorm:"primaryKey;autoIncrement"`
	ObraId      int         `json:"obraId" gorm:"column:obra_id;not null;index"`
	RubroId     int         `json:"rubroId" gorm:"column:rubro_id;not null;index"`
	Rubro       *RubroModel `json:"rubro,omitempty" gorm:"foreignKey:RubroId;references:Id"`
	Descripcion string      `json:"descripcion" gorm:"type:varchar(255)"`
	Filename    string      `json:"filename" gorm:"type:varchar(255);not null"`
	FilePath    string      `json:"-" gorm:"column:file_path;type:varchar(500);not null"`
	ContentType string      `json:"contentType" gorm:"column:content_type;type:varchar(100)"`
	Size        int64       `json:"size"`
	UsuarioId   int         `json:"usuarioId" gorm:"column:usuario_id;not null"`
	CreatedAt   time.Time   `json:"createdAt"`
}
