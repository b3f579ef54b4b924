package dtos

type CreatePagoRequest struct {
	Monto       float64 `json:"monto"`
	FechaPago   string  `json:"fechaPago"` // YYYY-MM-DD
	Descripcion string  `json:"descripcion"`
}
