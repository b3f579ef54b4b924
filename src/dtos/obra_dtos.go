package dtos

type CreateObraRequest struct {
	Nombre              string  `json:"nombre"`
	Direccion           string  `json:"direccion"`
	ClienteId           int     `json:"clienteId"`
	FechaInicioEstimada *string `json:"fechaInicioEstimada,omitempty"` // YYYY-MM-DD
	FechaFinEstimada    *string `json:"fechaFinEstimada,omitempty"`
}

// ObraResumen agrega el total pagado y el saldo contra el último presupuesto
// aprobado. El saldo es un cálculo de presentación, no se almacena.
type ObraResumen struct {
	TotalAprobado *float64 `json:"totalAprobado,omitempty"`
	TotalPagado   float64  `json:"totalPagado"`
	Saldo         *float64 `json:"saldo,omitempty"`
}
