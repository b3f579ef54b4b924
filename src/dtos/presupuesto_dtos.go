package dtos

// RubroFeedback lleva la devolución del cliente sobre un rubro puntual.
type RubroFeedback struct {
	RubroId     int    `json:"rubroId"`
	Observacion string `json:"observacion"`
}

type UpdateEstadoRequest struct {
	Estado         string          `json:"estado"`
	NotasGenerales *string         `json:"notasGenerales,omitempty"`
	RubroFeedback  []RubroFeedback `json:"rubroFeedback,omitempty"`
}

type CreateRubroRequest struct {
	Descripcion     string  `json:"descripcion"`
	Unidad          string  `json:"unidad"`
	Cantidad        float64 `json:"cantidad"`
	CostoUnitario   float64 `json:"costoUnitario"`
	FechaInicioPlan *string `json:"fechaInicioPlan,omitempty"` // YYYY-MM-DD
	FechaFinPlan    *string `json:"fechaFinPlan,omitempty"`
}

type UpdateRubroRequest struct {
	Descripcion     *string  `json:"descripcion,omitempty"`
	Unidad          *string  `json:"unidad,omitempty"`
	Cantidad        *float64 `json:"cantidad,omitempty"`
	CostoUnitario   *float64 `json:"costoUnitario,omitempty"`
	FechaInicioPlan *string  `json:"fechaInicioPlan,omitempty"`
	FechaFinPlan    *string  `json:"fechaFinPlan,omitempty"`
}

type UpdateAvanceRequest struct {
	AvanceEstado     string  `json:"avanceEstado"`
	PorcentajeAvance float64 `json:"porcentajeAvance"`
}
