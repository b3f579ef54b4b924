package policy

import (
	"testing"

	"github.com/ObraLink/ObraLink-Backend/src/models"
)

func TestCanManageObra(t *testing.T) {
	cases := []struct {
		rol  string
		want bool
	}{
		{models.RolArquitecto, true},
		{models.RolEncargado, true},
		{models.RolCliente, false},
		{models.RolAdmin, false},
		{"otro", false},
	}
	for _, tc := range cases {
		if got := CanManageObra(tc.rol); got != tc.want {
			t.Errorf("CanManageObra(%s) = %v, esperaba %v", tc.rol, got, tc.want)
		}
	}
}

func TestCanViewObra(t *testing.T) {
	obra := models.ObraModel{Id: 1, ClienteId: 10}

	t.Run("no clientes ven todo", func(t *testing.T) {
		for _, rol := range []string{models.RolAdmin, models.RolArquitecto, models.RolEncargado} {
			if !CanViewObra(models.Actor{Id: 99, Rol: rol}, &obra) {
				t.Errorf("rol %s debería ver la obra", rol)
			}
		}
	})

	t.Run("cliente propio", func(t *testing.T) {
		if !CanViewObra(models.Actor{Id: 10, Rol: models.RolCliente}, &obra) {
			t.Error("el cliente de la obra debería verla")
		}
	})

	t.Run("cliente ajeno", func(t *testing.T) {
		if CanViewObra(models.Actor{Id: 11, Rol: models.RolCliente}, &obra) {
			t.Error("un cliente ajeno no debería ver la obra")
		}
	})
}

func TestCanActOnBudgetAsClient(t *testing.T) {
	// Un cliente solo aprueba o rechaza
	if !CanActOnBudgetAsClient(models.RolCliente, models.PresupuestoAprobado) {
		t.Error("el cliente debería poder aprobar")
	}
	if !CanActOnBudgetAsClient(models.RolCliente, models.PresupuestoRechazado) {
		t.Error("el cliente debería poder rechazar")
	}
	for _, estado := range []string{models.PresupuestoBorrador, models.PresupuestoNegociacion,
		models.PresupuestoPendiente, models.PresupuestoCancelado} {
		if CanActOnBudgetAsClient(models.RolCliente, estado) {
			t.Errorf("el cliente no debería poder pedir %s", estado)
		}
	}
	if CanActOnBudgetAsClient(models.RolArquitecto, models.PresupuestoAprobado) {
		t.Error("el predicado es solo para clientes")
	}
}

func TestCanEditLineItems(t *testing.T) {
	editables := map[string]bool{
		models.PresupuestoBorrador:    true,
		models.PresupuestoRechazado:   true,
		models.PresupuestoNegociacion: false, // en Negociación solo se agregan rubros
		models.PresupuestoPendiente:   false,
		models.PresupuestoAprobado:    false,
		models.PresupuestoCancelado:   false,
	}
	for estado, want := range editables {
		if got := CanEditLineItems(models.RolArquitecto, estado); got != want {
			t.Errorf("CanEditLineItems(Arquitecto, %s) = %v, esperaba %v", estado, got, want)
		}
		if CanEditLineItems(models.RolCliente, estado) {
			t.Errorf("un cliente nunca edita rubros (estado %s)", estado)
		}
	}
}
