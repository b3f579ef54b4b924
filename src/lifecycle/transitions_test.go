package lifecycle

import (
	"errors"
	"strings"
	"testing"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/models"
)

func kindDe(t *testing.T, err error) apperrors.Kind {
	t.Helper()
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("esperaba un *apperrors.Error, vino %T: %v", err, err)
	}
	return appErr.Kind
}

func TestCheckTransicionesPermitidas(t *testing.T) {
	cases := []struct {
		desde, hasta, rol string
	}{
		{models.PresupuestoBorrador, models.PresupuestoNegociacion, models.RolArquitecto},
		{models.PresupuestoBorrador, models.PresupuestoPendiente, models.RolEncargado},
		{models.PresupuestoNegociacion, models.PresupuestoPendiente, models.RolArquitecto},
		{models.PresupuestoPendiente, models.PresupuestoNegociacion, models.RolEncargado},
		{models.PresupuestoNegociacion, models.PresupuestoAprobado, models.RolCliente},
		{models.PresupuestoNegociacion, models.PresupuestoRechazado, models.RolCliente},
		{models.PresupuestoPendiente, models.PresupuestoAprobado, models.RolCliente},
		{models.PresupuestoPendiente, models.PresupuestoRechazado, models.RolCliente},
		{models.PresupuestoRechazado, models.PresupuestoCancelado, models.RolArquitecto},
	}
	for _, tc := range cases {
		if err := Check(tc.desde, tc.hasta, tc.rol); err != nil {
			t.Errorf("%s → %s con rol %s debería permitirse, vino %v", tc.desde, tc.hasta, tc.rol, err)
		}
	}
}

func TestCheckEstadosAbsorbentes(t *testing.T) {
	// Aprobado y Cancelado no tienen salidas para ningún rol
	for _, desde := range []string{models.PresupuestoAprobado, models.PresupuestoCancelado} {
		for _, hasta := range []string{models.PresupuestoBorrador, models.PresupuestoNegociacion,
			models.PresupuestoPendiente, models.PresupuestoRechazado, models.PresupuestoCancelado} {
			err := Check(desde, hasta, models.RolAdmin)
			if err == nil {
				t.Fatalf("%s → %s no debería permitirse", desde, hasta)
			}
			if kindDe(t, err) != apperrors.KindInvalidState {
				t.Errorf("%s → %s debería ser InvalidState", desde, hasta)
			}
		}
	}
}

func TestCheckTransicionInexistente(t *testing.T) {
	err := Check(models.PresupuestoBorrador, models.PresupuestoAprobado, models.RolCliente)
	if err == nil || kindDe(t, err) != apperrors.KindInvalidState {
		t.Errorf("Borrador → Aprobado directo debería ser InvalidState, vino %v", err)
	}

	// El mensaje tiene que nombrar el estado actual
	if !strings.Contains(err.Error(), models.PresupuestoBorrador) {
		t.Errorf("el mensaje debería nombrar el estado actual: %q", err.Error())
	}
}

func TestCheckRolNoHabilitado(t *testing.T) {
	// La transición existe pero el rol no puede aplicarla
	cases := []struct {
		desde, hasta, rol string
	}{
		{models.PresupuestoPendiente, models.PresupuestoAprobado, models.RolArquitecto},
		{models.PresupuestoPendiente, models.PresupuestoRechazado, models.RolEncargado},
		{models.PresupuestoBorrador, models.PresupuestoPendiente, models.RolCliente},
		{models.PresupuestoRechazado, models.PresupuestoCancelado, models.RolCliente},
	}
	for _, tc := range cases {
		err := Check(tc.desde, tc.hasta, tc.rol)
		if err == nil || kindDe(t, err) != apperrors.KindForbidden {
			t.Errorf("%s → %s con rol %s debería ser Forbidden, vino %v", tc.desde, tc.hasta, tc.rol, err)
		}
	}
}

func TestEstadoValido(t *testing.T) {
	for _, estado := range []string{models.PresupuestoBorrador, models.PresupuestoNegociacion,
		models.PresupuestoPendiente, models.PresupuestoAprobado, models.PresupuestoRechazado,
		models.PresupuestoCancelado} {
		if !EstadoValido(estado) {
			t.Errorf("%s debería ser válido", estado)
		}
	}
	if EstadoValido("Inventado") {
		t.Error("un estado fuera de la enumeración no debería ser válido")
	}
}

func TestVentanasDeRubros(t *testing.T) {
	if !PermiteCrearRubros(models.PresupuestoBorrador) || !PermiteCrearRubros(models.PresupuestoNegociacion) {
		t.Error("alta de rubros debería permitirse en Borrador y Negociación")
	}
	if PermiteCrearRubros(models.PresupuestoAprobado) || PermiteCrearRubros(models.PresupuestoPendiente) {
		t.Error("alta de rubros fuera de ventana")
	}
	if !PermiteEditarRubros(models.PresupuestoBorrador) || !PermiteEditarRubros(models.PresupuestoRechazado) {
		t.Error("edición de rubros debería permitirse en Borrador y Rechazado")
	}
	if PermiteEditarRubros(models.PresupuestoNegociacion) {
		t.Error("en Negociación no se editan rubros existentes")
	}
}
