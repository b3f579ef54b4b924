package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ObraLink/ObraLink-Backend/src/apperrors"
	"github.com/ObraLink/ObraLink-Backend/src/dtos"
	"github.com/ObraLink/ObraLink-Backend/src/models"
)

func escribirArchivoDePrueba(t *testing.T, nombre string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), nombre)
	if err := os.WriteFile(path, []byte("contenido"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSaveArchivo(t *testing.T) {
	db := setupTestDB(t)
	obraService := NewObraService(db)
	service := NewArchivoService(db, obraService)

	arquitecto := crearUsuario(t, db, "arq@test", models.RolArquitecto)
	cliente := crearUsuario(t, db, "cli@test", models.RolCliente)
	obra := crearObra(t, db, arquitecto.Id, cliente.Id)

	t.Run("tipo inválido borra el binario huérfano", func(t *testing.T) {
		path := escribirArchivoDePrueba(t, "plano.pdf")
		err := service.SaveArchivo(&models.ArchivoModel{
			ObraId: obra.Id, Tipo: "Contrato", Filename: "plano.pdf",
			FilePath: path, UsuarioId: arquitecto.Id,
		})
		wantKind(t, err, apperrors.KindValidation)
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("el binario huérfano debería haberse borrado")
		}
	})

	t.Run("alta correcta", func(t *testing.T) {
		path := escribirArchivoDePrueba(t, "plano.pdf")
		archivo := &models.ArchivoModel{
			ObraId: obra.Id, Tipo: models.ArchivoPlano, Filename: "plano.pdf",
			OriginalName: "Plano Planta Baja.pdf", FilePath: path,
			ContentType: "application/pdf", Size: 9, UsuarioId: arquitecto.Id,
		}
		if err := service.SaveArchivo(archivo); err != nil {
			t.Fatal(err)
		}
		if archivo.Id == 0 {
			t.Fatal("la metadata debería tener id asignado")
		}
		if _, err := os.Stat(path); err != nil {
			t.Error("el binario debería seguir en disco")
		}
	})
}

func TestDeleteArchivo(t *testing.T) {
	db := setupTestDB(t)
	obraService := NewObraService(db)
	service := NewArchivoService(db, obraService)

	arquitecto := crearUsuario(t, db, "arq@test", models.RolArquitecto)
	cliente := crearUsuario(t, db, "cli@test", models.RolCliente)
	obra := crearObra(t, db, arquitecto.Id, cliente.Id)

	path := escribirArchivoDePrueba(t, "foto.jpg")
	archivo := &models.ArchivoModel{
		ObraId: obra.Id, Tipo: models.ArchivoFotoAvance, Filename: "foto.jpg",
		FilePath: path, UsuarioId: arquitecto.Id,
	}
	if err := service.SaveArchivo(archivo); err != nil {
		t.Fatal(err)
	}

	t.Run("el cliente no borra archivos", func(t *testing.T) {
		_, err := service.DeleteArchivo(archivo.Id, actorDe(cliente))
		wantKind(t, err, apperrors.KindForbidden)
	})

	t.Run("borra metadata y binario", func(t *testing.T) {
		warning, err := service.DeleteArchivo(archivo.Id, actorDe(arquitecto))
		if err != nil {
			t.Fatal(err)
		}
		if warning != "" {
			t.Errorf("no esperaba advertencia: %q", warning)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("el binario debería haberse borrado")
		}
		_, err = service.GetArchivoByID(archivo.Id, actorDe(arquitecto))
		wantKind(t, err, apperrors.KindNotFound)
	})
}

func TestSaveAvance(t *testing.T) {
	db := setupTestDB(t)
	obraService := NewObraService(db)
	presupuestoService := NewPresupuestoService(db, obraService)
	rubroService := NewRubroService(db, presupuestoService)
	service := NewAvanceService(db, obraService)

	arquitecto := crearUsuario(t, db, "arq@test", models.RolArquitecto)
	cliente := crearUsuario(t, db, "cli@test", models.RolCliente)
	obraA := crearObra(t, db, arquitecto.Id, cliente.Id)
	obraB := crearObra(t, db, arquitecto.Id, cliente.Id)

	p, err := presupuestoService.CreatePresupuesto(obraA.Id, actorDe(arquitecto))
	if err != nil {
		t.Fatal(err)
	}
	rubro, err := rubroService.CreateRubro(p.Id, &dtos.CreateRubroRequest{
		Descripcion: "Cimientos", Cantidad: 10, CostoUnitario: 100000,
	}, actorDe(arquitecto))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("rubro de otra obra se rechaza y limpia", func(t *testing.T) {
		path := escribirArchivoDePrueba(t, "avance.jpg")
		err := service.SaveAvance(&models.AvanceModel{
			ObraId: obraB.Id, RubroId: rubro.Id, Filename: "avance.jpg",
			FilePath: path, UsuarioId: arquitecto.Id,
		})
		wantKind(t, err, apperrors.KindValidation)
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("el binario huérfano debería haberse borrado")
		}
	})

	t.Run("rubro inexistente", func(t *testing.T) {
		path := escribirArchivoDePrueba(t, "avance.jpg")
		err := service.SaveAvance(&models.AvanceModel{
			ObraId: obraA.Id, RubroId: 9999, Filename: "avance.jpg",
			FilePath: path, UsuarioId: arquitecto.Id,
		})
		wantKind(t, err, apperrors.KindNotFound)
	})

	t.Run("alta correcta aparece en el listado con su rubro", func(t *testing.T) {
		path := escribirArchivoDePrueba(t, "avance.jpg")
		err := service.SaveAvance(&models.AvanceModel{
			ObraId: obraA.Id, RubroId: rubro.Id, Descripcion: "Encofrado listo",
			Filename: "avance.jpg", FilePath: path, ContentType: "image/jpeg",
			UsuarioId: arquitecto.Id,
		})
		if err != nil {
			t.Fatal(err)
		}

		avances, err := service.ListAvances(obraA.Id, actorDe(cliente))
		if err != nil {
			t.Fatal(err)
		}
		if len(avances) != 1 {
			t.Fatalf("esperaba 1 avance, vinieron %d", len(avances))
		}
		if avances[0].Rubro == nil || avances[0].Rubro.Id != rubro.Id {
			t.Error("el listado debería traer el rubro precargado")
		}
	})
}
