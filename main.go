package main

import (
	"log"
	"os"

	"github.com/ObraLink/ObraLink-Backend/src/db"
	"github.com/ObraLink/ObraLink-Backend/src/middleware"
	"github.com/ObraLink/ObraLink-Backend/src/models"
	"github.com/ObraLink/ObraLink-Backend/src/routes"
	"github.com/ObraLink/ObraLink-Backend/src/seed"
	"github.com/ObraLink/ObraLink-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func main() {

	// Database connection
	db, err := db.Connect()
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.ArquitectoModel{},
		&models.ClienteModel{},
		&models.ObraModel{},
		&models.PresupuestoModel{},
		&models.RubroModel{},
		&models.TrackingAvanceModel{},
		&models.PagoModel{},
		&models.ArchivoModel{},
		&models.AvanceModel{},
	); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}

	// JWT secret setup
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT_SECRET_KEY must be set")
	}
	middleware.SetSecretKey(secret)

	// Dev seed
	seed.Seed(db)

	// Port and host setup
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = ":8080"
	}

	// Gin router setup
	router := gin.Default()
	router.Use(middleware.SetupCORS())

	// Services setup
	userService := services.NewUserService(db)
	obraService := services.NewObraService(db)
	presupuestoService := services.NewPresupuestoService(db, obraService)
	rubroService := services.NewRubroService(db, presupuestoService)
	pagoService := services.NewPagoService(db, obraService, presupuestoService)
	archivoService := services.NewArchivoService(db, obraService)
	avanceService := services.NewAvanceService(db, obraService)

	// Routes setup
	routes.SetupUserRoutes(router, userService)
	routes.SetupObraRoutes(router, obraService, pagoService, presupuestoService)
	routes.SetupPresupuestoRoutes(router, presupuestoService, rubroService)
	routes.SetupRubroRoutes(router, rubroService)
	routes.SetupPagoRoutes(router, pagoService)
	routes.SetupArchivoRoutes(router, archivoService)
	routes.SetupAvanceRoutes(router, avanceService)

	router.GET("/", func(c *gin.Context) {
		c.String(200, "ObraLink API")
	})

	// Server run
	if err := router.Run(host); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", host, err)
	}
}
