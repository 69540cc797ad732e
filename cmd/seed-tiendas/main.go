package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/wendarnation/quimerabackend/internal/config"
	"github.com/wendarnation/quimerabackend/internal/database"
	"github.com/wendarnation/quimerabackend/internal/logging"
	"github.com/wendarnation/quimerabackend/internal/models"
)

// Default store catalog for a fresh deployment. Idempotent by nombre.
var tiendasPredeterminadas = []models.Tienda{
	{Nombre: "JD Sports", URL: "https://www.jdsports.es", Activa: true},
	{Nombre: "Footlocker", URL: "https://www.footlocker.es", Activa: true},
	{Nombre: "Snipes", URL: "https://www.snipes.com/es-es", Activa: true},
}

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	for _, t := range tiendasPredeterminadas {
		var existing models.Tienda
		err := database.DB.
			Where("LOWER(nombre) LIKE ?", "%"+strings.ToLower(t.Nombre)+"%").
			First(&existing).Error
		if err == nil {
			slog.Info("tienda already exists", "nombre", t.Nombre, "id", existing.ID)
			continue
		}

		t.ID = uuid.New()
		if err := database.DB.Create(&t).Error; err != nil {
			slog.Error("failed to create tienda", "nombre", t.Nombre, "error", err)
			continue
		}
		slog.Info("tienda created", "nombre", t.Nombre, "id", t.ID)
	}

	slog.Info("seeding done")
}
