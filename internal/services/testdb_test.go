package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/wendarnation/quimerabackend/internal/database"
	"github.com/wendarnation/quimerabackend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A pooled second connection would see its own empty in-memory DB.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedZapatilla(t *testing.T, db *gorm.DB, marca, modelo, sku string) models.Zapatilla {
	t.Helper()
	z := models.Zapatilla{
		ID:     uuid.New(),
		Marca:  marca,
		Modelo: modelo,
		SKU:    sku,
		Activa: true,
	}
	if err := db.Create(&z).Error; err != nil {
		t.Fatalf("failed to seed zapatilla: %v", err)
	}
	return z
}

func seedTienda(t *testing.T, db *gorm.DB, nombre string) models.Tienda {
	t.Helper()
	tienda := models.Tienda{
		ID:     uuid.New(),
		Nombre: nombre,
		URL:    "https://" + nombre + ".example.com",
		Activa: true,
	}
	if err := db.Create(&tienda).Error; err != nil {
		t.Fatalf("failed to seed tienda: %v", err)
	}
	return tienda
}

func seedListing(t *testing.T, db *gorm.DB, zapatillaID, tiendaID uuid.UUID, precio float64, disponible bool) models.ZapatillaTienda {
	t.Helper()
	zt := models.ZapatillaTienda{
		ID:          uuid.New(),
		ZapatillaID: zapatillaID,
		TiendaID:    tiendaID,
		Precio:      precio,
		Disponible:  disponible,
	}
	if err := db.Create(&zt).Error; err != nil {
		t.Fatalf("failed to seed listing: %v", err)
	}
	return zt
}

func seedUsuario(t *testing.T, db *gorm.DB, auth0ID, email string) models.Usuario {
	t.Helper()
	nickname := auth0ID + "-nick"
	u := models.Usuario{
		ID:       uuid.New(),
		Auth0ID:  auth0ID,
		Email:    email,
		Rol:      "usuario",
		Nickname: &nickname,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed usuario: %v", err)
	}
	return u
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }
