package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrListingNotFound  = errors.New("zapatilla-tienda listing not found")
	ErrListingDuplicado = errors.New("listing already exists for this zapatilla and tienda")
)

type ZapatillasTiendaService struct {
	db *gorm.DB
}

func NewZapatillasTiendaService(db *gorm.DB) *ZapatillasTiendaService {
	return &ZapatillasTiendaService{db: db}
}

func (s *ZapatillasTiendaService) Create(req *dto.CreateZapatillaTiendaRequest) (*models.ZapatillaTienda, error) {
	// The FK targets must exist; a missing parent is a NotFound, not a
	// constraint blowup.
	var count int64
	if err := s.db.Model(&models.Zapatilla{}).Where("id = ?", req.ZapatillaID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrZapatillaNotFound
	}
	if err := s.db.Model(&models.Tienda{}).Where("id = ?", req.TiendaID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrTiendaNotFound
	}

	zt := models.ZapatillaTienda{
		ID:           uuid.New(),
		ZapatillaID:  req.ZapatillaID,
		TiendaID:     req.TiendaID,
		ModeloTienda: req.ModeloTienda,
		Precio:       req.Precio,
		Disponible:   true,
		URLProducto:  req.URLProducto,
	}
	if req.Disponible != nil {
		zt.Disponible = *req.Disponible
	}

	if err := s.db.Create(&zt).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrListingDuplicado
		}
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.db.Preload("Zapatilla").Preload("Tienda").First(&zt, "id = ?", zt.ID)
	return &zt, nil
}

func (s *ZapatillasTiendaService) FindAll() ([]models.ZapatillaTienda, error) {
	var listings []models.ZapatillaTienda
	err := s.db.
		Preload("Zapatilla").
		Preload("Tienda").
		Preload("Tallas").
		Where("disponible = ?", true).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *ZapatillasTiendaService) FindOne(id uuid.UUID) (*models.ZapatillaTienda, error) {
	var zt models.ZapatillaTienda
	err := s.db.
		Preload("Zapatilla").
		Preload("Tienda").
		Preload("Tallas").
		First(&zt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &zt, nil
}

func (s *ZapatillasTiendaService) FindByZapatilla(zapatillaID uuid.UUID) ([]models.ZapatillaTienda, error) {
	var listings []models.ZapatillaTienda
	err := s.db.
		Preload("Tienda").
		Preload("Tallas").
		Where("zapatilla_id = ?", zapatillaID).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *ZapatillasTiendaService) FindByTienda(tiendaID uuid.UUID) ([]models.ZapatillaTienda, error) {
	var listings []models.ZapatillaTienda
	err := s.db.
		Preload("Zapatilla").
		Preload("Tallas").
		Where("tienda_id = ?", tiendaID).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *ZapatillasTiendaService) Update(id uuid.UUID, req *dto.UpdateZapatillaTiendaRequest) (*models.ZapatillaTienda, error) {
	var zt models.ZapatillaTienda
	if err := s.db.First(&zt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.ModeloTienda.Set {
		updates["modelo_tienda"] = req.ModeloTienda.String()
	}
	if req.Precio != nil {
		updates["precio"] = *req.Precio
	}
	if req.Disponible != nil {
		updates["disponible"] = *req.Disponible
	}
	if req.URLProducto.Set {
		updates["url_producto"] = req.URLProducto.String()
	}
	if len(updates) > 0 {
		if err := s.db.Model(&zt).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.FindOne(id)
}

func (s *ZapatillasTiendaService) Remove(id uuid.UUID) (*models.ZapatillaTienda, error) {
	var zt models.ZapatillaTienda
	if err := s.db.First(&zt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if err := s.db.Model(&zt).Update("disponible", false).Error; err != nil {
		return nil, err
	}
	zt.Disponible = false
	return &zt, nil
}
