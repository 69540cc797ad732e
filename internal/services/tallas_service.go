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
	ErrTallaNotFound  = errors.New("talla not found")
	ErrTallaDuplicada = errors.New("talla already exists for this listing")
)

type TallasService struct {
	db *gorm.DB
}

func NewTallasService(db *gorm.DB) *TallasService {
	return &TallasService{db: db}
}

func (s *TallasService) Create(req *dto.CreateTallaRequest) (*models.Talla, error) {
	var count int64
	if err := s.db.Model(&models.ZapatillaTienda{}).Where("id = ?", req.ZapatillaTiendaID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrListingNotFound
	}

	t := models.Talla{
		ID:                uuid.New(),
		ZapatillaTiendaID: req.ZapatillaTiendaID,
		Talla:             req.Talla,
		Disponible:        true,
	}
	if req.Disponible != nil {
		t.Disponible = *req.Disponible
	}

	if err := s.db.Create(&t).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTallaDuplicada
		}
		return nil, fmt.Errorf("failed to create talla: %w", err)
	}
	return &t, nil
}

func (s *TallasService) FindAll() ([]models.Talla, error) {
	var tallas []models.Talla
	err := s.db.
		Preload("ZapatillaTienda.Zapatilla").
		Preload("ZapatillaTienda.Tienda").
		Find(&tallas).Error
	if err != nil {
		return nil, err
	}
	return tallas, nil
}

func (s *TallasService) FindOne(id uuid.UUID) (*models.Talla, error) {
	var t models.Talla
	err := s.db.
		Preload("ZapatillaTienda.Zapatilla").
		Preload("ZapatillaTienda.Tienda").
		First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTallaNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TallasService) FindByZapatillaTienda(listingID uuid.UUID) ([]models.Talla, error) {
	var tallas []models.Talla
	if err := s.db.Where("zapatilla_tienda_id = ?", listingID).Find(&tallas).Error; err != nil {
		return nil, err
	}
	return tallas, nil
}

func (s *TallasService) Update(id uuid.UUID, req *dto.UpdateTallaRequest) (*models.Talla, error) {
	var t models.Talla
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTallaNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Talla.Set {
		updates["talla"] = req.Talla.String()
	}
	if req.Disponible != nil {
		updates["disponible"] = *req.Disponible
	}
	if len(updates) > 0 {
		if err := s.db.Model(&t).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ErrTallaDuplicada
			}
			return nil, err
		}
	}
	return &t, nil
}

// Remove marks the size out of stock rather than deleting it.
func (s *TallasService) Remove(id uuid.UUID) (*models.Talla, error) {
	var t models.Talla
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTallaNotFound
		}
		return nil, err
	}
	if err := s.db.Model(&t).Update("disponible", false).Error; err != nil {
		return nil, err
	}
	t.Disponible = false
	return &t, nil
}
