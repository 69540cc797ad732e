package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/models"
	"gorm.io/gorm"
)

var ErrTiendaNotFound = errors.New("tienda not found")

type TiendasService struct {
	db *gorm.DB
}

func NewTiendasService(db *gorm.DB) *TiendasService {
	return &TiendasService{db: db}
}

func (s *TiendasService) Create(req *dto.CreateTiendaRequest) (*models.Tienda, error) {
	t := models.Tienda{
		ID:     uuid.New(),
		Nombre: req.Nombre,
		URL:    req.URL,
		Activa: true,
	}
	if req.Activa != nil {
		t.Activa = *req.Activa
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create tienda: %w", err)
	}
	return &t, nil
}

func (s *TiendasService) FindAll(activa *bool) ([]models.Tienda, error) {
	mostrar := true
	if activa != nil {
		mostrar = *activa
	}
	var tiendas []models.Tienda
	if err := s.db.Where("activa = ?", mostrar).Find(&tiendas).Error; err != nil {
		return nil, err
	}
	return tiendas, nil
}

func (s *TiendasService) FindOne(id uuid.UUID) (*models.Tienda, error) {
	var t models.Tienda
	if err := s.db.Preload("Zapatillas.Zapatilla").First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTiendaNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TiendasService) Update(id uuid.UUID, req *dto.UpdateTiendaRequest) (*models.Tienda, error) {
	var t models.Tienda
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTiendaNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Nombre.Set {
		updates["nombre"] = req.Nombre.String()
	}
	if req.URL.Set {
		updates["url"] = req.URL.String()
	}
	if req.Activa != nil {
		updates["activa"] = *req.Activa
	}
	if len(updates) > 0 {
		if err := s.db.Model(&t).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// Remove deactivates the store; its listings stay but stop surfacing
// through availability-filtered queries.
func (s *TiendasService) Remove(id uuid.UUID) (*models.Tienda, error) {
	var t models.Tienda
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTiendaNotFound
		}
		return nil, err
	}
	if err := s.db.Model(&t).Update("activa", false).Error; err != nil {
		return nil, err
	}
	t.Activa = false
	return &t, nil
}
