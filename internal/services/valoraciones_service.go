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
	ErrValoracionNotFound  = errors.New("valoracion not found")
	ErrValoracionAjena     = errors.New("valoracion belongs to another user")
	ErrValoracionDuplicada = errors.New("user already rated this zapatilla")
	ErrPuntuacionInvalida  = errors.New("puntuacion must be between 1 and 5")
)

type ValoracionesService struct {
	db *gorm.DB
}

func NewValoracionesService(db *gorm.DB) *ValoracionesService {
	return &ValoracionesService{db: db}
}

func (s *ValoracionesService) Create(usuarioID uuid.UUID, req *dto.CreateValoracionRequest) (*models.Valoracion, error) {
	if req.Puntuacion < 1 || req.Puntuacion > 5 {
		return nil, ErrPuntuacionInvalida
	}

	var count int64
	if err := s.db.Model(&models.Zapatilla{}).Where("id = ?", req.ZapatillaID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrZapatillaNotFound
	}

	v := models.Valoracion{
		ID:          uuid.New(),
		UsuarioID:   usuarioID,
		ZapatillaID: req.ZapatillaID,
		Puntuacion:  req.Puntuacion,
	}
	if err := s.db.Create(&v).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrValoracionDuplicada
		}
		return nil, fmt.Errorf("failed to create valoracion: %w", err)
	}

	s.db.Preload("Usuario").First(&v, "id = ?", v.ID)
	return &v, nil
}

func (s *ValoracionesService) FindAll() ([]models.Valoracion, error) {
	var valoraciones []models.Valoracion
	err := s.db.
		Preload("Usuario").
		Preload("Zapatilla").
		Order("fecha DESC").
		Find(&valoraciones).Error
	if err != nil {
		return nil, err
	}
	return valoraciones, nil
}

func (s *ValoracionesService) FindOne(id uuid.UUID) (*models.Valoracion, error) {
	var v models.Valoracion
	err := s.db.
		Preload("Usuario").
		Preload("Zapatilla").
		First(&v, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValoracionNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *ValoracionesService) FindByZapatilla(zapatillaID uuid.UUID) ([]models.Valoracion, error) {
	var valoraciones []models.Valoracion
	err := s.db.
		Preload("Usuario").
		Where("zapatilla_id = ?", zapatillaID).
		Order("fecha DESC").
		Find(&valoraciones).Error
	if err != nil {
		return nil, err
	}
	return valoraciones, nil
}

func (s *ValoracionesService) Average(zapatillaID uuid.UUID) (*dto.AverageRatingResponse, error) {
	var exists int64
	if err := s.db.Model(&models.Zapatilla{}).Where("id = ?", zapatillaID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrZapatillaNotFound
	}

	resp := dto.AverageRatingResponse{ZapatillaID: zapatillaID}
	row := struct {
		Avg   *float64
		Count int64
	}{}
	err := s.db.Model(&models.Valoracion{}).
		Select("AVG(puntuacion) AS avg, COUNT(*) AS count").
		Where("zapatilla_id = ?", zapatillaID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	resp.Count = row.Count
	if row.Avg != nil {
		resp.Average = *row.Avg
	}
	return &resp, nil
}

func (s *ValoracionesService) Update(id, usuarioID uuid.UUID, req *dto.UpdateValoracionRequest) (*models.Valoracion, error) {
	if req.Puntuacion < 1 || req.Puntuacion > 5 {
		return nil, ErrPuntuacionInvalida
	}
	v, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	if v.UsuarioID != usuarioID {
		return nil, ErrValoracionAjena
	}
	if err := s.db.Model(v).Update("puntuacion", req.Puntuacion).Error; err != nil {
		return nil, err
	}
	return v, nil
}

func (s *ValoracionesService) Remove(id, usuarioID uuid.UUID) (*models.Valoracion, error) {
	v, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	if v.UsuarioID != usuarioID {
		return nil, ErrValoracionAjena
	}
	if err := s.db.Delete(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}
