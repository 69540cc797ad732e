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
	ErrComentarioNotFound = errors.New("comentario not found")
	ErrComentarioAjeno    = errors.New("comentario belongs to another user")
)

type ComentariosService struct {
	db *gorm.DB
}

func NewComentariosService(db *gorm.DB) *ComentariosService {
	return &ComentariosService{db: db}
}

func (s *ComentariosService) Create(usuarioID uuid.UUID, req *dto.CreateComentarioRequest) (*models.Comentario, error) {
	var count int64
	if err := s.db.Model(&models.Zapatilla{}).Where("id = ?", req.ZapatillaID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrZapatillaNotFound
	}

	c := models.Comentario{
		ID:          uuid.New(),
		UsuarioID:   usuarioID,
		ZapatillaID: req.ZapatillaID,
		Texto:       req.Texto,
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create comentario: %w", err)
	}

	s.db.Preload("Usuario").First(&c, "id = ?", c.ID)
	return &c, nil
}

func (s *ComentariosService) FindAll() ([]models.Comentario, error) {
	var comentarios []models.Comentario
	err := s.db.
		Preload("Usuario").
		Preload("Zapatilla").
		Order("fecha DESC").
		Find(&comentarios).Error
	if err != nil {
		return nil, err
	}
	return comentarios, nil
}

func (s *ComentariosService) FindOne(id uuid.UUID) (*models.Comentario, error) {
	var c models.Comentario
	err := s.db.
		Preload("Usuario").
		Preload("Zapatilla").
		First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComentarioNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *ComentariosService) FindByZapatilla(zapatillaID uuid.UUID) ([]models.Comentario, error) {
	var comentarios []models.Comentario
	err := s.db.
		Preload("Usuario").
		Where("zapatilla_id = ?", zapatillaID).
		Order("fecha DESC").
		Find(&comentarios).Error
	if err != nil {
		return nil, err
	}
	return comentarios, nil
}

// Update only lets the author touch their own comment.
func (s *ComentariosService) Update(id, usuarioID uuid.UUID, req *dto.UpdateComentarioRequest) (*models.Comentario, error) {
	c, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	if c.UsuarioID != usuarioID {
		return nil, ErrComentarioAjeno
	}
	if err := s.db.Model(c).Update("texto", req.Texto).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComentariosService) Remove(id, usuarioID uuid.UUID) (*models.Comentario, error) {
	c, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	if c.UsuarioID != usuarioID {
		return nil, ErrComentarioAjeno
	}
	if err := s.db.Delete(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}
