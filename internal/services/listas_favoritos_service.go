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
	ErrListaNotFound          = errors.New("lista de favoritos not found")
	ErrListaAjena             = errors.New("lista belongs to another user")
	ErrListaPredeterminada    = errors.New("default lista cannot be deleted")
	ErrPredeterminadaExiste   = errors.New("user already has a default lista")
	ErrZapatillaYaEnLista     = errors.New("zapatilla already in lista")
	ErrZapatillaNoEstaEnLista = errors.New("zapatilla not in lista")
)

type ListasFavoritosService struct {
	db *gorm.DB
}

func NewListasFavoritosService(db *gorm.DB) *ListasFavoritosService {
	return &ListasFavoritosService{db: db}
}

func (s *ListasFavoritosService) Create(usuarioID uuid.UUID, req *dto.CreateListaFavoritosRequest) (*models.ListaFavoritos, error) {
	if req.Predeterminada {
		var count int64
		err := s.db.Model(&models.ListaFavoritos{}).
			Where("usuario_id = ? AND predeterminada = ?", usuarioID, true).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrPredeterminadaExiste
		}
	}

	lista := models.ListaFavoritos{
		ID:             uuid.New(),
		UsuarioID:      usuarioID,
		Nombre:         req.Nombre,
		Predeterminada: req.Predeterminada,
	}
	if err := s.db.Create(&lista).Error; err != nil {
		return nil, fmt.Errorf("failed to create lista: %w", err)
	}
	return &lista, nil
}

func (s *ListasFavoritosService) FindAll(usuarioID uuid.UUID) ([]models.ListaFavoritos, error) {
	var listas []models.ListaFavoritos
	err := s.db.
		Preload("Zapatillas.Zapatilla").
		Where("usuario_id = ?", usuarioID).
		Find(&listas).Error
	if err != nil {
		return nil, err
	}
	return listas, nil
}

// FindOne enforces ownership: reading someone else's list is Forbidden,
// not NotFound.
func (s *ListasFavoritosService) FindOne(id, usuarioID uuid.UUID) (*models.ListaFavoritos, error) {
	var lista models.ListaFavoritos
	err := s.db.
		Preload("Zapatillas.Zapatilla.Tiendas.Tienda").
		First(&lista, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListaNotFound
		}
		return nil, err
	}
	if lista.UsuarioID != usuarioID {
		return nil, ErrListaAjena
	}
	return &lista, nil
}

// Update can promote a list to default; the previous default is demoted
// in the same operation so the at-most-one invariant holds.
func (s *ListasFavoritosService) Update(id, usuarioID uuid.UUID, req *dto.UpdateListaFavoritosRequest) (*models.ListaFavoritos, error) {
	lista, err := s.FindOne(id, usuarioID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.Predeterminada != nil && *req.Predeterminada {
			err := tx.Model(&models.ListaFavoritos{}).
				Where("usuario_id = ? AND predeterminada = ?", usuarioID, true).
				Update("predeterminada", false).Error
			if err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if req.Nombre.Set {
			updates["nombre"] = req.Nombre.String()
		}
		if req.Predeterminada != nil {
			updates["predeterminada"] = *req.Predeterminada
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(lista).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(id, usuarioID)
}

func (s *ListasFavoritosService) Remove(id, usuarioID uuid.UUID) (*models.ListaFavoritos, error) {
	lista, err := s.FindOne(id, usuarioID)
	if err != nil {
		return nil, err
	}
	if lista.Predeterminada {
		return nil, ErrListaPredeterminada
	}
	if err := s.db.Select("Zapatillas").Delete(lista).Error; err != nil {
		return nil, err
	}
	return lista, nil
}

func (s *ListasFavoritosService) AddZapatilla(listaID, usuarioID uuid.UUID, req *dto.AddZapatillaListaRequest) (*models.ListaFavoritosZapatilla, error) {
	if _, err := s.FindOne(listaID, usuarioID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Zapatilla{}).Where("id = ?", req.ZapatillaID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrZapatillaNotFound
	}

	entrada := models.ListaFavoritosZapatilla{
		ID:          uuid.New(),
		ListaID:     listaID,
		ZapatillaID: req.ZapatillaID,
	}
	if err := s.db.Create(&entrada).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrZapatillaYaEnLista
		}
		return nil, err
	}

	s.db.Preload("Zapatilla").First(&entrada, "id = ?", entrada.ID)
	return &entrada, nil
}

func (s *ListasFavoritosService) RemoveZapatilla(listaID, zapatillaID, usuarioID uuid.UUID) error {
	if _, err := s.FindOne(listaID, usuarioID); err != nil {
		return err
	}

	result := s.db.
		Where("lista_id = ? AND zapatilla_id = ?", listaID, zapatillaID).
		Delete(&models.ListaFavoritosZapatilla{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrZapatillaNoEstaEnLista
	}
	return nil
}
