package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/models"
	"gorm.io/gorm"
)

// UsuariosService covers the admin-facing account CRUD. Reconciliation
// semantics (role policy, Auth0 mirroring) live in AuthService and are
// reused for update/remove paths.
type UsuariosService struct {
	db   *gorm.DB
	auth *AuthService
}

func NewUsuariosService(db *gorm.DB, auth *AuthService) *UsuariosService {
	return &UsuariosService{db: db, auth: auth}
}

// Create is the explicit admin creation path. Like the sync path it
// provisions the default favorites list atomically.
func (s *UsuariosService) Create(req *dto.CreateUsuarioRequest) (*models.Usuario, error) {
	if req.Email == "" {
		return nil, ErrEmailRequired
	}

	var count int64
	if err := s.db.Model(&models.Usuario{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	nickname := req.Nickname
	if nickname != nil {
		if err := s.db.Model(&models.Usuario{}).Where("nickname = ?", *nickname).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrNicknameTaken
		}
	} else {
		generado := sintetizarNickname(req.Email)
		nickname = &generado
	}

	rol := req.Rol
	if rol == "" {
		rol = "usuario"
	}

	user := models.Usuario{
		ID:             uuid.New(),
		Auth0ID:        req.Auth0ID,
		Email:          req.Email,
		Rol:            rol,
		NombreCompleto: req.NombreCompleto,
		Nickname:       nickname,
		FirstLogin:     req.FirstLogin,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		lista := models.ListaFavoritos{
			ID:             uuid.New(),
			UsuarioID:      user.ID,
			Nombre:         "Favoritos",
			Predeterminada: true,
		}
		return tx.Create(&lista).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsuarioDuplicado
		}
		return nil, fmt.Errorf("failed to create usuario: %w", err)
	}

	return s.FindOne(user.ID)
}

func (s *UsuariosService) FindAll() ([]models.Usuario, error) {
	var usuarios []models.Usuario
	if err := s.db.Find(&usuarios).Error; err != nil {
		return nil, err
	}
	return usuarios, nil
}

// FindAllExcept lists every user but the given one (used by admin panels
// to exclude the caller).
func (s *UsuariosService) FindAllExcept(excludeID uuid.UUID) ([]models.Usuario, error) {
	var usuarios []models.Usuario
	if err := s.db.Where("id <> ?", excludeID).Find(&usuarios).Error; err != nil {
		return nil, err
	}
	return usuarios, nil
}

func (s *UsuariosService) FindOne(id uuid.UUID) (*models.Usuario, error) {
	var user models.Usuario
	err := s.db.
		Preload("ListasFavoritos").
		Preload("Comentarios").
		Preload("Valoraciones").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UsuariosService) FindByEmail(email string) (*models.Usuario, error) {
	var user models.Usuario
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UsuariosService) FindByAuth0ID(auth0ID string) (*models.Usuario, error) {
	var user models.Usuario
	if err := s.db.First(&user, "auth0_id = ?", auth0ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UsuariosService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUsuarioRequest) (*models.Usuario, error) {
	return s.auth.UpdateUserProfile(ctx, id, req)
}

func (s *UsuariosService) ChangeRole(ctx context.Context, id uuid.UUID, rol string) (*models.Usuario, error) {
	return s.auth.UpdateUserRole(ctx, id, rol)
}

func (s *UsuariosService) Remove(ctx context.Context, id uuid.UUID) (*models.Usuario, error) {
	return s.auth.Remove(ctx, id)
}
