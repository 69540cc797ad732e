package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/wendarnation/quimerabackend/internal/auth0"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUsuarioNotFound  = errors.New("usuario not found")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailTaken       = errors.New("email already registered")
	ErrNicknameTaken    = errors.New("nickname already registered")
	ErrUsuarioDuplicado = errors.New("email or nickname already in use")
)

// ManagementAPI is the slice of the Auth0 Management API the
// reconciliation layer needs. auth0.Client satisfies it.
type ManagementAPI interface {
	GetUser(ctx context.Context, auth0ID string) (*auth0.ManagementUser, error)
	UpdateUser(ctx context.Context, auth0ID string, upd auth0.UserUpdate) error
	FindRoleByName(ctx context.Context, name string) (*auth0.Role, error)
	AssignRole(ctx context.Context, auth0ID, roleID string) error
	DeleteUser(ctx context.Context, auth0ID string) (auth0.DeleteResult, error)
}

// AuthService reconciles the local user store against Auth0. Local
// database writes are authoritative and fatal on failure; every write
// toward Auth0 is a best-effort mirror that is logged and never
// propagated, so local state may diverge until the next sync.
type AuthService struct {
	db   *gorm.DB
	mgmt ManagementAPI
}

func NewAuthService(db *gorm.DB, mgmt ManagementAPI) *AuthService {
	return &AuthService{db: db, mgmt: mgmt}
}

// FindOrCreateUser materializes the local row for an Auth0 subject.
//
// Role policy: a role already stored locally is authoritative and is
// never overwritten here, whatever proposedRole says; only the explicit
// role-change path may alter it. For unknown subjects the role recorded
// in Auth0 metadata wins over proposedRole.
func (s *AuthService) FindOrCreateUser(ctx context.Context, auth0ID, email string, nombreCompleto, nickname *string, proposedRole string) (*models.Usuario, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	var existing models.Usuario
	err := s.db.First(&existing, "auth0_id = ?", auth0ID).Error
	switch {
	case err == nil:
		return s.syncExisting(ctx, &existing, nombreCompleto, nickname, proposedRole)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.createUser(ctx, auth0ID, email, nombreCompleto, nickname, proposedRole)
	default:
		return nil, err
	}
}

func (s *AuthService) syncExisting(ctx context.Context, user *models.Usuario, nombreCompleto, nickname *string, proposedRole string) (*models.Usuario, error) {
	if user.Rol == "" {
		rol := s.rolDesdeAuth0(ctx, user.Auth0ID)
		if rol == "" {
			rol = proposedRole
		}
		if rol != "" {
			if err := s.db.Model(user).Update("rol", rol).Error; err != nil {
				return nil, err
			}
			user.Rol = rol
			s.mirror(ctx, user.Auth0ID, auth0.UserUpdate{Rol: rol})
			s.reasignarRol(ctx, user.Auth0ID, rol)
		}
	}

	if user.FirstLogin && (nombreCompleto != nil || nickname != nil) {
		updates := map[string]interface{}{"first_login": false}
		if nombreCompleto != nil {
			updates["nombre_completo"] = *nombreCompleto
		}
		if nickname != nil {
			updates["nickname"] = *nickname
		}
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ErrNicknameTaken
			}
			return nil, err
		}
		user.FirstLogin = false
		if nombreCompleto != nil {
			user.NombreCompleto = nombreCompleto
		}
		if nickname != nil {
			user.Nickname = nickname
		}
		s.mirror(ctx, user.Auth0ID, auth0.UserUpdate{
			NombreCompleto: nombreCompleto,
			Nickname:       nickname,
		})
	}

	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, auth0ID, email string, nombreCompleto, nickname *string, proposedRole string) (*models.Usuario, error) {
	rol := s.rolDesdeAuth0(ctx, auth0ID)
	if rol == "" {
		rol = proposedRole
	}
	if rol == "" {
		rol = "usuario"
	}

	var emailCount int64
	if err := s.db.Model(&models.Usuario{}).Where("email = ?", email).Count(&emailCount).Error; err != nil {
		return nil, err
	}
	if emailCount > 0 {
		return nil, ErrEmailTaken
	}

	finalNickname := nickname
	if finalNickname != nil {
		var nickCount int64
		if err := s.db.Model(&models.Usuario{}).Where("nickname = ?", *finalNickname).Count(&nickCount).Error; err != nil {
			return nil, err
		}
		if nickCount > 0 {
			return nil, ErrNicknameTaken
		}
	} else {
		// Synthesized nicknames are not re-checked; the unique index
		// fails loudly on collision.
		generado := sintetizarNickname(email)
		finalNickname = &generado
	}

	user := models.Usuario{
		ID:             uuid.New(),
		Auth0ID:        auth0ID,
		Email:          email,
		Rol:            rol,
		NombreCompleto: nombreCompleto,
		Nickname:       finalNickname,
		FirstLogin:     true,
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

	// Mirror to Auth0: metadata write plus a discrete role assignment.
	// Both are idempotent, so the duplication is tolerated.
	emailCopy := email
	s.mirror(ctx, auth0ID, auth0.UserUpdate{
		Email:          &emailCopy,
		NombreCompleto: nombreCompleto,
		Nickname:       finalNickname,
		Rol:            rol,
	})
	s.reasignarRol(ctx, auth0ID, rol)

	return &user, nil
}

// UpdateUserRole is the explicit admin role-change path: the local role
// is overwritten unconditionally, then mirrored.
func (s *AuthService) UpdateUserRole(ctx context.Context, userID uuid.UUID, rol string) (*models.Usuario, error) {
	var user models.Usuario
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{"rol": rol, "first_login": false}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.Rol = rol
	user.FirstLogin = false

	s.mirror(ctx, user.Auth0ID, auth0.UserUpdate{Rol: rol})
	s.reasignarRol(ctx, user.Auth0ID, rol)

	return &user, nil
}

// UpdateUserProfile applies a partial update: absent fields stay, explicit
// nulls clear. Only the fields that changed are mirrored upstream.
func (s *AuthService) UpdateUserProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateUsuarioRequest) (*models.Usuario, error) {
	var user models.Usuario
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	mirror := auth0.UserUpdate{}

	if req.Email.Set && req.Email.Value != nil {
		var count int64
		if err := s.db.Model(&models.Usuario{}).
			Where("email = ? AND id <> ?", *req.Email.Value, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		updates["email"] = *req.Email.Value
		mirror.Email = req.Email.Value
	}

	if req.Nickname.Set {
		if req.Nickname.Value != nil {
			var count int64
			if err := s.db.Model(&models.Usuario{}).
				Where("nickname = ? AND id <> ?", *req.Nickname.Value, userID).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrNicknameTaken
			}
		}
		updates["nickname"] = req.Nickname.Value
		mirror.Nickname = req.Nickname.Value
	}

	if req.NombreCompleto.Set {
		updates["nombre_completo"] = req.NombreCompleto.Value
		mirror.NombreCompleto = req.NombreCompleto.Value
	}

	if req.Rol.Set && req.Rol.Value != nil {
		updates["rol"] = *req.Rol.Value
		mirror.Rol = *req.Rol.Value
	}

	// Supplying profile fields ends the first-login window.
	if req.NombreCompleto.Value != nil || req.Nickname.Value != nil {
		updates["first_login"] = false
	} else if req.FirstLogin != nil {
		updates["first_login"] = *req.FirstLogin
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ErrUsuarioDuplicado
			}
			return nil, err
		}
	}

	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	if mirror.Email != nil || mirror.NombreCompleto != nil || mirror.Nickname != nil || mirror.Rol != "" {
		s.mirror(ctx, user.Auth0ID, mirror)
	}

	return &user, nil
}

// Remove deletes the local row and then attempts the provider-side
// deletion, tolerating its failure.
func (s *AuthService) Remove(ctx context.Context, userID uuid.UUID) (*models.Usuario, error) {
	var user models.Usuario
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return nil, err
	}

	if user.Auth0ID != "" {
		if result, err := s.mgmt.DeleteUser(ctx, user.Auth0ID); err != nil {
			slog.Error("auth0 deletion failed",
				"accion", "remove_usuario", "usuario_id", user.ID.String(), "error", err.Error())
		} else if !result.Deleted {
			slog.Info("auth0 deletion skipped", "auth0_id", user.Auth0ID, "reason", result.Reason)
		}
	}

	return &user, nil
}

// rolDesdeAuth0 reads the role recorded in provider metadata; failures
// degrade to "".
func (s *AuthService) rolDesdeAuth0(ctx context.Context, auth0ID string) string {
	mu, err := s.mgmt.GetUser(ctx, auth0ID)
	if err != nil {
		slog.Error("auth0 user fetch failed",
			"accion", "rol_desde_auth0", "auth0_id", auth0ID, "error", err.Error())
		return ""
	}
	return mu.MetadataRol()
}

func (s *AuthService) mirror(ctx context.Context, auth0ID string, upd auth0.UserUpdate) {
	if auth0ID == "" {
		return
	}
	if err := s.mgmt.UpdateUser(ctx, auth0ID, upd); err != nil {
		slog.Error("auth0 mirror failed",
			"accion", "mirror_usuario", "auth0_id", auth0ID, "error", err.Error())
	}
}

func (s *AuthService) reasignarRol(ctx context.Context, auth0ID, rol string) {
	if auth0ID == "" || rol == "" {
		return
	}
	role, err := s.mgmt.FindRoleByName(ctx, rol)
	if err != nil {
		slog.Error("auth0 role lookup failed",
			"accion", "reasignar_rol", "auth0_id", auth0ID, "rol", rol, "error", err.Error())
		return
	}
	if role == nil {
		return
	}
	if err := s.mgmt.AssignRole(ctx, auth0ID, role.ID); err != nil {
		slog.Error("auth0 role assignment failed",
			"accion", "reasignar_rol", "auth0_id", auth0ID, "rol", rol, "error", err.Error())
	}
}

func sintetizarNickname(email string) string {
	if local, _, found := strings.Cut(email, "@"); found {
		return local
	}
	return fmt.Sprintf("user_%d", rand.Intn(10000))
}
