package middleware

import (
	"fmt"
	"log/slog"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wendarnation/quimerabackend/internal/config"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/services"
)

const authUserKey = "auth_user"

// AuthUser is what route handlers see after the token has been
// validated and the subject reconciled against the local store.
type AuthUser struct {
	ID              uuid.UUID
	Auth0ID         string
	Email           string
	Rol             string
	NombreCompleto  *string
	Nickname        *string
	Permissions     []string
	ProfileComplete bool
	FirstLogin      bool
	IsClientToken   bool
}

// CurrentUser returns the authenticated caller, or nil when the route
// ran without SyncUser.
func CurrentUser(c *fiber.Ctx) *AuthUser {
	u, _ := c.Locals(authUserKey).(*AuthUser)
	return u
}

// JWTProtected validates bearer tokens against the tenant's published
// key set. Keys are fetched and cached by the jwt middleware itself.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		JWKSetURLs: []string{cfg.JWKSURL()},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Warn("token rejected", "path", c.Path(), "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// SyncUser runs after JWTProtected. It checks issuer and audience,
// classifies the token, materializes the local user row and attaches
// AuthUser to the request. Every failure maps to the same generic 401;
// the detail only goes to the log.
func SyncUser(auth *services.AuthService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveUser(c, auth, cfg)
		if err != nil {
			slog.Error("user sync failed",
				"accion", "sync_user",
				"path", c.Path(),
				"error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized",
			})
		}
		c.Locals(authUserKey, user)
		return c.Next()
	}
}

func resolveUser(c *fiber.Ctx, auth *services.AuthService, cfg *config.Config) (*AuthUser, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, fmt.Errorf("no token in context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	if iss, _ := claims["iss"].(string); iss != cfg.IssuerURL() {
		return nil, fmt.Errorf("issuer mismatch: %q", iss)
	}
	if !audienceMatches(claims["aud"], cfg.Auth0Audience) {
		return nil, fmt.Errorf("audience mismatch")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("missing sub claim")
	}

	permissions := claimStrings(claims["permissions"])
	isClient := false
	var email string
	var nombre, nickname *string

	if gty, _ := claims["gty"].(string); gty == "client-credentials" {
		// Machine token: no profile claims, synthesize a stable email
		// so the subject still gets a local row.
		isClient = true
		email = sub + "@clients.quimera.internal"
		if scope, _ := claims["scope"].(string); scope != "" && len(permissions) == 0 {
			permissions = strings.Fields(scope)
		}
	} else {
		email, _ = claims["email"].(string)
		if email == "" {
			return nil, fmt.Errorf("missing email claim for user token")
		}
		nombre = firstClaimString(claims, "nombre_completo", "name")
		nickname = firstClaimString(claims, "nickname", "custom_nickname")
		if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
			if nombre == nil {
				nombre = metaString(meta, "full_name")
			}
			if nickname == nil {
				nickname = metaString(meta, "custom_nickname")
			}
		}
	}

	user, err := auth.FindOrCreateUser(c.Context(), sub, email, nombre, nickname, initialRole(isClient, permissions))
	if err != nil {
		return nil, err
	}

	// A first-login user arriving with token permissions gets promoted.
	// This fires on any authenticated request during the first-login
	// window, not just an explicit role change.
	if !isClient && user.FirstLogin && len(permissions) > 0 && user.Rol != "admin" {
		promoted, err := auth.UpdateUserRole(c.Context(), user.ID, "admin")
		if err != nil {
			return nil, err
		}
		user = promoted
	}

	return &AuthUser{
		ID:              user.ID,
		Auth0ID:         user.Auth0ID,
		Email:           user.Email,
		Rol:             user.Rol,
		NombreCompleto:  user.NombreCompleto,
		Nickname:        user.Nickname,
		Permissions:     permissions,
		ProfileComplete: user.PerfilCompleto(),
		FirstLogin:      user.FirstLogin,
		IsClientToken:   isClient,
	}, nil
}

func initialRole(isClient bool, permissions []string) string {
	switch {
	case isClient:
		return "sistema"
	case len(permissions) > 0:
		return "admin"
	default:
		return "usuario"
	}
}

func audienceMatches(aud interface{}, want string) bool {
	switch v := aud.(type) {
	case string:
		return v == want
	case []interface{}:
		for _, item := range v {
			if s, _ := item.(string); s == want {
				return true
			}
		}
	}
	return false
}

func claimStrings(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, _ := item.(string); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstClaimString(claims jwt.MapClaims, keys ...string) *string {
	for _, k := range keys {
		if s, _ := claims[k].(string); s != "" {
			return &s
		}
	}
	return nil
}

func metaString(meta map[string]interface{}, key string) *string {
	if s, _ := meta[key].(string); s != "" {
		return &s
	}
	return nil
}
