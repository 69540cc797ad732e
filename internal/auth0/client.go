package auth0

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wendarnation/quimerabackend/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Client wraps the Auth0 Management API. The bearer token is acquired via
// a client-credentials exchange and reused until expiry by the oauth2
// token source, so concurrent callers share one cached token.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.Auth0ManagementClientID,
		ClientSecret: cfg.Auth0ManagementClientSecret,
		TokenURL:     "https://" + cfg.Auth0Domain + "/oauth/token",
		EndpointParams: url.Values{
			"audience": {"https://" + cfg.Auth0Domain + "/api/v2/"},
		},
		AuthStyle: oauth2.AuthStyleInParams,
	}

	base := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{
		Timeout: 10 * time.Second,
	})

	return &Client{
		baseURL: "https://" + cfg.Auth0Domain + "/api/v2",
		http:    cc.Client(base),
	}
}

// ManagementUser is the provider's representation of an account, including
// the metadata blob this system writes (rol, full_name, custom_nickname).
type ManagementUser struct {
	UserID       string                 `json:"user_id"`
	Email        string                 `json:"email"`
	Name         string                 `json:"name"`
	Nickname     string                 `json:"nickname"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// MetadataRol returns the role recorded in user_metadata, or "".
func (u *ManagementUser) MetadataRol() string {
	if u == nil || u.UserMetadata == nil {
		return ""
	}
	if rol, ok := u.UserMetadata["rol"].(string); ok {
		return rol
	}
	return ""
}

type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserUpdate carries the standard profile fields to mirror. Nil fields are
// omitted from the PATCH. A non-empty Rol additionally triggers role
// reassignment.
type UserUpdate struct {
	Email          *string
	NombreCompleto *string
	Nickname       *string
	Rol            string
}

type DeleteResult struct {
	Deleted bool   `json:"deleted"`
	Reason  string `json:"reason,omitempty"`
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func userPath(auth0ID string) string {
	return "/users/" + url.PathEscape(auth0ID)
}

// GetUser fetches the provider's copy of an account.
func (c *Client) GetUser(ctx context.Context, auth0ID string) (*ManagementUser, error) {
	var user ManagementUser
	if err := c.do(ctx, "get user", http.MethodGet, userPath(auth0ID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser mirrors profile fields and the metadata blob to Auth0. The
// current metadata is fetched first so unrelated keys survive the merge;
// if that fetch fails the merge proceeds over an empty object. A role in
// the update also triggers discrete role reassignment, whose failure is
// swallowed so the primary field update is not rolled back.
func (c *Client) UpdateUser(ctx context.Context, auth0ID string, upd UserUpdate) error {
	metadata := map[string]interface{}{}
	if current, err := c.GetUser(ctx, auth0ID); err != nil {
		slog.Error("auth0 metadata fetch failed, mirroring over empty metadata",
			"accion", "update_user", "auth0_id", auth0ID, "error", err.Error())
	} else if current.UserMetadata != nil {
		metadata = current.UserMetadata
	}

	payload := map[string]interface{}{}
	if upd.Email != nil {
		payload["email"] = *upd.Email
	}
	if upd.NombreCompleto != nil {
		payload["name"] = *upd.NombreCompleto
		metadata["full_name"] = *upd.NombreCompleto
	}
	if upd.Nickname != nil {
		payload["nickname"] = *upd.Nickname
		metadata["custom_nickname"] = *upd.Nickname
	}
	if upd.Rol != "" {
		metadata["rol"] = upd.Rol
	}
	if len(metadata) > 0 {
		payload["user_metadata"] = metadata
	}

	if err := c.do(ctx, "update user", http.MethodPatch, userPath(auth0ID), payload, nil); err != nil {
		return err
	}

	if upd.Rol != "" {
		if err := c.reassignRole(ctx, auth0ID, upd.Rol); err != nil {
			slog.Error("auth0 role reassignment failed",
				"accion", "update_user", "auth0_id", auth0ID, "rol", upd.Rol, "error", err.Error())
		}
	}
	return nil
}

func (c *Client) reassignRole(ctx context.Context, auth0ID, rolName string) error {
	role, err := c.FindRoleByName(ctx, rolName)
	if err != nil {
		return err
	}
	if role == nil {
		slog.Warn("auth0 role not defined on tenant, skipping assignment", "rol", rolName)
		return nil
	}
	return c.AssignRole(ctx, auth0ID, role.ID)
}

// ListRoles returns every role defined on the tenant.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.do(ctx, "list roles", http.MethodGet, "/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// FindRoleByName matches case-insensitively and returns (nil, nil) when
// the role does not exist.
func (c *Client) FindRoleByName(ctx context.Context, name string) (*Role, error) {
	roles, err := c.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range roles {
		if strings.EqualFold(roles[i].Name, name) {
			return &roles[i], nil
		}
	}
	return nil, nil
}

// ListUserRoles returns the roles currently assigned to the account.
// Failures degrade to an empty list.
func (c *Client) ListUserRoles(ctx context.Context, auth0ID string) []Role {
	var roles []Role
	if err := c.do(ctx, "list user roles", http.MethodGet, userPath(auth0ID)+"/roles", nil, &roles); err != nil {
		slog.Error("auth0 user role listing failed",
			"accion", "list_user_roles", "auth0_id", auth0ID, "error", err.Error())
		return nil
	}
	return roles
}

// AssignRole is idempotent: it no-ops when the role is already assigned.
func (c *Client) AssignRole(ctx context.Context, auth0ID, roleID string) error {
	for _, r := range c.ListUserRoles(ctx, auth0ID) {
		if r.ID == roleID {
			return nil
		}
	}
	body := map[string][]string{"roles": {roleID}}
	return c.do(ctx, "assign role", http.MethodPost, userPath(auth0ID)+"/roles", body, nil)
}

// RemoveAllRoles deletes every assigned role in one batch call. Failures
// degrade to false.
func (c *Client) RemoveAllRoles(ctx context.Context, auth0ID string) bool {
	roles := c.ListUserRoles(ctx, auth0ID)
	if len(roles) == 0 {
		return false
	}
	ids := make([]string, len(roles))
	for i, r := range roles {
		ids[i] = r.ID
	}
	body := map[string][]string{"roles": ids}
	if err := c.do(ctx, "remove roles", http.MethodDelete, userPath(auth0ID)+"/roles", body, nil); err != nil {
		slog.Error("auth0 role removal failed",
			"accion", "remove_all_roles", "auth0_id", auth0ID, "error", err.Error())
		return false
	}
	return true
}

// DeleteUser removes the account from Auth0. Machine-client subject ids
// are not deletable users, so they are skipped with a sentinel result.
func (c *Client) DeleteUser(ctx context.Context, auth0ID string) (DeleteResult, error) {
	if strings.Contains(auth0ID, "@clients") {
		slog.Info("skipping auth0 deletion for machine client", "auth0_id", auth0ID)
		return DeleteResult{Deleted: false, Reason: "client_id_not_user"}, nil
	}
	if err := c.do(ctx, "delete user", http.MethodDelete, userPath(auth0ID), nil, nil); err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{Deleted: true}, nil
}
