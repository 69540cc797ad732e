package dto

type CreateUsuarioRequest struct {
	Email          string  `json:"email"`
	Auth0ID        string  `json:"auth0_id"`
	Rol            string  `json:"rol"`
	NombreCompleto *string `json:"nombre_completo"`
	Nickname       *string `json:"nickname"`
	FirstLogin     bool    `json:"first_login"`
}

// UpdateUsuarioRequest has partial-update semantics: absent fields are
// untouched, explicit nulls clear the field.
type UpdateUsuarioRequest struct {
	Email          OptionalString `json:"email"`
	NombreCompleto OptionalString `json:"nombre_completo"`
	Nickname       OptionalString `json:"nickname"`
	Rol            OptionalString `json:"rol"`
	FirstLogin     *bool          `json:"first_login"`
}

type ChangeRolRequest struct {
	Rol string `json:"rol"`
}

type SyncUserRequest struct {
	Email          string  `json:"email"`
	NombreCompleto *string `json:"nombre_completo"`
	Nickname       *string `json:"nickname"`
}

type SyncUserResponse struct {
	Success         bool        `json:"success"`
	User            interface{} `json:"user"`
	ProfileComplete bool        `json:"profileComplete"`
}

type ProfileStatusResponse struct {
	ProfileComplete bool                 `json:"profileComplete"`
	MissingFields   ProfileMissingFields `json:"missingFields"`
}

type ProfileMissingFields struct {
	NombreCompleto bool `json:"nombre_completo"`
	Nickname       bool `json:"nickname"`
}

type CheckAdminResponse struct {
	IsAdmin bool   `json:"isAdmin"`
	Rol     string `json:"rol"`
}

type RemoveUsuarioResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    interface{} `json:"user"`
}
