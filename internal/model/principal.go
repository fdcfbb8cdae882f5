package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) CanRead() bool {
	return p.Role == RoleAdmin || p.Role == RoleViewer
}

func (p Principal) CanEdit() bool {
	return p.IsAdmin()
}
