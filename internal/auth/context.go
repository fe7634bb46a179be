package auth

import (
	"context"
)

// Role is a back-office role carried in the admin token
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// UserContext holds authenticated user information
type UserContext struct {
	Subject     string
	DisplayName string
	Email       string
	Roles       []Role
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if user carries the admin role
func (u *UserContext) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
