package auth

import "context"

// Role is a closed enumeration; any other string is rejected at the
// token boundary so handlers never compare raw role strings.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type Identity struct {
	UserID string
	Role   Role
}

func (id Identity) IsAdmin() bool { return id.Role == RoleAdmin }

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
