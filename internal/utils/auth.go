package utils

import "context"

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	UserNameKey contextKey = "name"
)

// Identity describes the caller of a request. The zero value is an
// anonymous caller.
type Identity struct {
	UserID        int64
	Username      string
	Name          string
	Authenticated bool
}

// DisplayName prefers the full name and falls back to the username.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Username
}

// SetUserContext sets user info into context (called by middleware)
func SetUserContext(ctx context.Context, id int64, username, name string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UsernameKey, username)
	ctx = context.WithValue(ctx, UserNameKey, name)
	return ctx
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok && id > 0
}

func GetIdentity(ctx context.Context) Identity {
	id, ok := GetUserIDFromContext(ctx)
	if !ok {
		return Identity{}
	}
	username, _ := ctx.Value(UsernameKey).(string)
	name, _ := ctx.Value(UserNameKey).(string)
	return Identity{
		UserID:        id,
		Username:      username,
		Name:          name,
		Authenticated: true,
	}
}
