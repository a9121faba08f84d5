package common

import (
	"context"
	"strings"
)

type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// CheckCaller compares an id taken from a path or body with the
// authenticated caller. Anonymous requests pass; admins pass.
func CheckCaller(ctx context.Context, suppliedID string) error {
	id, ok := IdentityFromContext(ctx)
	if !ok || id.IsAdmin() {
		return nil
	}
	if id.UserID != suppliedID {
		return ErrPermissionDenied
	}
	return nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. ok is false when the header is absent; err is set when it is
// present but malformed.
func BearerToken(header string) (token string, ok bool, err error) {
	if strings.TrimSpace(header) == "" {
		return "", false, nil
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", true, NewError(KindUnauthenticated, "invalid auth header")
	}
	return parts[1], true, nil
}

// Authenticate resolves an Authorization header into an identity.
// A missing header yields (nil, nil) unless required is set.
func Authenticate(tm *TokenManager, header string, required bool) (*Identity, error) {
	token, present, err := BearerToken(header)
	if err != nil {
		return nil, err
	}
	if !present {
		if required {
			return nil, NewError(KindUnauthenticated, "authorization required")
		}
		return nil, nil
	}
	if !tm.Configured() {
		return nil, NewError(KindUnauthenticated, "token verification is not configured")
	}
	claims, err := tm.ValidToken(token)
	if err != nil {
		return nil, WrapError(KindUnauthenticated, "invalid or expired token", err)
	}
	return &Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
