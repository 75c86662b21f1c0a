package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"news_portal/internal/domain"
)

// Role is the minimum privilege an operation requires.
type Role int

const (
	RoleAuthenticated Role = iota
	RoleAdmin
	RoleSuperAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleSuperAdmin:
		return "super_admin"
	default:
		return "authenticated"
	}
}

type UserStore interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, in domain.UserUpsert) (*domain.User, error)
}

// Gate turns a session token into the caller's current User record. Nothing
// is cached: roles are read from the store on every call, so a revoked admin
// loses access on their next request.
type Gate struct {
	verifier Verifier
	users    UserStore
	logger   *slog.Logger
}

func NewGate(verifier Verifier, users UserStore, logger *slog.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		users:    users,
		logger:   logger.With("component", "auth"),
	}
}

// Resolve returns domain.ErrUnauthenticated for a missing or unverifiable
// token. Store failures are returned wrapped.
func (g *Gate) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	identity, err := g.verifier.Verify(ctx, token)
	if err != nil {
		g.logger.Debug("session token rejected", "error", err)
		return nil, domain.ErrUnauthenticated
	}

	user, err := g.users.Get(ctx, identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", identity.Subject, err)
	}
	if user != nil {
		return user, nil
	}

	user, err = g.users.Upsert(ctx, provisioning(identity))
	if err != nil {
		return nil, fmt.Errorf("provision user %s: %w", identity.Subject, err)
	}
	g.logger.Info("user provisioned", "user_id", user.ID)
	return user, nil
}

// provisioning builds the first-sight record from identity claims. Role
// flags keep their column defaults.
func provisioning(identity *Identity) domain.UserUpsert {
	in := domain.UserUpsert{ID: identity.Subject}
	if identity.Email != "" {
		in.Email = domain.Some(identity.Email)
	}
	if identity.FirstName != "" {
		in.FirstName = domain.Some(identity.FirstName)
	}
	if identity.LastName != "" {
		in.LastName = domain.Some(identity.LastName)
	}
	if identity.ProfileImageURL != "" {
		in.ProfileImageURL = domain.Some(identity.ProfileImageURL)
	}
	return in
}

// Authorize checks a resolved user against the required role.
func Authorize(user *domain.User, role Role) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	switch role {
	case RoleAdmin:
		if !user.IsAdmin {
			return domain.ErrForbiddenNotAdmin
		}
	case RoleSuperAdmin:
		if !user.IsSuperAdmin {
			return domain.ErrForbiddenNotSuperAdmin
		}
	}
	return nil
}

// TokenFromRequest reads a bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if cookieName == "" {
		return ""
	}
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
