package service

import (
	"context"
	"fmt"
	"log/slog"

	"news_portal/internal/domain"
)

type UserService struct {
	users  UserStore
	logger *slog.Logger
}

func NewUserService(users UserStore, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger.With("component", "users"),
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetAdmin changes the target's admin flag on behalf of actorID. An actor
// revoking their own flag is rejected before the store is touched; granting
// it to themselves is allowed. The super-admin flag is never changed here.
func (s *UserService) SetAdmin(ctx context.Context, actorID, targetID string, isAdmin bool) (*domain.User, error) {
	if actorID == targetID && !isAdmin {
		return nil, domain.ErrSelfDemotion
	}

	user, err := s.users.SetAdmin(ctx, targetID, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("set admin for %s: %w", targetID, err)
	}

	s.logger.Info("admin flag changed",
		"actor", actorID,
		"target", targetID,
		"is_admin", isAdmin,
	)
	return user, nil
}
