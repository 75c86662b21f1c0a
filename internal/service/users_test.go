package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"news_portal/internal/domain"
	"news_portal/internal/service/mocks"
)

type UserServiceTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	users   *mocks.MockUserStore
	service *UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = mocks.NewMockUserStore(s.ctrl)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.service = NewUserService(s.users, logger)
}

func (s *UserServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestSetAdmin_GrantsOtherUser() {
	ctx := context.Background()
	updated := &domain.User{ID: "other", IsAdmin: true}
	s.users.EXPECT().SetAdmin(ctx, "other", true).Return(updated, nil)

	user, err := s.service.SetAdmin(ctx, "root", "other", true)

	s.NoError(err)
	s.Equal(updated, user)
}

func (s *UserServiceTestSuite) TestSetAdmin_SelfDemotionNeverReachesStore() {
	ctx := context.Background()

	user, err := s.service.SetAdmin(ctx, "root", "root", false)

	s.Nil(user)
	s.ErrorIs(err, domain.ErrSelfDemotion)
}

func (s *UserServiceTestSuite) TestSetAdmin_SelfGrantAllowed() {
	ctx := context.Background()
	s.users.EXPECT().SetAdmin(ctx, "root", true).Return(&domain.User{ID: "root", IsAdmin: true}, nil)

	_, err := s.service.SetAdmin(ctx, "root", "root", true)
	s.NoError(err)
}

func (s *UserServiceTestSuite) TestSetAdmin_UnknownTarget() {
	ctx := context.Background()
	s.users.EXPECT().SetAdmin(ctx, "ghost", true).Return(nil, domain.ErrNotFound)

	_, err := s.service.SetAdmin(ctx, "root", "ghost", true)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *UserServiceTestSuite) TestListUsers() {
	ctx := context.Background()
	s.users.EXPECT().List(ctx).Return([]domain.User{{ID: "a"}, {ID: "b"}}, nil)

	users, err := s.service.ListUsers(ctx)
	s.NoError(err)
	s.Len(users, 2)

	s.users.EXPECT().List(ctx).Return(nil, errors.New("timeout"))
	_, err = s.service.ListUsers(ctx)
	s.Error(err)
}
