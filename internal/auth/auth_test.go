package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"news_portal/internal/domain"
	"news_portal/internal/storage/memory"
)

var testSecret = []byte("test-secret")

func signToken(secret []byte, claims SessionClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		panic(err)
	}
	return signed
}

func validClaims(subject string) SessionClaims {
	return SessionClaims{
		Email:     subject + "@example.com",
		FirstName: "Ada",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "identity",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

type VerifierTestSuite struct {
	suite.Suite
	verifier *HMACVerifier
	ctx      context.Context
}

func (s *VerifierTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.verifier = NewHMACVerifier(testSecret, "identity", "")
}

func TestVerifierTestSuite(t *testing.T) {
	suite.Run(t, new(VerifierTestSuite))
}

func (s *VerifierTestSuite) TestVerify_Valid() {
	identity, err := s.verifier.Verify(s.ctx, signToken(testSecret, validClaims("u1")))

	s.Require().NoError(err)
	s.Equal("u1", identity.Subject)
	s.Equal("u1@example.com", identity.Email)
	s.Equal("Ada", identity.FirstName)
	s.Empty(identity.LastName)
}

func (s *VerifierTestSuite) TestVerify_WrongSecret() {
	_, err := s.verifier.Verify(s.ctx, signToken([]byte("other"), validClaims("u1")))
	s.Error(err)
}

func (s *VerifierTestSuite) TestVerify_Expired() {
	claims := validClaims("u1")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	_, err := s.verifier.Verify(s.ctx, signToken(testSecret, claims))
	s.Error(err)
}

func (s *VerifierTestSuite) TestVerify_MissingExpiry() {
	claims := validClaims("u1")
	claims.ExpiresAt = nil

	_, err := s.verifier.Verify(s.ctx, signToken(testSecret, claims))
	s.Error(err)
}

func (s *VerifierTestSuite) TestVerify_WrongIssuer() {
	claims := validClaims("u1")
	claims.Issuer = "someone-else"

	_, err := s.verifier.Verify(s.ctx, signToken(testSecret, claims))
	s.Error(err)
}

func (s *VerifierTestSuite) TestVerify_MissingSubject() {
	_, err := s.verifier.Verify(s.ctx, signToken(testSecret, validClaims("")))
	s.Error(err)
	s.Contains(err.Error(), "subject")
}

func (s *VerifierTestSuite) TestVerify_UnsignedToken() {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims("u1"))
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.Require().NoError(err)

	_, err = s.verifier.Verify(s.ctx, unsigned)
	s.Error(err)
}

func (s *VerifierTestSuite) TestVerify_Garbage() {
	_, err := s.verifier.Verify(s.ctx, "not-a-token")
	s.Error(err)
}

type GateTestSuite struct {
	suite.Suite
	ctx   context.Context
	db    *memory.DB
	users *memory.UserStore
	gate  *Gate
}

func (s *GateTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = memory.New()
	s.users = s.db.Users()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.gate = NewGate(NewHMACVerifier(testSecret, "", ""), s.users, logger)
}

func TestGateTestSuite(t *testing.T) {
	suite.Run(t, new(GateTestSuite))
}

func (s *GateTestSuite) TestResolve_EmptyToken() {
	_, err := s.gate.Resolve(s.ctx, "")
	s.ErrorIs(err, domain.ErrUnauthenticated)
}

func (s *GateTestSuite) TestResolve_InvalidToken() {
	_, err := s.gate.Resolve(s.ctx, signToken([]byte("wrong"), validClaims("u1")))
	s.ErrorIs(err, domain.ErrUnauthenticated)
}

func (s *GateTestSuite) TestResolve_ProvisionsOnFirstSight() {
	user, err := s.gate.Resolve(s.ctx, signToken(testSecret, validClaims("new-user")))

	s.Require().NoError(err)
	s.Equal("new-user", user.ID)
	s.Require().NotNil(user.Email)
	s.Equal("new-user@example.com", *user.Email)
	s.Nil(user.LastName)
	s.False(user.IsAdmin)
	s.False(user.IsSuperAdmin)

	stored, err := s.users.Get(s.ctx, "new-user")
	s.Require().NoError(err)
	s.NotNil(stored)
}

func (s *GateTestSuite) TestResolve_ReadsCurrentRoleEveryTime() {
	_, err := s.users.Upsert(s.ctx, domain.UserUpsert{ID: "editor", IsAdmin: domain.Some(true)})
	s.Require().NoError(err)
	token := signToken(testSecret, validClaims("editor"))

	user, err := s.gate.Resolve(s.ctx, token)
	s.Require().NoError(err)
	s.True(user.IsAdmin)
	s.Nil(user.Email, "existing rows are not overwritten from claims")

	_, err = s.users.SetAdmin(s.ctx, "editor", false)
	s.Require().NoError(err)

	user, err = s.gate.Resolve(s.ctx, token)
	s.Require().NoError(err)
	s.False(user.IsAdmin)
	s.ErrorIs(Authorize(user, RoleAdmin), domain.ErrForbiddenNotAdmin)
}

func (s *GateTestSuite) TestAuthorize() {
	anyone := &domain.User{ID: "a"}
	admin := &domain.User{ID: "b", IsAdmin: true}
	super := &domain.User{ID: "c", IsSuperAdmin: true}

	cases := []struct {
		user *domain.User
		role Role
		want error
	}{
		{nil, RoleAuthenticated, domain.ErrUnauthenticated},
		{anyone, RoleAuthenticated, nil},
		{anyone, RoleAdmin, domain.ErrForbiddenNotAdmin},
		{admin, RoleAdmin, nil},
		{admin, RoleSuperAdmin, domain.ErrForbiddenNotSuperAdmin},
		{super, RoleSuperAdmin, nil},
		{super, RoleAdmin, domain.ErrForbiddenNotAdmin},
	}
	for _, tc := range cases {
		err := Authorize(tc.user, tc.role)
		if tc.want == nil {
			s.NoError(err, "role %s", tc.role)
			continue
		}
		s.True(errors.Is(err, tc.want), "role %s: got %v", tc.role, err)
	}
}

func (s *GateTestSuite) TestTokenFromRequest() {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s.Empty(TokenFromRequest(r, "session"))

	r.AddCookie(&http.Cookie{Name: "session", Value: "from-cookie"})
	s.Equal("from-cookie", TokenFromRequest(r, "session"))
	s.Empty(TokenFromRequest(r, ""))

	r.Header.Set("Authorization", "Bearer from-header")
	s.Equal("from-header", TokenFromRequest(r, "session"))

	r.Header.Set("Authorization", "Basic abc")
	s.Equal("from-cookie", TokenFromRequest(r, "session"))
}
