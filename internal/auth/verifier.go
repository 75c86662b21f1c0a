package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the identity provider asserts about the caller.
type Identity struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// Verifier resolves a session token into an Identity. Any failure means the
// session is not resolvable.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// SessionClaims is the token payload issued by the identity provider.
type SessionClaims struct {
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	jwt.RegisteredClaims
}

type tokenParser struct {
	keyFunc jwt.Keyfunc
	options []jwt.ParserOption
}

func newTokenParser(keyFunc jwt.Keyfunc, methods []string, issuer, audience string) tokenParser {
	options := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		options = append(options, jwt.WithAudience(audience))
	}
	return tokenParser{keyFunc: keyFunc, options: options}
}

func (p tokenParser) parse(tokenString string) (*Identity, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, p.keyFunc, p.options...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return &Identity{
		Subject:         claims.Subject,
		Email:           claims.Email,
		FirstName:       claims.FirstName,
		LastName:        claims.LastName,
		ProfileImageURL: claims.ProfileImageURL,
	}, nil
}

// HMACVerifier checks tokens signed with a shared secret.
type HMACVerifier struct {
	parser tokenParser
}

func NewHMACVerifier(secret []byte, issuer, audience string) *HMACVerifier {
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}
	return &HMACVerifier{
		parser: newTokenParser(keyFunc, []string{"HS256", "HS384", "HS512"}, issuer, audience),
	}
}

func (v *HMACVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	return v.parser.parse(token)
}

// JWKSVerifier checks provider-signed tokens against a remote key set that
// is refreshed in the background.
type JWKSVerifier struct {
	jwks   *keyfunc.JWKS
	parser tokenParser
}

func NewJWKSVerifier(ctx context.Context, jwksURL, issuer, audience string, logger *slog.Logger) (*JWKSVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Error("jwks refresh failed", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}

	methods := []string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512"}
	return &JWKSVerifier{
		jwks:   jwks,
		parser: newTokenParser(jwks.Keyfunc, methods, issuer, audience),
	}, nil
}

func (v *JWKSVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	return v.parser.parse(token)
}

func (v *JWKSVerifier) Close() {
	v.jwks.EndBackground()
}
