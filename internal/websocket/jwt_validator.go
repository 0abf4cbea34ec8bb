package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrWorkspaceNotFound = errors.New("workspace not found")
)

// WorkspaceLookup maps an Auth0 subject to its workspace, provisioning one
// on first contact
type WorkspaceLookup interface {
	GetWorkspaceByAuth0ID(ctx context.Context, auth0ID string) (workspaceID int32, err error)
}

// TokenVerifier checks a raw JWT; *validator.Validator satisfies it
type TokenVerifier interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// CustomClaims is empty: sockets only need the subject
type CustomClaims struct{}

func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// Auth0JWTValidator authenticates socket upgrades. Browsers cannot attach an
// Authorization header to the upgrade, so the token arrives on the URL.
type Auth0JWTValidator struct {
	validator       TokenVerifier
	workspaceLookup WorkspaceLookup
}

// NewAuth0JWTValidator verifies RS256 tokens against the tenant's JWKS,
// refreshed every five minutes
func NewAuth0JWTValidator(domain, audience string, workspaceLookup WorkspaceLookup) (*Auth0JWTValidator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid auth0 domain %q: %w", domain, err)
	}

	keys := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	verifier, err := validator.New(
		keys.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims { return &CustomClaims{} }),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build socket token validator: %w", err)
	}
	return NewJWTValidator(verifier, workspaceLookup), nil
}

// NewJWTValidator pairs an existing verifier with a workspace lookup
func NewJWTValidator(verifier TokenVerifier, workspaceLookup WorkspaceLookup) *Auth0JWTValidator {
	return &Auth0JWTValidator{validator: verifier, workspaceLookup: workspaceLookup}
}

// ValidateToken returns the workspace the token's subject owns. Bad or
// subject-less tokens give ErrInvalidToken, failed lookups ErrWorkspaceNotFound.
func (v *Auth0JWTValidator) ValidateToken(ctx context.Context, token string) (int32, error) {
	raw, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := raw.(*validator.ValidatedClaims)
	if !ok || claims.RegisteredClaims.Subject == "" {
		return 0, ErrInvalidToken
	}

	workspaceID, err := v.workspaceLookup.GetWorkspaceByAuth0ID(ctx, claims.RegisteredClaims.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWorkspaceNotFound, err)
	}
	return workspaceID, nil
}
