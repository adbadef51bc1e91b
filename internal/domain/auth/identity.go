package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"talentnest/internal/domain/access"
)

// OIDCResolver accepts ID tokens from a hosted identity provider and maps
// them to local users by verified email.
type OIDCResolver struct {
	verifier *oidc.IDTokenVerifier
	users    UserByEmail
}

func NewOIDCResolver(ctx context.Context, issuerURL, clientID string, users UserByEmail) (*OIDCResolver, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	return NewOIDCResolverWithVerifier(provider.Verifier(&oidc.Config{ClientID: clientID}), users), nil
}

func NewOIDCResolverWithVerifier(verifier *oidc.IDTokenVerifier, users UserByEmail) *OIDCResolver {
	return &OIDCResolver{verifier: verifier, users: users}
}

type oidcClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

func (r *OIDCResolver) Resolve(ctx context.Context, rawIDToken string) (access.Actor, error) {
	idToken, err := r.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return access.Actor{}, fmt.Errorf("failed to verify ID token: %w", err)
	}

	var claims oidcClaims
	if err := idToken.Claims(&claims); err != nil {
		return access.Actor{}, fmt.Errorf("failed to parse claims: %w", err)
	}
	if claims.Email == "" || !claims.EmailVerified {
		return access.Actor{}, ErrOIDCEmailMissing
	}

	u, err := r.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		return access.Actor{}, fmt.Errorf("no local user for %s: %w", claims.Email, err)
	}
	if !u.IsActive {
		return access.Actor{}, ErrAccountDisabled
	}
	return u.Actor(), nil
}
