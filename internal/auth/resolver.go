package auth

import (
	"context"
	"strings"

	"github.com/junalkadhav/library-management/internal/domain"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

// IdentityResolver turns an incoming Authorization header into the caller's
// identity, or fails. The user service resolves locally against its own token
// secret; the book service delegates resolution over the network. Both sides
// share this one contract.
type IdentityResolver interface {
	Resolve(ctx context.Context, authorization string) (domain.Identity, error)
}

// LocalResolver verifies tokens in-process. Used by the service that owns the
// signing secret.
type LocalResolver struct {
	tokens *TokenManager
}

// NewLocalResolver builds a resolver backed by the given token manager.
func NewLocalResolver(tokens *TokenManager) *LocalResolver {
	return &LocalResolver{tokens: tokens}
}

// Resolve parses the bearer credential and decodes its claims. Signature
// failures and expired tokens both come back as 401, never 500.
func (r *LocalResolver) Resolve(_ context.Context, authorization string) (domain.Identity, error) {
	token, err := bearerToken(authorization)
	if err != nil {
		return domain.Identity{}, err
	}
	identity, err := r.tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, apperrors.NewUnauthorized("invalid token")
	}
	return identity, nil
}

// RemoteVerifier resolves a forwarded credential against the identity-owning
// service. Satisfied by upstream.UserClient.
type RemoteVerifier interface {
	ResolveIdentity(ctx context.Context, authorization string) (domain.Identity, error)
}

// DelegatedResolver forwards the presented credential unchanged to the user
// service and adopts the identity it resolves. Used by any service without an
// identity store of its own.
type DelegatedResolver struct {
	verifier RemoteVerifier
}

// NewDelegatedResolver builds a resolver that calls the identity authority.
func NewDelegatedResolver(verifier RemoteVerifier) *DelegatedResolver {
	return &DelegatedResolver{verifier: verifier}
}

// Resolve rejects an absent credential before spending a network hop, then
// delegates verification. Upstream failures propagate as normalized by the
// call client.
func (r *DelegatedResolver) Resolve(ctx context.Context, authorization string) (domain.Identity, error) {
	if strings.TrimSpace(authorization) == "" {
		return domain.Identity{}, apperrors.NewUnauthorized("not authenticated")
	}
	return r.verifier.ResolveIdentity(ctx, authorization)
}

func bearerToken(authorization string) (string, error) {
	if authorization == "" {
		return "", apperrors.NewUnauthorized("not authenticated")
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}
