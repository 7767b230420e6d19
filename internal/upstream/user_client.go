package upstream

import (
	"context"
	"net/http"

	"github.com/junalkadhav/library-management/internal/domain"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

// UserClient talks to the user service: identity resolution for the
// delegated authorization path and cascade delivery for book deletions.
type UserClient struct {
	base   string
	client *Client
}

// NewUserClient builds a client rooted at the user service base URL.
func NewUserClient(base string, client *Client) *UserClient {
	return &UserClient{base: base, client: client}
}

type authorizeResponse struct {
	Success bool        `json:"success"`
	UserID  string      `json:"userId"`
	Role    domain.Role `json:"role"`
}

// ResolveIdentity forwards the caller's credential unchanged to the user
// service and adopts the identity it resolves. A rejection from the user
// service (401 on a bad token) propagates with its own status; a transport
// failure surfaces as upstream-unreachable.
func (u *UserClient) ResolveIdentity(ctx context.Context, authorization string) (domain.Identity, error) {
	header := http.Header{}
	header.Set("Authorization", authorization)

	var resolved authorizeResponse
	if err := u.client.DoJSON(ctx, http.MethodGet, u.base+"/user/authorize", header, nil, &resolved); err != nil {
		return domain.Identity{}, err
	}
	if !resolved.Success || resolved.UserID == "" {
		return domain.Identity{}, apperrors.NewUnauthorized("not authenticated")
	}
	return domain.Identity{UserID: resolved.UserID, Role: resolved.Role}, nil
}

type cascadeRequest struct {
	BookID string `json:"bookId"`
}

// CascadeRemove asks the user service to drop every favourite reference to
// the deleted book. The remote operation is idempotent, so duplicate
// deliveries from the retry loop are safe.
func (u *UserClient) CascadeRemove(ctx context.Context, bookID string) error {
	return u.client.DoJSON(ctx, http.MethodPost, u.base+"/user/internal/cascade-remove", nil,
		cascadeRequest{BookID: bookID}, nil)
}
