package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junalkadhav/library-management/internal/domain"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

func TestAuthorizeRole(t *testing.T) {
	cases := []struct {
		name    string
		role    domain.Role
		allowed []domain.Role
		wantErr bool
	}{
		{"member of set", domain.RoleAdmin, []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin}, false},
		{"single member", domain.RoleUser, []domain.Role{domain.RoleUser}, false},
		{"user against admin-only", domain.RoleUser, []domain.Role{domain.RoleAdmin}, true},
		{"empty allow-set denies everyone", domain.RoleSuperAdmin, nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := AuthorizeRole(tc.role, tc.allowed)
			if tc.wantErr {
				require.Error(t, err)
				domainErr := apperrors.ToDomainError(err)
				assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPolicyAllowedUnknownOperation(t *testing.T) {
	policy := Policy{"get-books": {domain.RoleUser}}

	assert.Empty(t, policy.Allowed("delete-book"))
	assert.Error(t, AuthorizeRole(domain.RoleSuperAdmin, policy.Allowed("delete-book")))
}
