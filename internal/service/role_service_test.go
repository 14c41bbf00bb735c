package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

func newRoleFixture() (*RoleService, *fakeRoleRepo) {
	repo := newFakeRoleRepo()
	return NewRoleService(repo, nil, zap.NewNop()), repo
}

func TestRoleCreateRejectsDuplicateName(t *testing.T) {
	svc, _ := newRoleFixture()

	_, err := svc.Create(context.Background(), "Moderator", "moderates")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Moderator", "duplicate")
	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}

func TestRoleCreateRequiresName(t *testing.T) {
	svc, _ := newRoleFixture()

	_, err := svc.Create(context.Background(), "", "no name")

	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
}

func TestRoleFindByName(t *testing.T) {
	svc, _ := newRoleFixture()

	created, err := svc.Create(context.Background(), domain.RoleAdmin, "admin role")
	require.NoError(t, err)

	found, err := svc.FindByName(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.FindByName(context.Background(), "Nothing")
	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestRoleUpdateAndDelete(t *testing.T) {
	svc, _ := newRoleFixture()

	role, err := svc.Create(context.Background(), "Temp", "short lived")
	require.NoError(t, err)

	newName := "Temporary"
	updated, err := svc.Update(context.Background(), role.ID, &newName, nil)
	require.NoError(t, err)
	assert.Equal(t, "Temporary", updated.Name)
	assert.Equal(t, "short lived", updated.Description)

	require.NoError(t, svc.Delete(context.Background(), role.ID))

	err = svc.Delete(context.Background(), role.ID)
	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestRoleSeedIsIdempotent(t *testing.T) {
	svc, repo := newRoleFixture()

	require.NoError(t, svc.Seed(context.Background()))
	require.NoError(t, svc.Seed(context.Background()))

	roles, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 3)

	names := map[string]bool{}
	for _, role := range roles {
		names[role.Name] = true
	}
	assert.True(t, names[domain.RoleCustomer])
	assert.True(t, names[domain.RoleSupportAgent])
	assert.True(t, names[domain.RoleAdmin])
}
