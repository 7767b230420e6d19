package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/junalkadhav/library-management/internal/upstream"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

func newTestFavouriteService() (*FavouriteService, *fakeFavouriteRepo, *fakeBookFetcher) {
	repo := newFakeFavouriteRepo()
	fetcher := &fakeBookFetcher{}
	return NewFavouriteService(repo, fetcher, zap.NewNop()), repo, fetcher
}

func TestListEmptyMakesNoNetworkCall(t *testing.T) {
	svc, _, fetcher := newTestFavouriteService()

	list, err := svc.List(context.Background(), "u1", "Bearer tok", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.Empty(t, list.Books)
	assert.Zero(t, fetcher.calls)
}

func TestListForwardsCredentialAndFiltersToStoredIDs(t *testing.T) {
	svc, _, fetcher := newTestFavouriteService()
	bookID := uuid.NewString()
	fetcher.result = upstream.BookList{Total: 1, Books: []upstream.Book{{ID: bookID, Title: "Dune"}}}

	require.NoError(t, svc.Add(context.Background(), "u1", bookID))

	list, err := svc.List(context.Background(), "u1", "Bearer tok", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, []string{bookID}, fetcher.lastIDs)
	assert.Equal(t, "Bearer tok", fetcher.lastAuth)
}

func TestListPropagatesUpstreamFailure(t *testing.T) {
	svc, _, fetcher := newTestFavouriteService()
	fetcher.err = apperrors.NewUpstreamUnreachable(assert.AnError)

	require.NoError(t, svc.Add(context.Background(), "u1", uuid.NewString()))

	_, err := svc.List(context.Background(), "u1", "Bearer tok", 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	svc, repo, _ := newTestFavouriteService()
	bookID := uuid.NewString()

	require.NoError(t, svc.Add(context.Background(), "u1", bookID))
	require.NoError(t, svc.Remove(context.Background(), "u1", bookID))

	ids, err := repo.ListBookIDs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAddDuplicate(t *testing.T) {
	svc, repo, _ := newTestFavouriteService()
	bookID := uuid.NewString()

	require.NoError(t, svc.Add(context.Background(), "u1", bookID))

	err := svc.Add(context.Background(), "u1", bookID)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "ALREADY_FAVOURITE", domainErr.Code)

	// Exactly one entry remains.
	ids, err := repo.ListBookIDs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{bookID}, ids)
}

func TestAddRejectsMalformedID(t *testing.T) {
	svc, _, _ := newTestFavouriteService()

	err := svc.Add(context.Background(), "u1", "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRemoveAbsent(t *testing.T) {
	svc, _, _ := newTestFavouriteService()

	err := svc.Remove(context.Background(), "u1", uuid.NewString())
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "NOT_FAVOURITE", domainErr.Code)
}

func TestCascadeRemoveIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestFavouriteService()
	bookID := uuid.NewString()
	keptID := uuid.NewString()

	require.NoError(t, svc.Add(context.Background(), "u1", bookID))
	require.NoError(t, svc.Add(context.Background(), "u1", keptID))
	require.NoError(t, svc.Add(context.Background(), "u2", bookID))

	require.NoError(t, svc.CascadeRemove(context.Background(), bookID))

	// Second delivery of the same cascade is a no-op, not an error.
	require.NoError(t, svc.CascadeRemove(context.Background(), bookID))

	u1, _ := repo.ListBookIDs(context.Background(), "u1")
	u2, _ := repo.ListBookIDs(context.Background(), "u2")
	assert.Equal(t, []string{keptID}, u1)
	assert.Empty(t, u2)
}

func TestCascadeRemoveAbsentIDNeverErrors(t *testing.T) {
	svc, _, _ := newTestFavouriteService()
	assert.NoError(t, svc.CascadeRemove(context.Background(), uuid.NewString()))
}
