package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/junalkadhav/library-management/internal/observability"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

func TestClientSuccessPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"hello":"world"}`))
	}))
	defer server.Close()

	client := NewClient(time.Second, zap.NewNop(), nil)
	resp, err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"hello":"world"}`, string(resp.Body))
}

func TestClientRecordsCallOutcomes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	metrics := observability.NewMetrics()
	client := NewClient(time.Second, zap.NewNop(), metrics)

	_, err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.UpstreamCallCount(server.URL, true))

	server.Close()
	_, err = client.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.Error(t, err)
	assert.Equal(t, int64(1), metrics.UpstreamCallCount(server.URL, false))

	rejecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer rejecting.Close()
	_, err = client.Do(context.Background(), http.MethodGet, rejecting.URL, nil, nil)
	require.Error(t, err)
	assert.Equal(t, int64(1), metrics.UpstreamCallCount(rejecting.URL, false))
}

func TestClientRejectedWithRemoteMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"not authenticated"}`))
	}))
	defer server.Close()

	client := NewClient(time.Second, zap.NewNop(), nil)
	_, err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
	assert.Equal(t, "not authenticated", domainErr.Message)
}

func TestClientRejectedWithEnvelopeMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"not authorized"}}`))
	}))
	defer server.Close()

	client := NewClient(time.Second, zap.NewNop(), nil)
	_, err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
	assert.Equal(t, "not authorized", domainErr.Message)
}

func TestClientRejectedWithoutMessageFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(time.Second, zap.NewNop(), nil)
	_, err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), domainErr.Message)
}

func TestClientUnreachable(t *testing.T) {
	// A server that is immediately closed leaves a refused port behind.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(time.Second, zap.NewNop(), nil)
	_, err := client.Do(context.Background(), http.MethodGet, url, nil, nil)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
	assert.Equal(t, "UPSTREAM_UNREACHABLE", domainErr.Code)
}

func TestClientForwardsHeaders(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer tok")

	client := NewClient(time.Second, zap.NewNop(), nil)
	_, err := client.Do(context.Background(), http.MethodGet, server.URL, header, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", seen)
}

func TestUserClientResolveIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/authorize", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"userId":"user-1","role":"ADMIN"}`))
	}))
	defer server.Close()

	client := NewUserClient(server.URL, NewClient(time.Second, zap.NewNop(), nil))
	identity, err := client.ResolveIdentity(context.Background(), "Bearer tok")
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "ADMIN", string(identity.Role))
}

func TestBookClientFetchByIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book/get-books", r.URL.Path)
		assert.Equal(t, "b1,b2", r.URL.Query().Get("favourites"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"total":1,"books":[{"id":"b1","title":"Dune"}]}`))
	}))
	defer server.Close()

	client := NewBookClient(server.URL, NewClient(time.Second, zap.NewNop(), nil))
	list, err := client.FetchByIDs(context.Background(), "Bearer tok", []string{"b1", "b2"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Books, 1)
	assert.Equal(t, "Dune", list.Books[0].Title)
}
