package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/junalkadhav/library-management/internal/observability"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

func TestRequestLogObservesMappedStatus(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), metrics, 5*time.Second)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("book not found", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The access log and request counter carry the status written by the
	// error envelope, not the pre-mapping default.
	entries := observed.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusNotFound), entries[0].ContextMap()["status"])
	assert.Equal(t, int64(1), metrics.RequestCount("/missing", http.MethodGet, http.StatusNotFound))
	assert.Equal(t, int64(0), metrics.RequestCount("/missing", http.MethodGet, http.StatusOK))
}

func TestRequestLogErrorLevelForServerFailures(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)

	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), observability.NewMetrics(), 5*time.Second)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewInternalError(nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	entries := observed.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Equal(t, int64(http.StatusInternalServerError), entries[0].ContextMap()["status"])
}
