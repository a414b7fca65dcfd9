package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		TrackDBOperation("insert")(time.Now())
		RecordOperation("project", "create")
		RecordConflict("checklist")
		RecordAuth(true)
	})
}

func TestMiddlewareCountsByRoute(t *testing.T) {
	initMetrics("test", prometheus.NewRegistry())

	e := echo.New()
	e.Use(MetricsMiddleware())
	e.GET("/projects/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/abc", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(HttpRequestsTotal.WithLabelValues(http.MethodGet, "/projects/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(StatusCategoryCounter.WithLabelValues("4xx", http.MethodGet, "/projects/:id")))

	RecordConflict("checklist")
	assert.Equal(t, 1.0, testutil.ToFloat64(ConflictsCounter.WithLabelValues("checklist")))
}
