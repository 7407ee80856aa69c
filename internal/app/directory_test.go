package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/employee-directory/internal/config"
	"github.com/samvad-hq/employee-directory/pkg/employeeapi"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		AppName:         "test",
		APIBaseURL:      baseURL,
		RequestTimeout:  2 * time.Second,
		NotificationTTL: 50 * time.Millisecond,
		RenderFormat:    "text",
	}
}

func TestDirectoryRunRendersEmployees(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+employeeapi.EmployeesPath, r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"ok","employees":[{"name":"Alice","profile":"Engineer"},{"name":"Bob","profile":"Designer"}]}`))
	}))
	defer srv.Close()

	var out, notices bytes.Buffer
	reg := prometheus.NewRegistry()
	d, err := NewDirectory(testConfig(srv.URL), nil, Options{Out: &out, Notices: &notices, Registerer: reg})
	require.NoError(t, err)

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, "Employees (2)\n1. Alice (Engineer)\n2. Bob (Designer)\n", out.String())
	assert.Empty(t, notices.String())
	assert.Equal(t, "Employees (2)\n1. Alice (Engineer)\n2. Bob (Designer)", d.Text())
	assert.InDelta(t, 2, testutil.ToFloat64(d.metrics.EmployeesVisible), 0)
}

func TestDirectoryRunReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var out, notices bytes.Buffer
	cfg := testConfig(srv.URL)
	d, err := NewDirectory(cfg, nil, Options{Out: &out, Notices: &notices})
	require.NoError(t, err)

	start := time.Now()
	err = d.Run(context.Background())
	assert.GreaterOrEqual(t, time.Since(start), cfg.NotificationTTL)
	require.Error(t, err)
	assert.ErrorIs(t, err, employeeapi.ErrApplication)
	assert.Empty(t, out.String())
	assert.Equal(t, "[notice] Error: 503 Service Unavailable\n", notices.String())
}

func TestDirectoryRunStopsOnCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { <-release }))
	defer srv.Close()
	defer close(release)

	var out bytes.Buffer
	d, err := NewDirectory(testConfig(srv.URL), nil, Options{Out: &out, Notices: &out})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, d.Run(ctx))
	assert.Empty(t, out.String())
}

func TestNewDirectoryValidates(t *testing.T) {
	_, err := NewDirectory(nil, nil, Options{})
	assert.Error(t, err)

	cfg := testConfig("https://example.com")
	cfg.RenderFormat = "html"
	_, err = NewDirectory(cfg, nil, Options{})
	assert.Error(t, err)
}
