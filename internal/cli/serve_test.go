package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNewRouter_Health(t *testing.T) {
	app, _ := testApp(t)
	h := NewRouter(app)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_BodyLimit(t *testing.T) {
	app, _ := testApp(t)
	app.Config.MaxUploadBytes = 16
	h := NewRouter(app)

	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(`{"name":"a very long trip name"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	app, _ := testApp(t)
	srv := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           NewRouter(app),
		ReadHeaderTimeout: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv, app.Log) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunServer_ListenError(t *testing.T) {
	app, _ := testApp(t)
	srv := &http.Server{Addr: "not-an-address", ReadHeaderTimeout: time.Second}

	err := runServer(context.Background(), srv, app.Log)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve:")
}
