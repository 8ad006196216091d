package server_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/motech/mrs/internal/config"
	"github.com/motech/mrs/internal/server"
	"github.com/motech/mrs/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     "5s",
		WriteTimeout:    "5s",
		ShutdownTimeout: "2s",
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})

	lc := lifecycle.New()
	srv := server.New(cfg, handler, slog.New(slog.DiscardHandler))
	require.NoError(t, srv.Start(lc))

	resp, err := http.Get("http://" + srv.Addr() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	require.NoError(t, lc.Shutdown(3*time.Second))

	_, err = http.Get("http://" + srv.Addr() + "/")
	assert.Error(t, err)
}

func TestServer_StartBindError(t *testing.T) {
	cfg := &config.ServerConfig{Host: "256.0.0.1", Port: 80}
	srv := server.New(cfg, http.NotFoundHandler(), slog.New(slog.DiscardHandler))
	assert.Error(t, srv.Start(lifecycle.New()))
}
