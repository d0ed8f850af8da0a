package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("refused") })

	healthy := NewHealthController(map[string]Pinger{"database": up, "redis": nil})
	r := gin.New()
	r.GET("/health", healthy.Health)
	r.GET("/ping", healthy.Ping)

	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"database": "up"}, decode[map[string]string](t, w).Data)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "").Code)

	sick := NewHealthController(map[string]Pinger{"database": up, "redis": down})
	r = gin.New()
	r.GET("/health", sick.Health)
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/health", "").Code)
}
