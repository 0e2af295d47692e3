package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "orderflow_backend/internal/http"
	"orderflow_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type testConfig struct{}

func (testConfig) GetHTTPAddr() string        { return ":0" }
func (testConfig) GetCORSAllowAll() bool      { return false }
func (testConfig) GetCORSOrigins() []string   { return []string{"http://localhost:5173"} }
func (testConfig) GetCORSAllowCreds() bool    { return true }
func (testConfig) GetJWTAccessSecret() string { return "secret" }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type echoModule struct{}

func (echoModule) Name() string { return "echo" }

func (echoModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/echo", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	ctx.Protected.GET("/private", func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

func newEngine(health apphttp.HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return New(&apphttp.App{
		Config:  testConfig{},
		Logger:  logger.Nop(),
		Health:  health,
		Modules: []apphttp.Module{echoModule{}},
	})
}

func serve(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouterMountsModules(t *testing.T) {
	engine := newEngine(pinger{})

	assert.Equal(t, http.StatusNoContent, serve(engine, "/api/v1/echo").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, "/api/v1/private").Code)
}

func TestRouterHealthAndReadiness(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(newEngine(pinger{}), "/api/health").Code)
	assert.Equal(t, http.StatusOK, serve(newEngine(pinger{}), "/api/ready").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(newEngine(pinger{err: errors.New("down")}), "/api/ready").Code)
}

func TestRouterSetsRequestID(t *testing.T) {
	rec := serve(newEngine(nil), "/api/health")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
