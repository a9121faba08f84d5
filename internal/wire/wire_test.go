package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillnaav/internal/config"
)

func TestProvideStores_UnknownDriver(t *testing.T) {
	_, err := ProvideStores(&config.Config{Store: config.StoreConfig{Driver: "cassandra"}})
	assert.ErrorContains(t, err, `unknown store driver "cassandra"`)
}

func TestProvideStores_Memory(t *testing.T) {
	stores, err := ProvideStores(&config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}})
	require.NoError(t, err)

	assert.NotNil(t, stores.Notifications)
	assert.NotNil(t, stores.SavedJobs)
	assert.NotNil(t, stores.Offers)
	assert.NotNil(t, stores.Postings)
	assert.NoError(t, stores.Close(context.Background()))
}

func TestInitializeApplication_MemoryStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("EMAIL_ENABLED", "false")
	t.Setenv("AUTH_REQUIRED", "false")

	app, err := InitializeApplication()
	require.NoError(t, err)
	defer app.GRPCServer.Stop()

	assert.Equal(t, config.DriverMemory, app.Config.Store.Driver)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	info := app.GRPCServer.GetServiceInfo()
	assert.Contains(t, info, "skillnaav.v1.LifecycleService")
	assert.Contains(t, info, "grpc.health.v1.Health")
}

func TestProvideTokenManager(t *testing.T) {
	_, err := ProvideTokenManager(&config.Config{Auth: config.AuthConfig{Required: true}})
	assert.ErrorContains(t, err, "JWT_SECRET is required")

	tm, err := ProvideTokenManager(&config.Config{Auth: config.AuthConfig{}})
	require.NoError(t, err)
	assert.False(t, tm.Configured())

	tm, err = ProvideTokenManager(&config.Config{Auth: config.AuthConfig{JWTSecret: "s", Issuer: "skillnaav", Required: true}})
	require.NoError(t, err)
	assert.True(t, tm.Configured())
}

func TestInitializeApplication_RequiredAuthWithoutSecret(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := InitializeApplication()
	assert.Error(t, err)
}
