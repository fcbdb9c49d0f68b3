package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dealtown/config"
	"dealtown/db"
	"dealtown/filter"
	"dealtown/mailer"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.App{
			Env:                       "development",
			Port:                      ":0",
			Timezone:                  filter.DefaultTimezone,
			ShutdownTimeoutSeconds:    1,
			AdminAPIKey:               "key",
			GeolocationTimeoutSeconds: 1,
			ResourcesPath:             "../resources",
			UpstreamTimeoutSeconds:    1,
		},
		Redis:       config.Redis{Address: REDIS_IN_MEMORY},
		Mail:        config.Mail{Provider: "log", AdminEmail: "admin@dealtown.nz"},
		Submissions: config.Submissions{ThrottleLimit: 3, ThrottleWindowSeconds: 600},
		Venues:      config.Venues{RefreshIntervalMinutes: 30},
	}
}

func TestNewContainer_NonProd(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.PostgresDB)
	assert.IsType(t, &mailer.LogMailer{}, c.Mailer)

	n, err := c.VenuesRefresherService.RefreshVenuesData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	c.Router.RegisterRoutes()
	rr := httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/venues/nearby?lat=-36.8443&lng=174.7676&radius=500", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "v-taco")
}

func TestNewContainer_HTTPMailer(t *testing.T) {
	cfg := testConfig()
	cfg.Mail.Provider = "http"
	cfg.Mail.HTTPBaseURL = "http://127.0.0.1:1"
	cfg.Mail.HTTPAPIKey = "k"

	c, err := NewContainer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()
	assert.IsType(t, &mailer.HTTPMailer{}, c.Mailer)
}

func TestNewContainer_UnreachableRedis(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.Address = "127.0.0.1:1"

	_, err := NewContainer(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "failed to connect to redis")
}

func TestNewContainer_BadTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.App.TrustedProxies = []string{"not-an-ip"}

	_, err := NewContainer(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "invalid trusted proxy")
}

func TestNewContainer_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Redis.Address = mr.Addr()

	c, err := NewContainer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()
	assert.IsType(t, &db.GeoRedisClient{}, c.RedisClient)

	_, err = c.VenuesRefresherService.RefreshVenuesData(context.Background())
	require.NoError(t, err)
	assert.True(t, mr.Exists("venues_geo_v1"))
}
