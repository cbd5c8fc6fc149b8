package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"catalog-service/pkg/config"
	"catalog-service/pkg/jwtutil"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "middleware_test"},
	})
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})
	os.Exit(m.Run())
}

func authedHandler(t *testing.T) echo.HandlerFunc {
	t.Helper()
	return AuthMiddleware(func(c echo.Context) error {
		actor, ok := ActorFromContext(c)
		require.True(t, ok, "actor must be set after auth")
		return c.JSON(http.StatusOK, echo.Map{"user_id": actor.UserID})
	})
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	token, err := jwtutil.GenerateToken(42, "a@b.c", []string{"catalog.can_cancel_publication"})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	err = authedHandler(t)(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareCookie(t *testing.T) {
	token, err := jwtutil.GenerateToken(7, "a@b.c", nil)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()

	err = authedHandler(t)(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	testCases := []struct {
		name    string
		prepare func(req *http.Request)
	}{
		{
			name:    "No token at all",
			prepare: func(req *http.Request) {},
		},
		{
			name: "Malformed header",
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Token abc")
			},
		},
		{
			name: "Garbage token",
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer nonsense")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.prepare(req)
			rec := httptest.NewRecorder()

			handler := AuthMiddleware(func(c echo.Context) error {
				t.Fatal("handler must not run without valid auth")
				return nil
			})
			err := handler(e.NewContext(req, rec))
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
