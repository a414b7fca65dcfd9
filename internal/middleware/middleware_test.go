package middleware

import (
	"net/http"
	"testing"

	"checklist-service/internal/testutil"
	"checklist-service/pkg/config"
	"checklist-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func setupActorRouter(auth config.AuthConfig) *echo.Echo {
	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.Use(ActorMiddleware(jwtutil.NewJWTUtil(testutil.TestJWTConfig()), auth))
	e.GET("/whoami", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"actor": ActorFromContext(c)})
	})
	return e
}

func TestRequestIDMiddleware(t *testing.T) {
	e := setupActorRouter(config.AuthConfig{DefaultActor: "system"})

	w := testutil.DoRequest(e, http.MethodGet, "/whoami", nil, "")
	assert.NotEmpty(t, w.Header().Get(echo.HeaderXRequestID))

	other := testutil.DoRequest(e, http.MethodGet, "/whoami", nil, "")
	assert.NotEqual(t, w.Header().Get(echo.HeaderXRequestID), other.Header().Get(echo.HeaderXRequestID))

	req := testutil.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderXRequestID, "upstream-id")
	assert.Equal(t, "upstream-id", testutil.Serve(e, req).Header().Get(echo.HeaderXRequestID))
}

func TestActorMiddleware_DefaultActor(t *testing.T) {
	e := setupActorRouter(config.AuthConfig{DefaultActor: "importer"})

	w := testutil.DoRequest(e, http.MethodGet, "/whoami", nil, "")
	testutil.StatusIs(t, w, http.StatusOK)
	assert.Equal(t, "importer", testutil.ParseResponse(w)["actor"])
}

func TestActorMiddleware_EmptyDefaultFallsBackToSystem(t *testing.T) {
	e := setupActorRouter(config.AuthConfig{})

	w := testutil.DoRequest(e, http.MethodGet, "/whoami", nil, "")
	assert.Equal(t, "system", testutil.ParseResponse(w)["actor"])
}

func TestActorMiddleware_TokenSetsActor(t *testing.T) {
	e := setupActorRouter(config.AuthConfig{DefaultActor: "system"})
	token := testutil.GenerateTestToken(t, "alice@example.com")

	w := testutil.DoRequest(e, http.MethodGet, "/whoami", nil, token)
	testutil.StatusIs(t, w, http.StatusOK)
	assert.Equal(t, "alice@example.com", testutil.ParseResponse(w)["actor"])
}

func TestActorMiddleware_InvalidToken(t *testing.T) {
	e := setupActorRouter(config.AuthConfig{DefaultActor: "system"})

	w := testutil.DoRequest(e, http.MethodGet, "/whoami", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestActorMiddleware_MalformedHeader(t *testing.T) {
	e := setupActorRouter(config.AuthConfig{DefaultActor: "system"})

	req := testutil.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token abc")
	w := testutil.Serve(e, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestActorMiddleware_RequiredRejectsAnonymous(t *testing.T) {
	e := setupActorRouter(config.AuthConfig{Required: true, DefaultActor: "system"})

	w := testutil.DoRequest(e, http.MethodGet, "/whoami", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.DoRequest(e, http.MethodGet, "/whoami", nil, testutil.GenerateTestToken(t, "bob@example.com"))
	testutil.StatusIs(t, w, http.StatusOK)
	assert.Equal(t, "bob@example.com", testutil.ParseResponse(w)["actor"])
}
