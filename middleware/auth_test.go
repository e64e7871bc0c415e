package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess-study/middleware"
	"chess-study/utils"
)

func TestMain(m *testing.M) {
	// Config is loaded lazily on first token operation; inject the secret
	// before that happens.
	os.Setenv("SESSION_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func gatedRouter() *gin.Engine {
	r := gin.New()
	gated := r.Group("/")
	gated.Use(middleware.SessionRequired())
	gated.GET("/dashboard", func(ctx *gin.Context) {
		id, _ := middleware.UserID(ctx)
		ctx.String(http.StatusOK, "user %d", id)
	})
	return r
}

func TestSessionRequiredRedirectsWithoutCookie(t *testing.T) {
	r := gatedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "user")
}

func TestSessionRequiredRejectsGarbageToken(t *testing.T) {
	r := gatedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "not-a-token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSessionRequiredAcceptsValidToken(t *testing.T) {
	r := gatedRouter()

	token, err := utils.NewSessionToken(42, "alice", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user 42", w.Body.String())
}

func TestSessionRequiredRejectsRevokedToken(t *testing.T) {
	r := gatedRouter()

	token, err := utils.NewSessionToken(42, "alice", time.Hour)
	require.NoError(t, err)
	claims, err := utils.ParseSessionToken(token)
	require.NoError(t, err)
	utils.RevokeSession(claims.ID, claims.ExpiresAt.Time)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := utils.NewSessionToken(7, "bob", time.Hour)
	require.NoError(t, err)

	claims, err := utils.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.NotEmpty(t, claims.ID)

	// Two tokens for the same user still revoke independently.
	other, err := utils.NewSessionToken(7, "bob", time.Hour)
	require.NoError(t, err)
	otherClaims, err := utils.ParseSessionToken(other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID)
}
