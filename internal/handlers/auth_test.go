package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/snake_catalogue/internal/service"
	"github.com/Skotchmaster/snake_catalogue/internal/transport"
)

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.jsonRequest(http.MethodPost, "/users", map[string]string{"username": "admin", "password": "adminpassword"})
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var user transport.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "admin", user.Username)
	assert.NotZero(t, user.ID)
	assert.False(t, user.Disabled)
	assert.NotContains(t, rec.Body.String(), "adminpassword")

	c, rec = env.formRequest("/token", url.Values{"username": {"admin"}, "password": {"adminpassword"}})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var tok transport.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)

	id, err := env.AuthSvc.Resolve(context.Background(), tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", id.Username)
}

func TestAuthHandler_Login_JSON(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.AuthSvc.Register(context.Background(), "alice", "pw")
	require.NoError(t, err)

	c, rec := env.jsonRequest(http.MethodPost, "/token", map[string]string{"username": "alice", "password": "pw"})
	require.NoError(t, env.Auth.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestAuthHandler_Login_FailuresLookTheSame(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.AuthSvc.Register(context.Background(), "alice", "rightpass")
	require.NoError(t, err)

	c1, rec1 := env.formRequest("/token", url.Values{"username": {"alice"}, "password": {"wrongpass"}})
	err1 := env.Auth.Login(c1)
	c2, rec2 := env.formRequest("/token", url.Values{"username": {"nonexistent_user"}, "password": {"anything"}})
	err2 := env.Auth.Login(c2)

	he1 := requireHTTPError(t, err1, http.StatusUnauthorized)
	he2 := requireHTTPError(t, err2, http.StatusUnauthorized)
	assert.Equal(t, he1.Message, he2.Message)
	assert.Equal(t, "Bearer", rec1.Header().Get(echo.HeaderWWWAuthenticate))
	assert.Equal(t, "Bearer", rec2.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	c, _ := env.formRequest("/token", url.Values{"username": {"alice"}})
	requireHTTPError(t, env.Auth.Login(c), http.StatusBadRequest)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]string{"username": "bob", "password": "pw"}

	c, _ := env.jsonRequest(http.MethodPost, "/users", body)
	require.NoError(t, env.Auth.Register(c))

	c, _ = env.jsonRequest(http.MethodPost, "/users", body)
	he := requireHTTPError(t, env.Auth.Register(c), http.StatusBadRequest)
	assert.Equal(t, "Username already registered", he.Message)
}

func TestAuthHandler_Register_Invalid(t *testing.T) {
	env := newTestEnv(t)

	c, _ := env.jsonRequest(http.MethodPost, "/users", map[string]string{"username": "bob"})
	requireHTTPError(t, env.Auth.Register(c), http.StatusBadRequest)
}

func TestAuthHandler_Me(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.jsonRequest(http.MethodGet, "/users/me", nil)
	c.Set("identity", &service.Identity{ID: 3, Username: "carol", Active: true})
	require.NoError(t, env.Auth.Me(c))
	assert.JSONEq(t, `{"id":3,"username":"carol","disabled":false}`, rec.Body.String())

	c, rec = env.jsonRequest(http.MethodGet, "/users/me", nil)
	requireHTTPError(t, env.Auth.Me(c), http.StatusUnauthorized)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}
