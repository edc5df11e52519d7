package echoServer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"camrental/model"
	jwtutil "camrental/util/jwt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubLoader struct {
	users map[int64]*model.User
}

func (s *stubLoader) ByID(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, context.Canceled // any error reads as "no such user"
}

func newTestServer(loader UserLoader) *echo.Echo {
	e := echo.New()
	g := e.Group("/api")
	g.Use(echojwt.WithConfig(JWTConfig(testSecret)))
	g.Use(Identity(loader))

	g.GET("/whoami", func(c echo.Context) error {
		uid, _ := c.Get("user_id").(int64)
		role, _ := c.Get("role").(string)
		return c.JSON(http.StatusOK, echo.Map{"id": uid, "role": role})
	})
	g.POST("/admin-only", func(c echo.Context) error {
		return c.JSON(http.StatusCreated, echo.Map{"message": "ok"})
	}, RequireAdmin)
	return e
}

func do(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMissingToken(t *testing.T) {
	e := newTestServer(&stubLoader{})
	rec := do(e, http.MethodGet, "/api/whoami", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGarbageToken(t *testing.T) {
	e := newTestServer(&stubLoader{})
	rec := do(e, http.MethodGet, "/api/whoami", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestForgedToken(t *testing.T) {
	e := newTestServer(&stubLoader{users: map[int64]*model.User{7: {ID: 7, Role: model.RoleUser}}})

	tok, err := jwtutil.Issue("other-secret", 7, model.RoleUser, 24)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/api/whoami", tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredToken(t *testing.T) {
	e := newTestServer(&stubLoader{users: map[int64]*model.User{7: {ID: 7, Role: model.RoleUser}}})

	tok, err := jwtutil.Issue(testSecret, 7, model.RoleUser, -1)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/api/whoami", tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeletedUserIsUnauthenticated(t *testing.T) {
	e := newTestServer(&stubLoader{}) // empty store

	tok, err := jwtutil.Issue(testSecret, 7, model.RoleUser, 24)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/api/whoami", tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidTokenResolvesIdentity(t *testing.T) {
	e := newTestServer(&stubLoader{users: map[int64]*model.User{7: {ID: 7, Role: model.RoleUser}}})

	tok, err := jwtutil.Issue(testSecret, 7, model.RoleUser, 24)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/api/whoami", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":7,"role":"user"}`, rec.Body.String())
}

func TestNonAdminForbidden(t *testing.T) {
	e := newTestServer(&stubLoader{users: map[int64]*model.User{7: {ID: 7, Role: model.RoleUser}}})

	tok, err := jwtutil.Issue(testSecret, 7, model.RoleUser, 24)
	require.NoError(t, err)

	rec := do(e, http.MethodPost, "/api/admin-only", tok)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleFromStoreNotClaims(t *testing.T) {
	// Role in the token claims is stale; the store decides.
	e := newTestServer(&stubLoader{users: map[int64]*model.User{9: {ID: 9, Role: model.RoleUser}}})

	tok, err := jwtutil.Issue(testSecret, 9, model.RoleAdmin, 24)
	require.NoError(t, err)

	rec := do(e, http.MethodPost, "/api/admin-only", tok)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminAllowed(t *testing.T) {
	e := newTestServer(&stubLoader{users: map[int64]*model.User{1: {ID: 1, Role: model.RoleAdmin}}})

	tok, err := jwtutil.Issue(testSecret, 1, model.RoleAdmin, 24)
	require.NoError(t, err)

	rec := do(e, http.MethodPost, "/api/admin-only", tok)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestUnauthenticatedBeatsForbidden(t *testing.T) {
	// No token on an admin route: the auth failure short-circuits before
	// the role check, so the caller sees 401, not 403.
	e := newTestServer(&stubLoader{})
	rec := do(e, http.MethodPost, "/api/admin-only", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
