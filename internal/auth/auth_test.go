package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensRoundTrip(t *testing.T) {
	tk := &Tokens{Secret: []byte("secret")}
	s, err := tk.Issue("u1", RoleAdmin)
	require.NoError(t, err)

	id, err := tk.Verify(s)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, RoleAdmin, id.Role)
	assert.True(t, id.IsAdmin())
}

func TestTokensRejects(t *testing.T) {
	tk := &Tokens{Secret: []byte("secret")}

	t.Run("wrong secret", func(t *testing.T) {
		s, err := (&Tokens{Secret: []byte("other")}).Issue("u1", RoleUser)
		require.NoError(t, err)
		_, err = tk.Verify(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tk.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		short := &Tokens{Secret: []byte("secret"), TTL: -time.Minute}
		s, err := short.Issue("u1", RoleUser)
		require.NoError(t, err)
		_, err = tk.Verify(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	r, ok = ParseRole("user")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, r)

	for _, s := range []string{"", "root", "Admin", "superuser"} {
		_, ok := ParseRole(s)
		assert.False(t, ok, s)
	}
}

func echoIdentity(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(id.UserID + ":" + string(id.Role)))
	})
}

func TestMiddleware(t *testing.T) {
	tk := &Tokens{Secret: []byte("secret")}
	h := Middleware(tk)(echoIdentity(t))

	t.Run("no token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"not authenticated"}`, rec.Body.String())
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		s, err := tk.Issue("u7", RoleUser)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+s)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u7:user", rec.Body.String())
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := RequireAdmin(next)

	t.Run("no identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithIdentity(req.Context(), Identity{UserID: "u1", Role: RoleUser}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithIdentity(req.Context(), Identity{UserID: "a1", Role: RoleAdmin}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
