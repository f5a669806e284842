package mattermost

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewRESTClient()
	c.SetURL(srv.URL)
	return c
}

func TestRESTClient_URLTrimsTrailingSlash(t *testing.T) {
	c := NewRESTClient()
	c.SetURL("https://chat.example.com/")
	require.Equal(t, "https://chat.example.com", c.URL())
}

func TestRESTClient_Ping(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/system/ping", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	}))

	require.NoError(t, c.Ping(context.Background()))
}

func TestRESTClient_PingNotOK(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "UNHEALTHY"})
	}))

	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestRESTClient_LoginCapturesToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/users/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "admin", body["login_id"])
		require.Equal(t, "hunter2", body["password"])

		w.Header().Set("Token", "session-token-123")
		_ = json.NewEncoder(w).Encode(&User{ID: "u1", Username: "admin", Roles: "system_admin system_user"})
	}))

	user, err := c.Login(context.Background(), "admin", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "session-token-123", c.Token())
}

func TestRESTClient_LoginFailureDecodesAppError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(&AppError{
			ID:      "api.user.login.invalid_user_password",
			Message: "Login failed because of invalid password",
		})
	}))

	_, err := c.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "api.user.login.invalid_user_password", appErr.ID)
	require.Contains(t, err.Error(), "invalid_user_password")
	require.Equal(t, "", c.Token())
}

func TestRESTClient_BearerTokenSent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_ = json.NewEncoder(w).Encode(&User{ID: "u1"})
	}))
	c.SetToken("tok-1")

	me, err := c.GetMe(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", me.ID)
}

func TestRESTClient_NonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))

	err := c.Ping(context.Background())
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusBadGateway, appErr.StatusCode)
	require.NotEmpty(t, appErr.Message)
}

func TestRESTClient_SearchUsers(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/users/search", r.URL.Path)

		var search UserSearch
		require.NoError(t, json.NewDecoder(r.Body).Decode(&search))
		require.Equal(t, "bob", search.Term)
		require.True(t, search.AllowInactive)

		_ = json.NewEncoder(w).Encode([]*User{{ID: "u1", Username: "bob"}})
	}))

	users, err := c.SearchUsers(context.Background(), &UserSearch{Term: "bob", AllowInactive: true, Limit: 20})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "bob", users[0].Username)
}

func TestRESTClient_GetProfilesPagination(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/users", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "20", r.URL.Query().Get("per_page"))
		_ = json.NewEncoder(w).Encode([]*User{})
	}))

	_, err := c.GetProfiles(context.Background(), 2, 20)
	require.NoError(t, err)
}

func TestRESTClient_GetProfilesByIds(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/users/ids", r.URL.Path)

		var ids []string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ids))
		require.Equal(t, []string{"u1", "u2"}, ids)

		_ = json.NewEncoder(w).Encode([]*User{{ID: "u1"}, {ID: "u2"}})
	}))

	users, err := c.GetProfilesByIds(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestRESTClient_GetTeamsAndRoles(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v4/teams":
			_ = json.NewEncoder(w).Encode([]*Team{{ID: "t1", Name: "eng", DisplayName: "Engineering"}})
		case "/api/v4/roles/names":
			var names []string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&names))
			require.Contains(t, names, "system_admin")
			_ = json.NewEncoder(w).Encode([]*Role{{ID: "r1", Name: "system_admin"}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	ctx := context.Background()

	teams, err := c.GetTeams(ctx, 0, 60)
	require.NoError(t, err)
	require.Len(t, teams, 1)

	roles, err := c.GetRolesByNames(ctx, []string{"system_admin", "system_user"})
	require.NoError(t, err)
	require.Len(t, roles, 1)
}

func TestRESTClient_UpdateUserActive(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/users/u1/active", r.URL.Path)
		require.Equal(t, http.MethodPut, r.Method)

		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.False(t, body["active"])

		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))

	require.NoError(t, c.UpdateUserActive(context.Background(), "u1", false))
}

func TestRESTClient_ConcurrentURLAndRequests(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	}))
	base := c.URL()
	ctx := context.Background()

	// A background watcher pings while the interactive path rewrites the
	// URL and token. Must be race-free.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.SetURL(base + "/")
				c.SetToken("tok-1")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = c.Ping(ctx)
				_ = c.URL()
				_ = c.Token()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, base, c.URL())
}

func TestRESTClient_TransportErrorIsNotAppError(t *testing.T) {
	c := NewRESTClient()
	// Nothing listens here; the request must fail at the transport level.
	c.SetURL("http://127.0.0.1:1")

	err := c.Ping(context.Background())
	require.Error(t, err)

	var appErr *AppError
	require.False(t, errors.As(err, &appErr))
}
