package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glorpus-work/podaac-subset/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLoginServer mimics the Earthdata Login dance: /data redirects to /login when
// no session cookie is present; /login checks Basic credentials, sets the cookie and
// redirects back.
func newLoginServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("urs_session"); err != nil || c.Value != "ok" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		_, _ = io.WriteString(w, "granule bytes")
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "urs_session", Value: "ok", Path: "/"})
		http.Redirect(w, r, "/data", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(Options{APITimeout: time.Second, DownloadTimeout: time.Minute})
	require.NoError(t, err)

	assert.Equal(t, time.Second, s.API.Timeout)
	assert.Equal(t, time.Minute, s.Download.Timeout)
	assert.Same(t, s.API.Jar, s.Download.Jar)
	assert.Same(t, s.API.Transport, s.Download.Transport)
}

func TestSession_LoginRedirectWithCookies(t *testing.T) {
	srv := newLoginServer(t)

	cred := auth.Credential{Host: "127.0.0.1", Login: "alice", Password: "s3cret"}
	s, err := NewSession(Options{APITimeout: 5 * time.Second, Auth: cred.Basic()})
	require.NoError(t, err)

	resp, err := s.Download.Get(srv.URL + "/data")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "granule bytes", string(body))

	// second request reuses the cookie without logging in again
	resp2, err := s.API.Get(srv.URL + "/data")
	require.NoError(t, err)
	_ = resp2.Body.Close()
	assert.Equal(t, "/data", resp2.Request.URL.Path)
}

func TestSession_CredentialsScopedToHost(t *testing.T) {
	srv := newLoginServer(t)

	cred := auth.Credential{Host: "urs.earthdata.nasa.gov", Login: "alice", Password: "s3cret"}
	s, err := NewSession(Options{APITimeout: 5 * time.Second, Auth: cred.Basic()})
	require.NoError(t, err)

	resp, err := s.API.Get(srv.URL + "/data")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthTransport_Headers(t *testing.T) {
	var gotUA, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s, err := NewSession(Options{Auth: auth.BasicAuth{Username: "user", Password: "pass"}})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)
	resp, err := s.API.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "Basic dXNlcjpwYXNz", gotAuth)
	assert.Empty(t, req.Header.Get("Authorization"), "caller request must not be mutated")
}
