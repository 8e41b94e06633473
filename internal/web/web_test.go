package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"memberserver/auth/hasher"
	authservice "memberserver/auth/service"
	"memberserver/auth/session"
	sessionmem "memberserver/auth/session/mem"
	storagemem "memberserver/auth/storage/mem"
	"memberserver/internal/config"
	"memberserver/internal/web/webpath"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	userStorage := storagemem.New()
	authService := authservice.New(log, userStorage, hasher.New())
	sessions := session.New(sessionmem.New(time.Hour), userStorage)

	cfg := config.Server{
		Session: config.Session{
			Cookie:     "session",
			Expiration: "1h",
		},
	}
	s, err := New(log, cfg, authService, sessions)
	require.NoError(t, err)
	return s
}

func postForm(t *testing.T, s *Server, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, s *Server, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	return resp
}

func respCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func requireFlash(t *testing.T, resp *http.Response, message string) {
	t.Helper()
	c := respCookie(t, resp, flashCookie)
	require.Equal(t, url.QueryEscape("error:"+message), c.Value)
}

func credentialsForm(email string, password string) url.Values {
	return url.Values{
		"email":    {email},
		"password": {password},
	}
}

func signUp(t *testing.T, s *Server, email string, password string) *http.Cookie {
	t.Helper()
	resp := postForm(t, s, webpath.Signup, credentialsForm(email, password))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, webpath.Secret, resp.Header.Get("Location"))
	c := respCookie(t, resp, "session")
	require.NotEmpty(t, c.Value)
	return c
}

func TestSignupEstablishesSession(t *testing.T) {
	s := newTestServer(t)

	sessionCookie := signUp(t, s, "a@x.com", "pw1")

	resp := get(t, s, webpath.Secret, sessionCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "a@x.com")
}

func TestSignupDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	signUp(t, s, "a@x.com", "pw1")

	resp := postForm(t, s, webpath.Signup, credentialsForm("a@x.com", "pw2"))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, webpath.Signup, resp.Header.Get("Location"))
	requireFlash(t, resp, "This email is already in use!")
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	signUp(t, s, "a@x.com", "pw1")

	resp := postForm(t, s, webpath.Login, credentialsForm("a@x.com", "wrong"))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, webpath.Login, resp.Header.Get("Location"))
	requireFlash(t, resp, "Oops, wrong password!")

	resp = postForm(t, s, webpath.Login, credentialsForm("nobody@x.com", "pw1"))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, webpath.Login, resp.Header.Get("Location"))
	requireFlash(t, resp, "No user found.")
}

func TestLoginThenLogout(t *testing.T) {
	s := newTestServer(t)
	signUp(t, s, "a@x.com", "pw1")

	resp := postForm(t, s, webpath.Login, credentialsForm("a@x.com", "pw1"))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, webpath.Secret, resp.Header.Get("Location"))
	sessionCookie := respCookie(t, resp, "session")
	require.NotEmpty(t, sessionCookie.Value)

	resp = get(t, s, webpath.Secret, sessionCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, s, webpath.Logout, sessionCookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, webpath.Home, resp.Header.Get("Location"))
	require.Empty(t, respCookie(t, resp, "session").Value)

	// the old key no longer resolves, the guard kicks in
	resp = get(t, s, webpath.Secret, sessionCookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, webpath.Login, resp.Header.Get("Location"))
	requireFlash(t, resp, "Login to access!")
}

func TestSecretRequiresLogin(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s, webpath.Secret)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, webpath.Login, resp.Header.Get("Location"))
	requireFlash(t, resp, "Login to access!")
}

func TestLoginPageRejectsMembers(t *testing.T) {
	s := newTestServer(t)
	sessionCookie := signUp(t, s, "a@x.com", "pw1")

	for _, path := range []string{webpath.Login, webpath.Signup} {
		resp := get(t, s, path, sessionCookie)
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, webpath.Home, resp.Header.Get("Location"))
		requireFlash(t, resp, "You are already logged in!")
	}
}

func TestFlashIsReadOnce(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s, webpath.Secret)
	flashCookieValue := respCookie(t, resp, flashCookie)

	resp = get(t, s, webpath.Login, flashCookieValue)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Login to access!")
	// consumed: the cookie comes back cleared
	require.Empty(t, respCookie(t, resp, flashCookie).Value)
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)

	resp := postForm(t, s, webpath.Signup, credentialsForm("not-an-email", "pw1"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "email address is not valid")

	resp = postForm(t, s, webpath.Signup, credentialsForm("a@x.com", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "password must not be empty")
}
