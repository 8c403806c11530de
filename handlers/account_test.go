package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg"
	"github.com/botaniclock/server/pkg/ratelimit"
	"github.com/botaniclock/server/services"
)

// stubAuthService, handler testleri için sabit davranışlı AuthService.
// Handler'ın işi yönlendirme ve serialize etme — iş mantığı service
// testlerinde ayrıca test edilir.
type stubAuthService struct {
	validToken string
	session    *models.Session
	loginErr   error
}

func (s *stubAuthService) SignUp(_ context.Context, _ *models.SignUpRequest) error { return nil }

func (s *stubAuthService) Login(_ context.Context, _ *models.LoginRequest) (*models.Session, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.session, nil
}

func (s *stubAuthService) ValidateSession(_ context.Context, token string) (*models.Session, error) {
	if token != s.validToken || token == "" {
		return nil, pkg.ErrInvalidSession
	}
	return s.session, nil
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	if token != s.validToken {
		return pkg.ErrInvalidSession
	}
	return nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, _ *models.ChangePasswordRequest) error {
	return nil
}

func (s *stubAuthService) DeleteAccount(_ context.Context, _ *models.LoginRequest) error {
	return nil
}

var _ services.AuthService = (*stubAuthService)(nil)

func newStubAuth() *stubAuthService {
	return &stubAuthService{
		validToken: "valid-token",
		session: &models.Session{
			ID: 1, AccountID: 7, Token: "valid-token",
			MaxAge: models.DefaultCookieMaxAge, TimeCreated: time.Now().Unix(),
		},
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) pkg.HTTPResponseBody {
	t.Helper()
	var body pkg.HTTPResponseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSessionEndpoint(t *testing.T) {
	h := NewAccountHandler(newStubAuth(), nil)

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
		req.AddCookie(&http.Cookie{Name: "sessionId", Value: "valid-token"})
		rec := httptest.NewRecorder()

		h.Session(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Equal(t, "COOKIE_VALID", body.Message)
		assert.Equal(t, http.StatusOK, body.Status)
		assert.NotZero(t, body.TimeStamp)
	})

	t.Run("missing cookie is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
		rec := httptest.NewRecorder()

		h.Session(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestLoginSetsCookie(t *testing.T) {
	h := NewAccountHandler(newStubAuth(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/login",
		strings.NewReader(`{"email":"eva@example.com","passwordCurrent":"pw"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ACCOUNT_VALID", decodeEnvelope(t, rec).Message)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "sessionId", c.Name)
	assert.Equal(t, "valid-token", c.Value)
	assert.Equal(t, models.DefaultCookieMaxAge, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
}

func TestLoginFailureStatus(t *testing.T) {
	auth := newStubAuth()
	auth.loginErr = pkg.ErrInvalidAccount
	h := NewAccountHandler(auth, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/login",
		strings.NewReader(`{"email":"eva@example.com","passwordCurrent":"bad"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginRateLimit(t *testing.T) {
	auth := newStubAuth()
	auth.loginErr = pkg.ErrInvalidAccount
	h := NewAccountHandler(auth, ratelimit.NewLoginRateLimiter(2, time.Minute))

	fire := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/account/login",
			strings.NewReader(`{"email":"eva@example.com","passwordCurrent":"bad"}`))
		req.RemoteAddr = "203.0.113.9:4242"
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, fire().Code)
	assert.Equal(t, http.StatusBadRequest, fire().Code)

	third := fire()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
}

func TestLogoutClearsCookie(t *testing.T) {
	h := NewAccountHandler(newStubAuth(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sessionId", Value: "valid-token"})
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "LOGGED_OUT", decodeEnvelope(t, rec).Message)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sessionId", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestSignUpLogsInImmediately(t *testing.T) {
	h := NewAccountHandler(newStubAuth(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/signup",
		strings.NewReader(`{"email":"eva@example.com","passwordNew":"correct-horse"}`))
	rec := httptest.NewRecorder()

	h.SignUp(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SIGNED_UP", decodeEnvelope(t, rec).Message)
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	h := NewAccountHandler(newStubAuth(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/login",
		strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
