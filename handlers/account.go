// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi çok basit ve "ince" (thin) olmalı:
// 1. Request body'yi parse et (JSON → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı (business logic) içermez.
// Handler ASLA doğrudan DB'ye erişmez.
// Tüm akıl service'de, handler sadece köprü.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg"
	"github.com/botaniclock/server/pkg/ratelimit"
	"github.com/botaniclock/server/services"
)

// AccountHandler, hesap ve oturum endpoint'lerini yöneten struct.
// Service interface'i ve rate limiter constructor'dan alınır (DI).
type AccountHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.LoginRateLimiter
}

// NewAccountHandler, constructor.
// loginLimiter: Login brute-force koruması. nil ise rate limiting devre dışı kalır.
func NewAccountHandler(authService services.AuthService, loginLimiter *ratelimit.LoginRateLimiter) *AccountHandler {
	return &AccountHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// Session godoc
// POST /api/v1/session
// Cookie'deki token'ın hâlâ geçerli olup olmadığını kontrol eder.
// Frontend sayfa açılışında çağırır: 200 → içeri al, 403 → login'e yönlendir.
func (h *AccountHandler) Session(w http.ResponseWriter, r *http.Request) {
	token := sessionTokenFromRequest(r)

	if _, err := h.authService.ValidateSession(r.Context(), token); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.Body(w, http.StatusOK, "COOKIE_VALID")
}

// Login godoc
// POST /api/v1/account/login
//
// Rate limiting: IP bazlı brute-force koruması.
// Limit aşıldığında 429 Too Many Requests + Retry-After header döner.
// Başarılı login sayacı sıfırlar — meşru kullanıcı bloke olmaz.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.Body(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, please try again in %s",
				ratelimit.FormatRetryMessage(retryAfter)))
		return
	}

	var req models.LoginRequest

	// json.NewDecoder: Request body'yi Go struct'ına parse eder.
	// r.Body bir io.Reader'dır — stream olarak okunur, hepsini belleğe almaz.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.Body(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	setSessionCookie(w, session)
	pkg.Body(w, http.StatusOK, "ACCOUNT_VALID")
}

// SignUp godoc
// POST /api/v1/account/signup
// Kayıt başarılıysa kullanıcı hemen login edilir — ayrı bir login
// isteğine gerek kalmadan cookie set edilmiş döner.
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.Body(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.SignUp(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	session, err := h.authService.Login(r.Context(), &models.LoginRequest{
		Email:           req.Email,
		PasswordCurrent: req.PasswordNew,
	})
	if err != nil {
		pkg.Error(w, err)
		return
	}

	setSessionCookie(w, session)
	pkg.Body(w, http.StatusOK, "SIGNED_UP")
}

// Logout godoc
// POST /api/v1/account/logout
// Session DB'den silinir ve cookie temizlenir. Geçersiz token 403 alır,
// cookie yalnızca başarı yolunda temizlenir.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := sessionTokenFromRequest(r)

	if err := h.authService.Logout(r.Context(), token); err != nil {
		pkg.Error(w, err)
		return
	}

	clearSessionCookie(w)
	pkg.Body(w, http.StatusOK, "LOGGED_OUT")
}

// ChangePassword godoc
// POST /api/v1/account/password
// Cookie değil mevcut şifre ile doğrular — oturum çalınsa bile şifre
// değiştirilemez.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.Body(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ChangePassword(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.Body(w, http.StatusOK, "PASSWORD_CHANGED")
}

// DeleteAccount godoc
// POST /api/v1/account/delete
// ChangePassword gibi mevcut şifre ile doğrular. Hesapla birlikte tüm
// session'lar, bitkiler ve bucket'taki fotoğraflar da silinir.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.Body(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.DeleteAccount(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	clearSessionCookie(w)
	pkg.Body(w, http.StatusOK, "ACCOUNT_DELETED")
}
