package handlers

import (
	"net/http"

	"github.com/botaniclock/server/models"
)

// sessionCookieName, session token'ını taşıyan cookie'nin adı.
const sessionCookieName = "sessionId"

// sessionTokenFromRequest, istekten session token'ını okur.
// Cookie yoksa boş string döner — service katmanı bunu ErrInvalidSession yapar.
func sessionTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie, login/signup sonrası session cookie'sini yazar.
//
// HttpOnly: JavaScript cookie'yi okuyamaz (XSS'e karşı).
// SameSite=Lax: cross-site POST'larda cookie gönderilmez (CSRF'e karşı),
// ama normal navigasyonda çalışır.
// Secure bilinçli olarak set edilmez — TLS termination reverse proxy'de.
func setSessionCookie(w http.ResponseWriter, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   session.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie, logout sonrası cookie'yi siler.
// Go'da MaxAge: -1 → "Max-Age=0" serialize edilir, browser cookie'yi atar.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
