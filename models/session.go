package models

import "time"

// Session token ve cookie sabitleri.
const (
	// SessionTokenLength, cookie'de taşınan session token'ın karakter sayısı.
	SessionTokenLength = 125

	// DefaultCookieMaxAge, yeni session'ların ömrü (saniye) — 100 dakika.
	DefaultCookieMaxAge = 60 * 100
)

// Session, veritabanında saklanan bir oturumu temsil eder.
//
// Neden opaque token, neden JWT değil?
// Session'lar sunucu tarafında satır olarak yaşar: logout anında silinir,
// hesap silinince cascade ile gider. JWT'nin "sunucu state'i yok" avantajı
// burada dezavantaj olurdu — iptal edilemeyen oturum istemiyoruz.
//
// Session hiçbir API yanıtında serialize edilmez; token yalnızca
// Set-Cookie header'ı ile client'a gider.
type Session struct {
	ID          int64
	AccountID   int64
	Token       string // cookie'nin sessionId değeri
	MaxAge      int    // saniye
	TimeCreated int64  // epoch saniye
}

// IsExpired, oturumun süresinin dolup dolmadığını döner.
// Süre aşımı kesin bir sınırdır: validate sırasında yenileme YAPILMAZ,
// MaxAge saniye sonra oturum ölüdür.
func (s *Session) IsExpired(now time.Time) bool {
	return now.Unix()-s.TimeCreated > int64(s.MaxAge)
}
