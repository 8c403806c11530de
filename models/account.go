// Package models, uygulamanın domain modellerini tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; request tipleri ise
// API'den gelen verinin şeklini belirler. json tag'leri serialize davranışını
// kontrol eder — `json:"-"` alanı API yanıtlarından tamamen gizler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Alan uzunluk sınırları — veritabanı constraint'leriyle uyumlu.
// Şifre üst sınırı bcrypt'in 72 byte limitinden gelir.
const (
	MaxEmailLength    = 255
	MaxPasswordLength = 72
	MinPasswordLength = 8
)

// emailRegex, kaba bir format kontrolü — gerçek doğrulama mail gönderimiyle olur.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Account, bir kullanıcı hesabını temsil eder.
//
// ID ve PasswordHash asla serialize edilmez. Hesap eşitliği ID üzerindendir —
// henüz kaydedilmemiş iki hesap (ID=0) hiçbir zaman eşit sayılmaz.
type Account struct {
	ID           int64     `json:"-"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// SignUpRequest, kayıt isteği. passwordNew transient'tır: sadece bu istekte
// yaşar, hash'lenip hesabın kalıcı şifresi olur.
type SignUpRequest struct {
	Email       string `json:"email"`
	PasswordNew string `json:"passwordNew"`
}

// Validate, kayıt alanlarını kontrol eder.
// Constraint ihlalleri (duplicate email) repository katmanında yakalanır;
// burada sadece format ve uzunluk bakılır.
func (r *SignUpRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)

	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validateNewPassword(r.PasswordNew)
}

// LoginRequest, giriş ve hesap silme isteklerinde kullanılan kimlik bilgisi.
type LoginRequest struct {
	Email           string `json:"email"`
	PasswordCurrent string `json:"passwordCurrent"`
}

// Validate, kimlik bilgisi alanlarının boş olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.PasswordCurrent == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ChangePasswordRequest, şifre değiştirme isteği.
// Mevcut şifre doğrulanır, passwordNew hash'lenip yerine geçer.
type ChangePasswordRequest struct {
	Email           string `json:"email"`
	PasswordCurrent string `json:"passwordCurrent"`
	PasswordNew     string `json:"passwordNew"`
}

// Validate, şifre değiştirme alanlarını kontrol eder.
func (r *ChangePasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.PasswordCurrent == "" {
		return fmt.Errorf("current password is required")
	}
	return validateNewPassword(r.PasswordNew)
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("email must be at most %d characters", MaxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func validateNewPassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}
	return nil
}
