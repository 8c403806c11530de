// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: veritabanı işlemlerini (CRUD) soyutlayan tasarım kalıbı.
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden çalışır.
//
// Neden interface?
// 1. Test: fake repository yazarak DB olmadan test edebilirsin
// 2. Esneklik: SQLite'tan PostgreSQL'e geçiş sadece yeni implementasyon demek
// 3. SOLID (Dependency Inversion): Service, concrete struct'a değil interface'e bağımlı
package repository

import (
	"context"

	"github.com/botaniclock/server/models"
)

// AccountRepository, hesap veritabanı işlemleri için interface.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// UpdatePassword, hesabın şifre hash'ini günceller.
	// AuthService.ChangePassword tarafından çağrılır — yeni bcrypt hash alır.
	UpdatePassword(ctx context.Context, id int64, newPasswordHash string) error
	// Delete, hesabı ve ona bağlı her şeyi (session'lar, bitkiler) tek
	// transaction içinde siler. Tamamı geçer ya da hiçbiri.
	Delete(ctx context.Context, id int64) error
}
