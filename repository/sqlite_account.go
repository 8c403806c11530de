package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/botaniclock/server/database"
	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg"
)

// sqliteAccountRepo, AccountRepository interface'inin SQLite implementasyonu.
//
// Diğer repository'lerden farklı olarak *sql.DB tutar (TxQuerier değil):
// Delete çok adımlıdır ve kendi transaction'ını kendisi açar.
type sqliteAccountRepo struct {
	db *sql.DB
}

// NewSQLiteAccountRepo, constructor fonksiyonu.
// AccountRepository interface'i döner (concrete struct değil) — Dependency Inversion.
func NewSQLiteAccountRepo(db *sql.DB) AccountRepository {
	return &sqliteAccountRepo{db: db}
}

func (r *sqliteAccountRepo) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (email, password_hash)
		VALUES (?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		account.Email,
		account.PasswordHash,
	).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		// UNIQUE constraint violation → bu email ile zaten hesap var
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", pkg.ErrBadRequest)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (r *sqliteAccountRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM accounts WHERE id = ?`

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrInvalidAccount
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *sqliteAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM accounts WHERE email = ?`

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrInvalidAccount
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *sqliteAccountRepo) UpdatePassword(ctx context.Context, id int64, newPasswordHash string) error {
	query := `UPDATE accounts SET password_hash = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, newPasswordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check password update: %w", err)
	}
	if rows == 0 {
		return pkg.ErrInvalidAccount
	}

	return nil
}

// Delete, hesabı siler. Session ve plant satırları FK ON DELETE CASCADE ile
// beraber gider; yine de üç DELETE'i açıkça ve tek transaction içinde
// çalıştırıyoruz ki silme sırası belli olsun ve pragma kapalı bir ortamda
// bile yetim satır kalmasın.
func (r *sqliteAccountRepo) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE account_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete sessions: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM plants WHERE account_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete plants: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check account delete: %w", err)
		}
		if rows == 0 {
			return pkg.ErrInvalidAccount
		}

		return nil
	})
}

// isUniqueViolation, SQLite UNIQUE constraint hatasını tespit eder.
// modernc.org/sqlite tiplenmiş hata kodu dışarı vermez — mesaj kontrolü gerekir.
func isUniqueViolation(err error) bool {
	return err != nil && !errors.Is(err, sql.ErrNoRows) &&
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
