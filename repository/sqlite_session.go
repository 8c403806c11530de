package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/botaniclock/server/database"
	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg"
)

// sqliteSessionRepo, SessionRepository interface'inin SQLite implementasyonu.
type sqliteSessionRepo struct {
	db database.TxQuerier
}

func NewSQLiteSessionRepo(db database.TxQuerier) SessionRepository {
	return &sqliteSessionRepo{db: db}
}

func (r *sqliteSessionRepo) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (account_id, token, max_age, time_created)
		VALUES (?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		session.AccountID,
		session.Token,
		session.MaxAge,
		session.TimeCreated,
	).Scan(&session.ID)

	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *sqliteSessionRepo) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, account_id, token, max_age, time_created
		FROM sessions WHERE token = ?`

	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.ID, &session.AccountID, &session.Token,
		&session.MaxAge, &session.TimeCreated,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}

	return session, nil
}

func (r *sqliteSessionRepo) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM sessions WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (r *sqliteSessionRepo) DeleteExpiredByAccount(ctx context.Context, accountID int64, now time.Time) error {
	// Süre kontrolü models.Session.IsExpired ile aynı: (now - time_created) > max_age
	query := `DELETE FROM sessions WHERE account_id = ? AND (? - time_created) > max_age`

	if _, err := r.db.ExecContext(ctx, query, accountID, now.Unix()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return nil
}
