package repository

import (
	"context"
	"time"

	"github.com/botaniclock/server/models"
)

// SessionRepository, oturum veritabanı işlemleri için interface.
//
// Oturumlar opak token'lardır: JWT gibi self-contained değil, her istekte
// DB'den doğrulanır. Bu sayede logout anında geçersiz kılınabilirler.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByID(ctx context.Context, id int64) error
	// DeleteExpiredByAccount, hesabın süresi dolmuş oturumlarını temizler.
	// Login sırasında çağrılır — ayrı bir cleanup job'a gerek kalmaz.
	DeleteExpiredByAccount(ctx context.Context, accountID int64, now time.Time) error
}
