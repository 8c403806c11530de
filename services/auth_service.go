// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern nedir?
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - Şifre hash'leme
//   - Session token oluşturma ve doğrulama
//   - Sahiplik kontrolleri
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg"
	"github.com/botaniclock/server/pkg/random"
	"github.com/botaniclock/server/pkg/storage"
	"github.com/botaniclock/server/repository"
)

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	// SignUp, yeni hesap oluşturur. Email zaten kayıtlıysa ErrBadRequest döner.
	SignUp(ctx context.Context, req *models.SignUpRequest) error
	// Login, kimlik bilgilerini doğrular ve yeni bir session oluşturur.
	// Aynı anda hesabın süresi dolmuş session'ları da temizler.
	Login(ctx context.Context, req *models.LoginRequest) (*models.Session, error)
	// ValidateSession, token'ın geçerli ve süresi dolmamış olduğunu doğrular.
	ValidateSession(ctx context.Context, token string) (*models.Session, error)
	// Logout, session'ı kalıcı olarak geçersiz kılar.
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error
	// DeleteAccount, hesabı ve sahip olduğu her şeyi siler: önce bucket'taki
	// bitki fotoğrafları, sonra DB satırları (session'lar + bitkiler + hesap).
	DeleteAccount(ctx context.Context, req *models.LoginRequest) error
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository
	plantRepo   repository.PlantRepository
	images      storage.ImageStore
}

// NewAuthService, constructor.
//
// plantRepo ve images sadece DeleteAccount için gerekir: hesap silinmeden
// önce bitki fotoğraflarının bucket'tan temizlenmesi gerekir, yoksa
// hiçbir kayda bağlı olmayan yetim object'ler birikir.
func NewAuthService(
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	plantRepo repository.PlantRepository,
	images storage.ImageStore,
) AuthService {
	return &authService{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		plantRepo:   plantRepo,
		images:      images,
	}
}

func (s *authService) SignUp(ctx context.Context, req *models.SignUpRequest) error {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// 2. Bcrypt hash (cost=12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.PasswordNew), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	return s.accountRepo.Create(ctx, account)
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	account, err := s.checkCredentials(ctx, req.Email, req.PasswordCurrent)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Süresi dolmuş session'ları bu fırsatta temizle.
	// Başarısız olursa login'i engellemez — sadece logla.
	if err := s.sessionRepo.DeleteExpiredByAccount(ctx, account.ID, now); err != nil {
		log.Printf("[auth] failed to prune expired sessions for account %d: %v", account.ID, err)
	}

	token, err := random.String(models.SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &models.Session{
		AccountID:   account.ID,
		Token:       token,
		MaxAge:      models.DefaultCookieMaxAge,
		TimeCreated: now.Unix(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, pkg.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.IsExpired(time.Now()) {
		// Süresi dolan session'ı hemen sil — tabloyu şişirmesin
		if delErr := s.sessionRepo.DeleteByID(ctx, session.ID); delErr != nil {
			log.Printf("[auth] failed to delete expired session %d: %v", session.ID, delErr)
		}
		return nil, pkg.ErrInvalidSession
	}

	return session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return err
	}

	return s.sessionRepo.DeleteByID(ctx, session.ID)
}

func (s *authService) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	account, err := s.checkCredentials(ctx, req.Email, req.PasswordCurrent)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PasswordNew), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.accountRepo.UpdatePassword(ctx, account.ID, string(hash))
}

func (s *authService) DeleteAccount(ctx context.Context, req *models.LoginRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	account, err := s.checkCredentials(ctx, req.Email, req.PasswordCurrent)
	if err != nil {
		return err
	}

	// Önce bucket temizliği: DB satırı gittikten sonra image key'lere
	// ulaşamayız. Tek bir fotoğrafın silinememesi hesabın silinmesini
	// engellemez — loglanır ve devam edilir.
	plants, err := s.plantRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return err
	}
	for _, plant := range plants {
		if plant.ImageKey == nil {
			continue
		}
		if err := s.images.DeleteImage(ctx, *plant.ImageKey); err != nil {
			log.Printf("[auth] failed to delete image %s for plant %d: %v", *plant.ImageKey, plant.ID, err)
		}
	}

	return s.accountRepo.Delete(ctx, account.ID)
}

// checkCredentials, email + şifre çiftini doğrular.
//
// Bilinmeyen email ile yanlış şifre AYNI hatayı döner (ErrInvalidAccount) —
// yanıt farkından hangi email'lerin kayıtlı olduğu çıkarılamaz.
func (s *authService) checkCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pkg.ErrInvalidAccount) {
			return nil, pkg.ErrInvalidAccount
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, pkg.ErrInvalidAccount
	}

	return account, nil
}
