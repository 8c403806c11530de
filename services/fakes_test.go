package services

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg"
)

// In-memory fake'ler — repository ve storage interface'lerinin test
// implementasyonları. SQLite implementasyonlarıyla aynı hata sözleşmesini
// uygularlar (ErrInvalidAccount, ErrInvalidPlant, ErrInvalidSession).

type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[int64]*models.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == account.Email {
			return fmt.Errorf("%w: email already registered", pkg.ErrBadRequest)
		}
	}

	r.nextID++
	account.ID = r.nextID
	account.CreatedAt = time.Now()
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, pkg.ErrInvalidAccount
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, pkg.ErrInvalidAccount
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, id int64, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return pkg.ErrInvalidAccount
	}
	a.PasswordHash = newHash
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return pkg.ErrInvalidAccount
	}
	delete(r.accounts, id)
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int64]*models.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	session.ID = r.nextID
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		if s.Token == token {
			copied := *s
			return &copied, nil
		}
	}
	return nil, pkg.ErrInvalidSession
}

func (r *fakeSessionRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteExpiredByAccount(_ context.Context, accountID int64, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		if s.AccountID == accountID && s.IsExpired(now) {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type fakePlantRepo struct {
	mu     sync.Mutex
	nextID int64
	plants map[int64]*models.Plant

	listAllErr error
}

func newFakePlantRepo() *fakePlantRepo {
	return &fakePlantRepo{plants: make(map[int64]*models.Plant)}
}

func (r *fakePlantRepo) Create(_ context.Context, plant *models.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	plant.ID = r.nextID
	copied := *plant
	r.plants[plant.ID] = &copied
	return nil
}

func (r *fakePlantRepo) GetByID(_ context.Context, id int64) (*models.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plants[id]
	if !ok {
		return nil, pkg.ErrInvalidPlant
	}
	copied := *p
	return &copied, nil
}

func (r *fakePlantRepo) GetByRegistrationID(_ context.Context, registrationID string) (*models.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.plants {
		if p.RegistrationID == registrationID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, pkg.ErrInvalidPlant
}

func (r *fakePlantRepo) ListByAccount(_ context.Context, accountID int64) ([]models.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Plant{}
	for _, p := range r.plants {
		if p.AccountID == accountID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlantRepo) ListAll(_ context.Context) ([]models.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listAllErr != nil {
		return nil, r.listAllErr
	}

	out := []models.Plant{}
	for _, p := range r.plants {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePlantRepo) Update(_ context.Context, plant *models.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plants[plant.ID]
	if !ok {
		return pkg.ErrInvalidPlant
	}
	p.PlantName = plant.PlantName
	p.LastWatered = plant.LastWatered
	p.WateringInterval = plant.WateringInterval
	return nil
}

func (r *fakePlantRepo) UpdateImageKey(_ context.Context, id int64, imageKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plants[id]
	if !ok {
		return pkg.ErrInvalidPlant
	}
	p.ImageKey = imageKey
	return nil
}

func (r *fakePlantRepo) UpdateLastWatered(_ context.Context, id int64, lastWatered models.Date) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plants[id]
	if !ok {
		return pkg.ErrInvalidPlant
	}
	p.LastWatered = &lastWatered
	return nil
}

func (r *fakePlantRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plants[id]; !ok {
		return pkg.ErrInvalidPlant
	}
	delete(r.plants, id)
	return nil
}

type fakeImageStore struct {
	mu      sync.Mutex
	nextKey int
	stored  map[string]bool
	deleted []string
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{stored: make(map[string]bool)}
}

func (s *fakeImageStore) AddImage(_ context.Context, _ image.Image) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextKey++
	key := fmt.Sprintf("plants/test/%d", s.nextKey)
	s.stored[key] = true
	return key, nil
}

func (s *fakeImageStore) DeleteImage(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.stored, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeImageStore) ImageURL(_ context.Context, key string) (string, error) {
	return "https://bucket.example.com/" + key + "?signed", nil
}

func (s *fakeImageStore) deletedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

type sentMail struct {
	to, plantName, dueDate string
}

type fakeSender struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo map[string]bool // bu adreslere gönderim hata döner
}

func newFakeSender() *fakeSender {
	return &fakeSender{failTo: make(map[string]bool)}
}

func (s *fakeSender) SendWateringReminder(_ context.Context, toEmail, plantName, dueDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failTo[toEmail] {
		return fmt.Errorf("smtp unavailable for %s", toEmail)
	}
	s.sent = append(s.sent, sentMail{to: toEmail, plantName: plantName, dueDate: dueDate})
	return nil
}

func (s *fakeSender) sentMails() []sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMail(nil), s.sent...)
}
