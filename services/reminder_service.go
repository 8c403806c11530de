// Package services — ReminderService, periyodik sulama hatırlatma servisi.
//
// Her saat tüm bitkileri tarar: lastWatered + wateringInterval geçmişse
// sahibine "bitkin susadı" emaili gönderir. Sulanmamış bitki her taramada
// tekrar hatırlatılır — kullanıcı sulayana (lastWatered güncellenene)
// kadar email gelmeye devam eder.
//
// Goroutine pattern: time.NewTicker + select + stopCh (pkg/cache/ttl_cache.go ile aynı).
// Graceful shutdown: main.go'da reminder.Stop() çağrılır.
package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg/email"
	"github.com/botaniclock/server/repository"
)

// ReminderService, periyodik hatırlatma taraması interface'i.
type ReminderService interface {
	// Start, tarama goroutine'ini başlatır.
	// main.go'da servisler kurulduktan sonra çağrılır.
	Start()

	// Stop, tarama goroutine'ini durdurur.
	// main.go'da graceful shutdown sırasında çağrılır.
	Stop()
}

type reminderService struct {
	plantRepo repository.PlantRepository
	sender    email.EmailSender

	interval time.Duration

	stopCh chan struct{}
	mu     sync.Mutex // Start/Stop race koruması
}

// NewReminderService, constructor.
//
// interval: tarama aralığı (production: time.Hour).
func NewReminderService(
	plantRepo repository.PlantRepository,
	sender email.EmailSender,
	interval time.Duration,
) ReminderService {
	return &reminderService{
		plantRepo: plantRepo,
		sender:    sender,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start, tarama goroutine'ini başlatır.
// İlk tarama hemen çalışır, sonra interval aralığında tekrarlar.
func (s *reminderService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("[reminder] starting (interval=%s)", s.interval)

	go func() {
		// İlk taramayı hemen yap — restart sonrası kaçan hatırlatmalar gecikmesin
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				log.Println("[reminder] stopped")
				return
			}
		}
	}()
}

// Stop, tarama goroutine'ini durdurur.
func (s *reminderService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.stopCh)
}

// sweep, tüm bitkileri tarar ve gecikenlere hatırlatma gönderir.
func (s *reminderService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	plants, err := s.plantRepo.ListAll(ctx)
	if err != nil {
		log.Printf("[reminder] failed to list plants: %v", err)
		return
	}

	if len(plants) == 0 {
		return
	}

	today := models.Today()
	sent := 0
	for i := range plants {
		if s.remindOne(ctx, &plants[i], today) {
			sent++
		}
	}

	if sent > 0 {
		log.Printf("[reminder] sweep complete: %d reminder(s) sent", sent)
	}
}

// remindOne, tek bir bitkiyi kontrol eder ve gerekiyorsa email gönderir.
// Email hatası diğer bitkileri etkilemez — loglanır ve tarama devam eder.
func (s *reminderService) remindOne(ctx context.Context, plant *models.Plant, today models.Date) bool {
	if !plant.IsOverdue(today) {
		return false
	}

	// IsOverdue true döndüyse NextDue kesin vardır
	nextDue, _ := plant.NextDue()

	err := s.sender.SendWateringReminder(ctx, plant.OwnerEmail, plant.PlantName, nextDue.String())
	if err != nil {
		log.Printf("[reminder] failed to send reminder for plant %d: %v", plant.ID, err)
		return false
	}

	return true
}
