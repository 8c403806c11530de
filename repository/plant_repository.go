package repository

import (
	"context"

	"github.com/botaniclock/server/models"
)

// PlantRepository, bitki veritabanı işlemleri için interface.
//
// Get* method'ları OwnerEmail alanını da doldurur (accounts JOIN ile) —
// cihaz doğrulaması ve hatırlatma e-postaları için gerekir.
type PlantRepository interface {
	Create(ctx context.Context, plant *models.Plant) error
	GetByID(ctx context.Context, id int64) (*models.Plant, error)
	GetByRegistrationID(ctx context.Context, registrationID string) (*models.Plant, error)
	ListByAccount(ctx context.Context, accountID int64) ([]models.Plant, error)
	// ListAll, tüm hesapların tüm bitkilerini döner.
	// Yalnızca ReminderService'in saatlik taraması kullanır.
	ListAll(ctx context.Context) ([]models.Plant, error)
	// Update yalnızca plant_name, last_watered ve watering_interval yazar.
	// registration_id ve image_key bu yoldan değiştirilemez.
	Update(ctx context.Context, plant *models.Plant) error
	UpdateImageKey(ctx context.Context, id int64, imageKey *string) error
	UpdateLastWatered(ctx context.Context, id int64, lastWatered models.Date) error
	Delete(ctx context.Context, id int64) error
}
