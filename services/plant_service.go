package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strconv"

	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg"
	"github.com/botaniclock/server/pkg/random"
	"github.com/botaniclock/server/pkg/storage"
	"github.com/botaniclock/server/repository"
)

// PlantService interface'i — bitki CRUD'u ve IoT cihaz işlemleri.
//
// Her method session token (veya cihaz kimliği) alır ve yetkiyi KENDİSİ
// doğrular. Handler katmanında auth middleware yoktur — yetki kuralı
// iş kuralıdır ve burada yaşar.
type PlantService interface {
	List(ctx context.Context, token string) ([]models.Plant, error)
	Get(ctx context.Context, token, plantID string) (*models.Plant, error)
	Create(ctx context.Context, token string, req *models.PlantRequest) (*models.Plant, error)
	Update(ctx context.Context, token, plantID string, req *models.PlantRequest) (*models.Plant, error)
	// UpdateImage, bitkinin fotoğrafını değiştirir. Gerekirse görüntüyü
	// küçültür, eski fotoğrafı bucket'tan siler.
	UpdateImage(ctx context.Context, token, plantID string, img image.Image) (*models.Plant, error)
	// Delete, bitkiyi ve fotoğrafını siler; silinen bitkinin son halini döner.
	Delete(ctx context.Context, token, plantID string) (*models.Plant, error)

	// ConfirmDevice, cihazın tanıttığı registrationID + accountEmail çiftinin
	// gerçekten aynı bitkiye/hesaba ait olduğunu doğrular.
	ConfirmDevice(ctx context.Context, device *models.Device) error
	// UpdateTimestamp, cihaz sulama yaptığında lastWatered'ı bugüne çeker.
	UpdateTimestamp(ctx context.Context, device *models.Device) error
}

// plantService, PlantService interface'inin implementasyonu.
type plantService struct {
	plantRepo   repository.PlantRepository
	accountRepo repository.AccountRepository
	auth        AuthService
	images      storage.ImageStore
}

// NewPlantService, constructor.
func NewPlantService(
	plantRepo repository.PlantRepository,
	accountRepo repository.AccountRepository,
	auth AuthService,
	images storage.ImageStore,
) PlantService {
	return &plantService{
		plantRepo:   plantRepo,
		accountRepo: accountRepo,
		auth:        auth,
		images:      images,
	}
}

func (s *plantService) List(ctx context.Context, token string) ([]models.Plant, error) {
	account, err := s.resolveAccount(ctx, token)
	if err != nil {
		return nil, err
	}

	plants, err := s.plantRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	for i := range plants {
		s.attachImageURL(ctx, &plants[i])
	}

	return plants, nil
}

func (s *plantService) Get(ctx context.Context, token, plantID string) (*models.Plant, error) {
	_, plant, err := s.resolveOwnedPlant(ctx, token, plantID)
	if err != nil {
		return nil, err
	}

	s.attachImageURL(ctx, plant)
	return plant, nil
}

func (s *plantService) Create(ctx context.Context, token string, req *models.PlantRequest) (*models.Plant, error) {
	account, err := s.resolveAccount(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	registrationID, err := random.String(models.RegistrationIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate registration id: %w", err)
	}

	plant := &models.Plant{
		PlantName:        req.PlantName,
		LastWatered:      req.LastWatered,
		WateringInterval: req.WateringInterval,
		RegistrationID:   registrationID,
		AccountID:        account.ID,
		OwnerEmail:       account.Email,
	}

	if err := s.plantRepo.Create(ctx, plant); err != nil {
		return nil, err
	}

	return plant, nil
}

func (s *plantService) Update(ctx context.Context, token, plantID string, req *models.PlantRequest) (*models.Plant, error) {
	_, plant, err := s.resolveOwnedPlant(ctx, token, plantID)
	if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// registrationID ve imageKey bilinçli olarak DOKUNULMAZ —
	// sadece kullanıcı tarafından düzenlenebilir alanlar yazılır.
	plant.PlantName = req.PlantName
	plant.LastWatered = req.LastWatered
	plant.WateringInterval = req.WateringInterval

	if err := s.plantRepo.Update(ctx, plant); err != nil {
		return nil, err
	}

	s.attachImageURL(ctx, plant)
	return plant, nil
}

func (s *plantService) UpdateImage(ctx context.Context, token, plantID string, img image.Image) (*models.Plant, error) {
	_, plant, err := s.resolveOwnedPlant(ctx, token, plantID)
	if err != nil {
		return nil, err
	}

	resized := resizeIfTooLarge(img)

	key, err := s.images.AddImage(ctx, resized)
	if err != nil {
		return nil, err
	}

	// Önce DB'ye yeni key'i yaz, sonra eskiyi sil. Sıralama ters olsaydı
	// DB yazımı başarısız olduğunda bitki fotoğrafsız kalırdı.
	oldKey := plant.ImageKey
	if err := s.plantRepo.UpdateImageKey(ctx, plant.ID, &key); err != nil {
		if delErr := s.images.DeleteImage(ctx, key); delErr != nil {
			log.Printf("[plant] failed to clean up orphaned image %s: %v", key, delErr)
		}
		return nil, err
	}

	if oldKey != nil {
		if err := s.images.DeleteImage(ctx, *oldKey); err != nil {
			log.Printf("[plant] failed to delete replaced image %s: %v", *oldKey, err)
		}
	}

	plant.ImageKey = &key
	s.attachImageURL(ctx, plant)
	return plant, nil
}

func (s *plantService) Delete(ctx context.Context, token, plantID string) (*models.Plant, error) {
	_, plant, err := s.resolveOwnedPlant(ctx, token, plantID)
	if err != nil {
		return nil, err
	}

	if err := s.plantRepo.Delete(ctx, plant.ID); err != nil {
		return nil, err
	}

	if plant.ImageKey != nil {
		if err := s.images.DeleteImage(ctx, *plant.ImageKey); err != nil {
			log.Printf("[plant] failed to delete image %s for plant %d: %v", *plant.ImageKey, plant.ID, err)
		}
	}

	// ImageURL bilerek boş bırakılır — fotoğraf artık bucket'ta yok
	return plant, nil
}

func (s *plantService) ConfirmDevice(ctx context.Context, device *models.Device) error {
	_, err := s.resolveDevice(ctx, device)
	return err
}

func (s *plantService) UpdateTimestamp(ctx context.Context, device *models.Device) error {
	plant, err := s.resolveDevice(ctx, device)
	if err != nil {
		return err
	}

	return s.plantRepo.UpdateLastWatered(ctx, plant.ID, models.Today())
}

// resolveAccount, session token'ından hesabı çözer.
// Sıra önemli: ÖNCE session doğrulanır, sonra kaynak aranır.
func (s *plantService) resolveAccount(ctx context.Context, token string) (*models.Account, error) {
	session, err := s.auth.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.accountRepo.GetByID(ctx, session.AccountID)
}

// resolveOwnedPlant, session'ı doğrular ve bitkinin o hesaba ait
// olduğunu kontrol eder.
//
// "Bitki yok" ile "bitki başkasının" AYNI hatayı döner (ErrInvalidPlant):
// yanıt farkından hangi id'lerin var olduğu çıkarılamaz.
func (s *plantService) resolveOwnedPlant(ctx context.Context, token, plantID string) (*models.Account, *models.Plant, error) {
	account, err := s.resolveAccount(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	id, err := strconv.ParseInt(plantID, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: plant id must be an integer", pkg.ErrInvalidPlant)
	}

	plant, err := s.plantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if plant.AccountID != account.ID {
		return nil, nil, pkg.ErrInvalidPlant
	}

	return account, plant, nil
}

// resolveDevice, cihaz kimliğini bitkiye çözer.
//
// registrationID bilinmeyen bitki ile email'i uyuşmayan bitki AYNI hatayı
// döner — cihaz endpoint'i üzerinden token taraması yapılamaz.
func (s *plantService) resolveDevice(ctx context.Context, device *models.Device) (*models.Plant, error) {
	if device.RegistrationID == "" || device.AccountEmail == "" {
		return nil, pkg.ErrInvalidPlant
	}

	plant, err := s.plantRepo.GetByRegistrationID(ctx, device.RegistrationID)
	if err != nil {
		if errors.Is(err, pkg.ErrInvalidPlant) {
			return nil, pkg.ErrInvalidPlant
		}
		return nil, err
	}

	if plant.OwnerEmail != device.AccountEmail {
		return nil, pkg.ErrInvalidPlant
	}

	return plant, nil
}

// attachImageURL, bitkiye presigned URL ekler. URL üretimi başarısız olursa
// bitki yine döner — fotoğrafsız liste, hiç liste olmamasından iyidir.
func (s *plantService) attachImageURL(ctx context.Context, plant *models.Plant) {
	if plant.ImageKey == nil {
		return
	}

	url, err := s.images.ImageURL(ctx, *plant.ImageKey)
	if err != nil {
		log.Printf("[plant] failed to presign image url for plant %d: %v", plant.ID, err)
		return
	}

	plant.ImageURL = url
}
