package models

import "fmt"

// Bitki alan sabitleri.
const (
	// RegistrationIDLength, IoT cihazlarının bitkiyi tanıttığı token'ın uzunluğu.
	// Cihaz firmware'ine elle girildiği için kısa tutulur.
	RegistrationIDLength = 20

	// MaxPlantNameLength, bitki adı üst sınırı.
	MaxPlantNameLength = 255
)

// Plant, bir kullanıcının takip ettiği bitkiyi temsil eder.
//
// ImageURL transient'tır: veritabanında yalnızca ImageKey saklanır,
// URL her okumada object storage'dan kısa ömürlü presigned link olarak
// yeniden üretilir. AccountID, ImageKey ve OwnerEmail asla serialize edilmez.
type Plant struct {
	ID               int64   `json:"id"`
	PlantName        string  `json:"plantName"`
	ImageURL         string  `json:"imageURL"`
	LastWatered      *Date   `json:"lastWatered"`
	WateringInterval int     `json:"wateringInterval"` // gün cinsinden; 0 = hatırlatma kapalı
	RegistrationID   string  `json:"registrationID"`
	ImageKey         *string `json:"-"`
	AccountID        int64   `json:"-"`

	// OwnerEmail, plant satırı account tablosuyla join'lenerek doldurulur.
	// Authorization karşılaştırmaları ve hatırlatma emaili için kullanılır.
	OwnerEmail string `json:"-"`
}

// NextDue, bir sonraki sulama tarihini döner.
// lastWatered hiç set edilmemişse veya interval < 1 ise (false) döner —
// yapılandırılmamış bitki hiçbir zaman hatırlatma üretmez.
func (p *Plant) NextDue() (Date, bool) {
	if p.LastWatered == nil || p.WateringInterval < 1 {
		return Date{}, false
	}
	return p.LastWatered.AddDays(p.WateringInterval), true
}

// IsOverdue, bitkinin verilen güne göre sulamasının geciktiğini döner.
// Gecikme sınırı dahildir: bugün == nextDue ise bitki overdue sayılır.
func (p *Plant) IsOverdue(today Date) bool {
	nextDue, ok := p.NextDue()
	if !ok {
		return false
	}
	return !today.Before(nextDue)
}

// PlantRequest, bitki oluşturma ve güncelleme isteklerinin body'si.
//
// registrationID burada YOK: sunucu tarafında üretilir ve değiştirilemez.
// Aksi halde bir kullanıcı başkasının bitkisinin token'ını tahmin edip
// kendi bitkisine yazabilirdi.
type PlantRequest struct {
	PlantName        string `json:"plantName"`
	LastWatered      *Date  `json:"lastWatered"`
	WateringInterval int    `json:"wateringInterval"`
}

// Validate, alan kurallarını kontrol eder.
func (r *PlantRequest) Validate() error {
	if len(r.PlantName) > MaxPlantNameLength {
		return fmt.Errorf("plant name must be at most %d characters", MaxPlantNameLength)
	}
	if r.WateringInterval < 0 {
		return fmt.Errorf("watering interval must not be negative")
	}
	return nil
}
