package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botaniclock/server/models"
)

// sweep'i doğrudan çağırıyoruz — ticker'lı Start/Stop goroutine'i değil.
// Tarama mantığı sweep'te yaşar, zamanlama standart kütüphanenin işi.

func newReminderFixture() (*fakePlantRepo, *fakeSender, *reminderService) {
	plants := newFakePlantRepo()
	sender := newFakeSender()
	svc := NewReminderService(plants, sender, 0).(*reminderService)
	return plants, sender, svc
}

func addPlant(t *testing.T, repo *fakePlantRepo, name, owner string, lastWatered *models.Date, interval int) *models.Plant {
	t.Helper()
	p := &models.Plant{
		PlantName:        name,
		OwnerEmail:       owner,
		LastWatered:      lastWatered,
		WateringInterval: interval,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestSweepSendsForOverduePlantsOnly(t *testing.T) {
	plants, sender, svc := newReminderFixture()
	today := models.Today()

	overdue := today.AddDays(-10)
	fresh := today.AddDays(-1)

	addPlant(t, plants, "Monstera", "eva@example.com", &overdue, 7)
	addPlant(t, plants, "Fern", "eva@example.com", &fresh, 7)
	addPlant(t, plants, "Cactus", "bob@example.com", nil, 7)     // hiç sulanmamış
	addPlant(t, plants, "Ivy", "bob@example.com", &overdue, 0)   // hatırlatma kapalı

	svc.sweep()

	sent := sender.sentMails()
	require.Len(t, sent, 1)
	assert.Equal(t, "eva@example.com", sent[0].to)
	assert.Equal(t, "Monstera", sent[0].plantName)
	assert.Equal(t, overdue.AddDays(7).String(), sent[0].dueDate)
}

func TestSweepRemindsAgainUntilWatered(t *testing.T) {
	plants, sender, svc := newReminderFixture()
	overdue := models.Today().AddDays(-10)
	p := addPlant(t, plants, "Monstera", "eva@example.com", &overdue, 7)

	svc.sweep()
	svc.sweep()

	// Sulanmadıkça her taramada tekrar hatırlatılır
	require.Len(t, sender.sentMails(), 2)

	require.NoError(t, plants.UpdateLastWatered(context.Background(), p.ID, models.Today()))
	svc.sweep()

	assert.Len(t, sender.sentMails(), 2)
}

func TestSweepIsolatesSendFailures(t *testing.T) {
	plants, sender, svc := newReminderFixture()
	overdue := models.Today().AddDays(-10)

	addPlant(t, plants, "Monstera", "broken@example.com", &overdue, 7)
	addPlant(t, plants, "Fern", "eva@example.com", &overdue, 7)
	sender.failTo["broken@example.com"] = true

	svc.sweep()

	// İlk bitkinin gönderim hatası ikinciyi engellemez
	sent := sender.sentMails()
	require.Len(t, sent, 1)
	assert.Equal(t, "eva@example.com", sent[0].to)
}

func TestSweepSurvivesListError(t *testing.T) {
	plants, sender, svc := newReminderFixture()
	plants.listAllErr = assert.AnError

	// Hata sadece loglanır — panic veya gönderim olmaz
	svc.sweep()
	assert.Empty(t, sender.sentMails())
}
