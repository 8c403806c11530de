// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile email gönderim detayları soyutlanır (Dependency Inversion).
// Şu anki implementasyon Resend API kullanır. İleride farklı bir sağlayıcıya
// geçmek için sadece yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
//
// Bu paket dışarıya iki şey sunar:
// 1. EmailSender interface — ReminderService buna bağımlı olur
// 2. NewResendSender constructor — main.go'da wire-up için
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	// SendWateringReminder, sulaması geciken bitki için hatırlatma gönderir.
	// toEmail: bitki sahibinin adresi, plantName: bitkinin adı,
	// dueDate: sulamanın yapılması gereken gün ("2006-01-02" formatında).
	SendWateringReminder(ctx context.Context, toEmail, plantName, dueDate string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@botaniclock.com)
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Gönderici email adresi — Resend'de doğrulanmış domain altında olmalı.
func NewResendSender(apiKey, fromEmail string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

// SendWateringReminder, sulama hatırlatma email'i gönderir.
//
// Subject: "<plantName> is ready to be watered"
// Body: bitkinin sulanması gereken tarihi söyleyen kısa bir metin.
// İsimsiz bitkiler için subject "Your plant is ready to be watered" olur.
func (s *resendSender) SendWateringReminder(ctx context.Context, toEmail, plantName, dueDate string) error {
	displayName := plantName
	if displayName == "" {
		displayName = "Your plant"
	}

	text := fmt.Sprintf(
		"It looks like %s was set to be watered on %s. Be sure to water it now!",
		displayName, dueDate,
	)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("BotaniClock <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("%s is ready to be watered", displayName),
		Text:    text,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send watering reminder email: %w", err)
	}

	return nil
}
