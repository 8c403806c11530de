// Package main, BotaniClock backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'larla)
//  3. S3 image store'u kur
//  4. Repository'leri oluştur (DB bağlantısı ile)
//  5. Service'leri oluştur (repository'ler + store + sender ile)
//  6. Reminder taramasını başlat
//  7. Handler'ları oluştur (service'ler ile)
//  8. HTTP router'ı kur, route'ları bağla
//  9. CORS yapılandır
// 10. HTTP Server'ı başlat
// 11. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/botaniclock/server/config"
	"github.com/botaniclock/server/database"
	"github.com/botaniclock/server/handlers"
	"github.com/botaniclock/server/pkg/email"
	"github.com/botaniclock/server/pkg/ratelimit"
	"github.com/botaniclock/server/pkg/storage"
	"github.com/botaniclock/server/repository"
	"github.com/botaniclock/server/services"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] botaniclock server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to load embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. S3 Image Store ───
	imageStore, err := storage.NewS3Store(context.Background(), storage.Config{
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		Endpoint:  cfg.S3.Endpoint,
	})
	if err != nil {
		log.Fatalf("[main] failed to initialize image store: %v", err)
	}

	// ─── 4. Repository Layer ───
	accountRepo := repository.NewSQLiteAccountRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	plantRepo := repository.NewSQLitePlantRepo(db.Conn)

	// ─── 5. Service Layer ───
	emailSender := email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail)

	authService := services.NewAuthService(accountRepo, sessionRepo, plantRepo, imageStore)
	plantService := services.NewPlantService(plantRepo, accountRepo, authService, imageStore)

	// ─── 6. Reminder Service ───
	reminder := services.NewReminderService(plantRepo, emailSender, cfg.Reminder.Interval)
	reminder.Start()

	// ─── 7. Handler Layer ───
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)
	accountHandler := handlers.NewAccountHandler(authService, loginLimiter)
	plantHandler := handlers.NewPlantHandler(plantService)
	deviceHandler := handlers.NewDeviceHandler(plantService)

	// ─── 8. HTTP Router ───
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"botaniclock"}`)
	})

	// Session — cookie geçerlilik kontrolü
	mux.HandleFunc("POST /api/v1/session", accountHandler.Session)

	// Account — login/signup public, diğerleri body'deki şifre ile doğrular
	mux.HandleFunc("POST /api/v1/account/login", accountHandler.Login)
	mux.HandleFunc("POST /api/v1/account/signup", accountHandler.SignUp)
	mux.HandleFunc("POST /api/v1/account/logout", accountHandler.Logout)
	mux.HandleFunc("POST /api/v1/account/password", accountHandler.ChangePassword)
	mux.HandleFunc("POST /api/v1/account/delete", accountHandler.DeleteAccount)

	// Plants — hepsi cookie ister, yetki kontrolü service katmanında
	mux.HandleFunc("GET /api/v1/plants", plantHandler.List)
	mux.HandleFunc("POST /api/v1/plants", plantHandler.Create)
	mux.HandleFunc("PUT /api/v1/plants", plantHandler.Update)
	mux.HandleFunc("GET /api/v1/plants/{plantID}", plantHandler.Get)
	mux.HandleFunc("PUT /api/v1/plants/{plantID}", plantHandler.UploadImage)
	mux.HandleFunc("DELETE /api/v1/plants/{plantID}", plantHandler.Delete)

	// Devices — cookie yok, kimlik body'deki {registrationID, accountEmail}
	mux.HandleFunc("POST /api/v1/devices", deviceHandler.Register)
	mux.HandleFunc("PUT /api/v1/devices", deviceHandler.UpdateTimestamp)

	// ─── 9. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // frontend dev server
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true, // cookie tabanlı auth için şart
		Debug:            false,
	})

	handler := corsHandler.Handler(mux)

	// ─── 10. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 11. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce reminder taramasını durdur — yarıda kalan sweep tamamlanabilir
	// ama yenisi başlamaz. Sonra HTTP server'ı kapat: yeni request kabul
	// etmeyi durdurur, mevcut request'lerin bitmesini bekler (5sn timeout).
	reminder.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
