// Package storage, bitki fotoğraflarının S3 uyumlu bir bucket'ta saklanmasını yönetir.
//
// ImageStore interface'i ile depolama detayları soyutlanır — service katmanı
// AWS SDK tiplerini hiç görmez. Testlerde fake bir ImageStore yeterlidir.
//
// Fotoğraflar hiçbir zaman public yapılmaz: okuma erişimi kısa ömürlü
// presigned GET URL'leri üzerinden verilir. URL süresi dolunca client
// yenisini ister (GET /plants yeni URL'lerle döner).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/botaniclock/server/pkg/cache"
)

const (
	// presignExpiry, presigned GET URL'lerinin geçerlilik süresi.
	presignExpiry = 60 * time.Second

	// urlCacheTTL, presigned URL cache'inin TTL'i.
	// presignExpiry'den kısa olmalı — cache'ten dönen URL hâlâ geçerli kalsın.
	urlCacheTTL = 30 * time.Second

	jpegQuality = 85
)

// ImageStore, bitki fotoğrafı depolama interface'i.
type ImageStore interface {
	// AddImage, görüntüyü JPEG olarak encode edip bucket'a yazar
	// ve üretilen object key'i döner.
	AddImage(ctx context.Context, img image.Image) (string, error)
	// DeleteImage, object'i bucket'tan siler. Key yoksa hata dönmez.
	DeleteImage(ctx context.Context, key string) error
	// ImageURL, key için kısa ömürlü bir presigned GET URL üretir.
	ImageURL(ctx context.Context, key string) (string, error)
}

// Config, S3 bağlantı ayarları.
// Endpoint boş bırakılırsa gerçek AWS'e gidilir; MinIO gibi S3 uyumlu
// bir servis için doldurulur (ör: http://localhost:9000).
type Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Endpoint  string
}

// s3Store, AWS SDK v2 ile çalışan ImageStore implementasyonu.
type s3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string

	// urlCache: aynı key için arka arkaya istenen presigned URL'leri
	// yeniden imzalamamak için. Liste endpoint'i her bitki için URL üretir,
	// cache olmadan her sayfa yenilemesi N imzalama demek olurdu.
	urlCache *cache.TTLCache[string, string]
}

// NewS3Store, S3 client'ı kurar ve ImageStore döner.
func NewS3Store(ctx context.Context, cfg Config) (ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO virtual-host style bucket adreslemesini desteklemez
			o.UsePathStyle = true
		}
	})

	return &s3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		urlCache:  cache.New[string, string](urlCacheTTL, 5*time.Minute),
	}, nil
}

func (s *s3Store) AddImage(ctx context.Context, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	key := newStorageKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return key, nil
}

func (s *s3Store) DeleteImage(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	s.urlCache.Delete(key)
	return nil
}

func (s *s3Store) ImageURL(ctx context.Context, key string) (string, error) {
	if url, ok := s.urlCache.Get(key); ok {
		return url, nil
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign image url: %w", err)
	}

	s.urlCache.Set(key, req.URL)
	return req.URL, nil
}

// newStorageKey, tarih prefix'li rastgele bir object key üretir.
// Prefix bucket'ı tarayarak debug etmeyi kolaylaştırır, uuid çakışmayı önler.
func newStorageKey() string {
	now := time.Now().UTC()
	return fmt.Sprintf("plants/%d/%02d/%02d/%s", now.Year(), now.Month(), now.Day(), uuid.NewString())
}
