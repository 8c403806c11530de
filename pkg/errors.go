// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir. errors.New() ile sabit error
// değişkenleri tanımlarız, karşılaştırma errors.Is() ile yapılır:
//
//	if errors.Is(err, pkg.ErrInvalidPlant) { ... }
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları döner, handler pkg.Error ile HTTP status'a çevirir.
//
// ErrInvalidPlant bilinçli olarak hem "bitki yok" hem "bitki başka hesaba ait"
// durumlarını kapsar — iki durumun aynı hatayı dönmesi, bir saldırganın
// başka hesapların bitki ID'lerini yoklamasını engeller. Aynı ilke device
// çözümlemesi için de geçerlidir: registration ID mi yanlış, email mi,
// cevaptan anlaşılamaz.
var (
	ErrInvalidAccount = errors.New("invalid account")
	ErrInvalidSession = errors.New("invalid session")
	ErrInvalidPlant   = errors.New("invalid plant")
	ErrBadRequest     = errors.New("bad request")
	ErrInternal       = errors.New("internal error")
)
