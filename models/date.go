package models

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout, API'de ve veritabanında kullanılan tarih formatı (ISO 8601 gün).
const dateLayout = "2006-01-02"

// Date, saat/timezone bilgisi olmayan bir takvim gününü temsil eder.
//
// Neden time.Time yerine ayrı bir tip?
// lastWatered bir "gün"dür, bir "an" değil — kullanıcı bitkiyi sabah mı
// akşam mı suladı umurumuzda değil. time.Time'ı doğrudan kullansaydık
// JSON'a RFC3339 timestamp olarak çıkar, gün karşılaştırmaları da
// timezone'a göre kayardı. Date tüm değerleri UTC gece yarısına normalize eder.
type Date struct {
	t time.Time
}

// NewDate, verilen yıl/ay/gün için bir Date oluşturur.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today, bugünün tarihini (yerel saat diliminde gün) döner.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, m, d)
}

// ParseDate, "2006-01-02" formatındaki string'i Date'e çevirir.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// AddDays, n gün sonrasını döner. Ay/yıl taşmalarını time.AddDate halleder.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Before, d'nin o'dan önce olup olmadığını döner.
func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

// Equal, iki tarihin aynı gün olup olmadığını döner.
func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

// String, "2006-01-02" formatında döner — email metinlerinde kullanılır.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// MarshalJSON, Date'i `"2006-01-02"` olarak serialize eder.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON, `"2006-01-02"` veya `null` kabul eder.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
