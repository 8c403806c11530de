package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// HTTPResponseBody, kaynak dönmeyen tüm endpoint'lerin standart yanıt gövdesi.
// Frontend ve IoT cihazlar her zaman aynı yapıyı bekler:
//
//	{"status": 200, "message": "COOKIE_VALID", "timeStamp": 1735689600000}
//
// Kaynak dönen endpoint'ler (GET /plants vb.) bunun yerine doğrudan
// kaynağın JSON'ını döner — bkz. JSON().
type HTTPResponseBody struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	TimeStamp int64  `json:"timeStamp"` // epoch millis — yanıtın üretildiği an
}

// Body, standart envelope ile yanıt gönderir.
func Body(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := HTTPResponseBody{
		Status:    status,
		Message:   message,
		TimeStamp: time.Now().UnixMilli(),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// JSON, bir kaynağı (Plant, []Plant) envelope'suz serialize eder.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// Error, domain error'ını HTTP status'a çevirip envelope ile gönderir.
// errors.Is() error chain'ini kontrol eder — wrap edilmiş error'lar da match eder.
func Error(w http.ResponseWriter, err error) {
	Body(w, mapErrorToStatus(err), err.Error())
}

// mapErrorToStatus, domain error'larını HTTP status code'larına eşler.
//
// Geçersiz session 403 döner (401 değil): cookie hiç yoksa da, süresi
// dolmuşsa da client'ın yapacağı şey aynıdır — login sayfasına dön.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidSession):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidPlant):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidAccount):
		return http.StatusBadRequest
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
