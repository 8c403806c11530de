// Package random, cryptographically secure rastgele token string'leri üretir.
//
// Session token'ları ve bitki registration ID'leri buradan gelir.
// math/rand KULLANILMAZ — tahmin edilebilir token, oturum çalmak demektir.
package random

import (
	"crypto/rand"
	"fmt"
)

// alphabet, üretilen token'larda kullanılan karakter kümesi.
// Alfanumerik: cookie değeri ve URL içinde escape gerektirmez.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// String, n karakter uzunluğunda rastgele bir token döner.
// crypto/rand okunamazsa error döner — caller bunu internal error olarak ele alır.
func String(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}

	return string(buf), nil
}
