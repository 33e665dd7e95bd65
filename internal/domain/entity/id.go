package entity

import (
	"crypto/rand"
	"encoding/hex"
)

const idLength = 24

// NewID генерирует 24-символьный hex-идентификатор.
// Формат позволяет по виду строки отличать ID от email в поисковых
// запросах (см. ContestService.FindBySearch).
func NewID() string {
	buf := make([]byte, idLength/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand на поддерживаемых платформах не возвращает ошибок
		panic("entity: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// IsValidID проверяет, что строка — корректный 24-символьный hex-идентификатор
func IsValidID(s string) bool {
	if len(s) != idLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
