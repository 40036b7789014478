package events

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns the hex HMAC-SHA256 of body under key.
func Sign(key string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches body under key. An empty key
// means signing is not configured and every payload is accepted.
func Verify(key string, body []byte, signature string) bool {
	if key == "" {
		return true
	}
	return hmac.Equal([]byte(Sign(key, body)), []byte(signature))
}
