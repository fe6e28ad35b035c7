package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var hashSalt string

func init() {
	// In production, set LOG_HASH_SALT.
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		hashSalt = "default-salt-change-in-production"
	}
}

// HashEmail creates a privacy-preserving hash of an email address so user
// activity can be correlated in logs without exposing the address itself.
func HashEmail(email string) string {
	data := fmt.Sprintf("%s:%s", strings.ToLower(strings.TrimSpace(email)), hashSalt)
	hash := sha256.Sum256([]byte(data))
	// First 8 characters are enough to correlate.
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeNote redacts a free-text note while preserving length information
// for debugging.
func SanitizeNote(note string) string {
	if note == "" {
		return "<empty>"
	}
	words := strings.Fields(note)
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(words), len(note))
}
