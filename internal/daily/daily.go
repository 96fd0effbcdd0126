package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic scramble seed for a date using
// HMAC(salt, YYYY-MM-DD). Everyone who plays on the same date with the
// same salt gets the same puzzle.
func Seed(date time.Time, salt string) int64 {
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// take first 8 bytes as the seed
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
