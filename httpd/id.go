package httpd

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// genID returns a 32-hex-char identifier used to correlate the log
// lines belonging to one connection.
func genID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err == nil {
		return hex.EncodeToString(b[:])
	}
	// Fallback to a timestamp-derived ID if rand fails (unlikely).
	t := time.Now().UnixNano()
	for i := range b {
		b[i] = byte(t >> (uint(i%8) * 8))
	}
	return hex.EncodeToString(b[:])
}
