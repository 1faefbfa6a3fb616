package pkg

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const (
	roomIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	roomIDLength   = 7
)

// GenerateRoomID returns a short shareable room code drawn from a
// high-entropy source. Callers are expected to check for collisions against
// live rooms and retry.
func GenerateRoomID() string {
	id := make([]byte, roomIDLength)
	for i := range id {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomIDAlphabet))))
		if err != nil {
			panic(err) // crypto/rand failing means the host is broken
		}
		id[i] = roomIDAlphabet[n.Int64()]
	}

	return string(id)
}

// GenerateSessionID mints the identifier for a live connection.
func GenerateSessionID() string {
	return uuid.NewString()
}
