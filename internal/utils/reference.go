package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	OrderReferencePrefix = "SV-"
	referenceAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	referenceLength      = 6
)

// GenerateOrderReference returns a short shareable code such as "SV-7KQ2XM".
// Ambiguous characters (0/O, 1/I) are left out of the alphabet.
func GenerateOrderReference() string {
	var b strings.Builder
	b.WriteString(OrderReferencePrefix)

	limit := big.NewInt(int64(len(referenceAlphabet)))
	for i := 0; i < referenceLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// fallback: time-based entropy
			n = big.NewInt((time.Now().UnixNano() >> i) % int64(len(referenceAlphabet)))
		}
		b.WriteByte(referenceAlphabet[n.Int64()])
	}

	return b.String()
}

// GenerateTrackingToken returns the long secret used to verify an order.
func GenerateTrackingToken() string {
	return uuid.New().String()
}
