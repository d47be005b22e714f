// Package id generates neutral identifiers: prefixed, sortable,
// storage-independent short IDs assigned to every persisted entity at
// creation and never reused.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Base62 alphabet: 0-9, A-Z, a-z. Ordinal order matches ASCII so encoded
// timestamps sort lexicographically.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	timestampLength = 7
	randomLength    = 9
)

// Prefixes for each entity type (Stripe-style).
const (
	PrefixOrganisation   = "org"
	PrefixPerson         = "per"
	PrefixGrant          = "gra"
	PrefixProject        = "prj"
	PrefixAllocation     = "alc"
	PrefixParticipant    = "ptc"
	PrefixCategoryScheme = "cs"
	PrefixCategoryTerm   = "ct"
	PrefixCategorisation = "cn"
)

// New generates a neutral identifier with the given entity prefix, e.g.
// "gra_0QxT3fK9dLmPq2Rs". The body is a base62 millisecond timestamp
// followed by random base62 characters, so IDs sort by creation time.
func New(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("id prefix is required")
	}

	ts := encodeBase62(time.Now().UnixMilli(), timestampLength)

	random := make([]byte, randomLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := range random {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random id: %w", err)
		}
		random[i] = alphabet[n.Int64()]
	}

	return prefix + "_" + ts + string(random), nil
}

// MustNew is New for call sites where a failing entropy source is fatal.
func MustNew(prefix string) string {
	v, err := New(prefix)
	if err != nil {
		panic(err)
	}
	return v
}

// HasPrefix reports whether the identifier carries the given entity prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"_")
}

func encodeBase62(n int64, width int) string {
	if n < 0 {
		n = 0
	}
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = alphabet[n%62]
		n /= 62
	}
	return string(buf)
}
