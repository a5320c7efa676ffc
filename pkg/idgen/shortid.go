package idgen

import (
	"math/rand/v2"
	"strings"
)

const (
	// Alphabet is the character set of public file ids.
	Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// ShortIDLength gives 36^6 (~2.2e9) ids. Collisions are not checked.
	ShortIDLength = 6

	UploaderPrefix = "up_"
)

// ShortID returns a random lowercase alphanumeric id of ShortIDLength chars.
func ShortID() string {
	var b strings.Builder
	b.Grow(ShortIDLength)
	for i := 0; i < ShortIDLength; i++ {
		b.WriteByte(Alphabet[rand.IntN(len(Alphabet))])
	}
	return b.String()
}

// UploaderID returns a client session token such as "up_k3x9ab".
func UploaderID() string {
	return UploaderPrefix + ShortID()
}

// ShortIDGenerator adapts ShortID to interfaces that need a generator value.
type ShortIDGenerator struct{}

func (ShortIDGenerator) NewFileID() string {
	return ShortID()
}
