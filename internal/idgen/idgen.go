// Package idgen hands out short correlation ids for listings and API requests.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Id prefixes, one per kind of thing being correlated.
const (
	RequestPrefix    = "req-"
	ControllerPrefix = "lst-"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length is the number of random characters after the prefix.
	Length = 10
)

// GenerateWithPrefix returns prefix followed by Length random characters.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// MustGenerate is GenerateWithPrefix for ids that are only informational: a
// failing random source yields prefix+"unknown" instead of an error.
func MustGenerate(prefix string) string {
	id, err := GenerateWithPrefix(prefix)
	if err != nil {
		return prefix + "unknown"
	}
	return id
}
