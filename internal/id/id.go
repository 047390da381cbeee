// Package id mints prefixed nanoid identifiers ("item-...", "camp-...").
// The prefix makes IDs self-describing in logs and plan files.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns "<prefix>-<nanoid>". Fails only when the system
// cannot supply secure randomness.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + suffix, nil
}

// MustGenerate panics when entropy is unavailable. For initialization
// paths where that should crash the program.
func MustGenerate(prefix string) string {
	generated, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("generate id: %v", err))
	}
	return generated
}
