// Package commitment implements a hash-based commitment: SHA-256(serialized value || "||" || nonce).
//
// The scheme binds computationally under second-preimage resistance of SHA-256 and hides only as
// long as the nonce stays secret and is never reused. There is no domain separation between value
// types; callers must avoid values of different types that serialize identically.
package commitment

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spacemeshos/sha256-simd"

	"github.com/Danielskry/SpectralZK/internal/random"
)

const (
	// NonceBytes is the number of random bytes in a generated nonce.
	NonceBytes = 16

	separator = "||"
)

var ErrSerialize = errors.New("commitment: value cannot be serialized")

type option struct {
	nonce *string
	rand  io.Reader
}

type Option func(*option)

// WithNonce commits with the given nonce instead of drawing a fresh one.
func WithNonce(nonce string) Option {
	return func(o *option) {
		o.nonce = &nonce
	}
}

// WithRandomness sets the source fresh nonces are drawn from. Defaults to crypto/rand.Reader.
func WithRandomness(r io.Reader) Option {
	return func(o *option) {
		o.rand = r
	}
}

// Create commits to value and returns the hex-encoded commitment together with the nonce used.
func Create(value any, opts ...Option) (commitment, nonce string, err error) {
	options := &option{}
	for _, opt := range opts {
		opt(options)
	}

	if options.nonce != nil {
		nonce = *options.nonce
	} else {
		nonce, err = random.Hex(options.rand, NonceBytes)
		if err != nil {
			return "", "", fmt.Errorf("commitment: draw nonce: %w", err)
		}
	}

	serialized, err := Serialize(value)
	if err != nil {
		return "", "", err
	}

	return digest(serialized, nonce), nonce, nil
}

// CreateVector commits to all values jointly, as a single ordered value.
func CreateVector[T any](values []T, opts ...Option) (commitment, nonce string, err error) {
	return Create(values, opts...)
}

// Verify reports whether commitment opens to value under nonce.
func Verify(commitment string, value any, nonce string) bool {
	expected, _, err := Create(value, WithNonce(nonce))
	if err != nil {
		return false
	}
	return commitment == expected
}

// Serialize returns the canonical text a value is committed as. Strings are used verbatim; any other
// value is JSON-encoded with object keys sorted, so structurally equal values serialize identically.
func Serialize(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	// Round-trip through a generic tree: struct fields become object keys, which encoding/json
	// emits sorted.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	canonical, err := json.Marshal(tree)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return string(canonical), nil
}

func digest(serialized, nonce string) string {
	sum := sha256.Sum256([]byte(serialized + separator + nonce))
	return hex.EncodeToString(sum[:])
}
