// Package random draws protocol randomness from an injectable source.
// Every caller defaults to crypto/rand.Reader; tests may pass a deterministic reader.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var ErrInvalidBound = errors.New("random: bound must be positive")

// Source returns r, or crypto/rand.Reader when r is nil.
func Source(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader
	}
	return r
}

// Bytes reads n bytes from r.
func Bytes(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Source(r), b); err != nil {
		return nil, fmt.Errorf("random: read %d bytes: %w", n, err)
	}
	return b, nil
}

// Hex reads n bytes from r and returns them hex-encoded (2n characters).
func Hex(r io.Reader, n int) (string, error) {
	b, err := Bytes(r, n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Intn returns a uniform integer in [0, n).
func Intn(r io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}
	v, err := rand.Int(Source(r), big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("random: draw below %d: %w", n, err)
	}
	return int(v.Int64()), nil
}

// Uint32 returns 32 uniformly random bits.
func Uint32(r io.Reader) (uint32, error) {
	b, err := Bytes(r, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}
