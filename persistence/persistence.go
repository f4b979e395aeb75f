// Package persistence stores the public record of a session, so that the verdict can be
// re-checked later from the seed and size alone.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/Danielskry/SpectralZK/protocol"
	"github.com/Danielskry/SpectralZK/shared"
	"github.com/Danielskry/SpectralZK/verifying"
)

// RecordVersion is the current version of the record file format.
const RecordVersion = 1

var (
	// ErrRecordMissing is returned when the record file does not exist.
	ErrRecordMissing = errors.New("record file is missing")

	ErrIncompleteSession = errors.New("session is incomplete")
)

// Record is everything the verifier saw during a session. The witness path and the nonce it was
// committed with are never part of it.
type Record struct {
	Version int `json:",omitempty"`

	Seed int64
	Size int

	Challenge shared.Challenge
	Response  shared.Response
	Verified  bool
}

// NewRecord extracts the public part of a completed session.
func NewRecord(t *protocol.Transcript) (*Record, error) {
	if t == nil || t.Instance == nil || t.Challenge == nil || t.Response == nil {
		return nil, ErrIncompleteSession
	}

	resp := *t.Response
	resp.Nonce = ""
	resp.RevealedSteps = append([]shared.RevealedStep(nil), t.Response.RevealedSteps...)

	ch := *t.Challenge
	ch.Positions = append([]int(nil), t.Challenge.Positions...)

	return &Record{
		Version:   RecordVersion,
		Seed:      t.Seed,
		Size:      t.Instance.Size,
		Challenge: ch,
		Response:  resp,
		Verified:  t.Verified,
	}, nil
}

// SaveRecord writes the record to filename. The file is replaced atomically.
func SaveRecord(filename string, r *Record) error {
	tmp, err := os.Create(fmt.Sprintf("%s.tmp", filename))
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	defer tmp.Close()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close tmp file %s: %w", tmp.Name(), err)
	}

	if err := atomic.ReplaceFile(tmp.Name(), filename); err != nil {
		return fmt.Errorf("atomic replace: %w", err)
	}
	return nil
}

func LoadRecord(filename string) (*Record, error) {
	file, err := os.Open(filename)
	switch {
	case os.IsNotExist(err):
		return nil, ErrRecordMissing
	case err != nil:
		return nil, fmt.Errorf("could not open record file: %w", err)
	}
	defer file.Close()

	r := &Record{}
	if err := json.NewDecoder(file).Decode(r); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	if r.Version != RecordVersion {
		return nil, shared.InvalidParamError{
			Param:    "Version",
			Expected: fmt.Sprint(RecordVersion),
			Given:    fmt.Sprint(r.Version),
		}
	}
	return r, nil
}

// Reverify regenerates the instance from the recorded seed and size and checks the recorded
// response against it. It returns nil if the response is valid.
func Reverify(r *Record, opts ...protocol.OptionFunc) error {
	p, err := protocol.New(append(opts, protocol.WithSeed(r.Seed))...)
	if err != nil {
		return err
	}
	inst, err := p.CreateInstance(r.Size)
	if err != nil {
		return err
	}
	return verifying.Verify(inst, &r.Challenge, &r.Response)
}
