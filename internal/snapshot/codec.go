// Package snapshot encodes whole collections into versioned JSON envelopes
// and decodes them back with strict checks.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
)

// Version is the envelope format written by this package
const Version = 1

// ErrMalformed is wrapped by every decoding failure
var ErrMalformed = errors.New("malformed snapshot")

// Envelope is the persisted layout of one collection
type Envelope struct {
	Version int             `json:"version"`
	Kind    string          `json:"kind"`
	SavedAt time.Time       `json:"savedAt"`
	Records json.RawMessage `json:"records"`
}

// Codec serializes a slice of T under a fixed collection kind. Check, when
// set, runs on every decoded record after tag validation.
type Codec[T any] struct {
	Kind      string
	Check     func(T) error
	validator *validator.Validate
}

// New returns a codec for the named collection
func New[T any](kind string, v *validator.Validate) *Codec[T] {
	if v == nil {
		v = validator.New()
	}
	return &Codec[T]{Kind: kind, validator: v}
}

// Encode wraps records in an envelope stamped with savedAt
func (c *Codec[T]) Encode(records []T, savedAt time.Time) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode %s records: %w", c.Kind, err)
	}
	return json.Marshal(Envelope{
		Version: Version,
		Kind:    c.Kind,
		SavedAt: savedAt.UTC(),
		Records: raw,
	})
}

// Decode parses data written by Encode. Unknown versions, another
// collection's kind, unknown fields and records failing validation are all
// rejected with ErrMalformed.
func (c *Codec[T]) Decode(data []byte) ([]T, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var env Envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %s envelope: %v", ErrMalformed, c.Kind, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: %s: trailing data after envelope", ErrMalformed, c.Kind)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", ErrMalformed, c.Kind, env.Version)
	}
	if env.Kind != c.Kind {
		return nil, fmt.Errorf("%w: expected kind %q, found %q", ErrMalformed, c.Kind, env.Kind)
	}
	if len(env.Records) == 0 || bytes.Equal(env.Records, []byte("null")) {
		return nil, fmt.Errorf("%w: %s: missing records", ErrMalformed, c.Kind)
	}

	rdec := json.NewDecoder(bytes.NewReader(env.Records))
	rdec.DisallowUnknownFields()

	var records []T
	if err := rdec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %s records: %v", ErrMalformed, c.Kind, err)
	}
	for i := range records {
		if err := c.validator.Struct(&records[i]); err != nil {
			return nil, fmt.Errorf("%w: %s record %d: %v", ErrMalformed, c.Kind, i, err)
		}
		if c.Check != nil {
			if err := c.Check(records[i]); err != nil {
				return nil, fmt.Errorf("%w: %s record %d: %v", ErrMalformed, c.Kind, i, err)
			}
		}
	}
	return records, nil
}
