// Package audit holds the pure parts of the flow audit trail: payload digests and history checks.
package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const (
	AlgorithmSHA256     = "sha256"
	AlgorithmSHA512     = "sha512"
	AlgorithmHMACSHA256 = "hmac-sha256"
	AlgorithmBLAKE2b256 = "blake2b-256"
)

var (
	ErrUnknownDigestAlgorithm = errors.New("unknown audit digest algorithm")
	ErrMissingDigestKey       = errors.New("audit digest key required for keyed algorithm")
)

// Digester hashes transition payloads. Payloads are JSON encoded first; map keys are sorted by
// encoding/json so equal payloads give equal digests.
type Digester struct {
	algorithm string
	newHash   func() hash.Hash
}

func NewDigester(algorithm, key string) (*Digester, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	if algorithm == "" {
		algorithm = AlgorithmSHA256
	}

	d := &Digester{algorithm: algorithm}
	switch algorithm {
	case AlgorithmSHA256:
		d.newHash = sha256.New
	case AlgorithmSHA512:
		d.newHash = sha512.New
	case AlgorithmHMACSHA256:
		if key == "" {
			return nil, ErrMissingDigestKey
		}
		k := []byte(key)
		d.newHash = func() hash.Hash { return hmac.New(sha256.New, k) }
	case AlgorithmBLAKE2b256:
		var k []byte
		if key != "" {
			k = []byte(key)
		}
		if _, err := blake2b.New256(k); err != nil {
			return nil, fmt.Errorf("blake2b key: %w", err)
		}
		d.newHash = func() hash.Hash {
			h, _ := blake2b.New256(k)
			return h
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDigestAlgorithm, algorithm)
	}
	return d, nil
}

func (d *Digester) Algorithm() string {
	return d.algorithm
}

func (d *Digester) Digest(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode audit payload: %w", err)
	}
	h := d.newHash()
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil)), nil
}
