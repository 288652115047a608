package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PasswordHasher defines operations for hashing and verifying passwords.
type PasswordHasher interface {
	// Hash derives a hash from the plaintext password and returns it in an
	// encoded form that embeds the derivation parameters.
	Hash(password string) (string, error)

	// Compare compares a stored encoded hash with a plaintext candidate.
	// Returns nil on success, ErrPasswordMismatch when the password does not
	// match, or ErrInvalidHashFormat when the stored hash cannot be parsed.
	Compare(encodedHash, password string) error
}

// Argon2idParams holds the cost parameters for Argon2id key derivation.
type Argon2idParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2idParams returns the standard cost parameters used for new hashes.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2idHasher implements PasswordHasher using the Argon2id key
// derivation function. Hashes are encoded in the standard
// $argon2id$v=19$m=...,t=...,p=...$salt$hash form, so hashes produced
// with older cost parameters still verify.
type Argon2idHasher struct {
	params Argon2idParams
}

// Ensure Argon2idHasher implements PasswordHasher interface
var _ PasswordHasher = (*Argon2idHasher)(nil)

// NewArgon2idHasher creates a hasher with the default cost parameters.
func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{params: DefaultArgon2idParams()}
}

// NewArgon2idHasherWithParams creates a hasher with custom cost parameters.
// Intended for tests that need cheap hashing.
func NewArgon2idHasherWithParams(params Argon2idParams) *Argon2idHasher {
	return &Argon2idHasher{params: params}
}

// Hash implements the PasswordHasher interface.
func (h *Argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Compare implements the PasswordHasher interface. The comparison uses
// the parameters embedded in the stored hash and is constant-time on the
// derived keys.
func (h *Argon2idHasher) Compare(encodedHash, password string) error {
	params, salt, key, err := decodeArgon2idHash(encodedHash)
	if err != nil {
		return err
	}

	candidate := argon2.IDKey(
		[]byte(password),
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		uint32(len(key)),
	)

	if subtle.ConstantTimeCompare(key, candidate) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// decodeArgon2idHash parses an encoded Argon2id hash into its parameters,
// salt, and derived key.
func decodeArgon2idHash(encodedHash string) (Argon2idParams, []byte, []byte, error) {
	var params Argon2idParams

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("%w: expected $argon2id$ encoding", ErrInvalidHashFormat)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, fmt.Errorf("%w: unparseable version: %v", ErrInvalidHashFormat, err)
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrInvalidHashFormat, version)
	}

	if _, err := fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.Memory,
		&params.Iterations,
		&params.Parallelism,
	); err != nil {
		return params, nil, nil, fmt.Errorf("%w: unparseable cost parameters: %v", ErrInvalidHashFormat, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: unparseable salt: %v", ErrInvalidHashFormat, err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: unparseable key: %v", ErrInvalidHashFormat, err)
	}

	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))
	return params, salt, key, nil
}
