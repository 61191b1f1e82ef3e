// Package auth verifies the shared credential pair used by the owner
// login flow. The configured strings are hashed once at startup so the
// plain values never sit in long-lived process state; verification is
// an exact match, argon2id just carries the comparison.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, per OWASP recommendations.
const (
	memory      = 64 * 1024
	iterations  = 3
	parallelism = 2
	saltLength  = 16
	keyLength   = 32
)

// Credentials holds the hashed username/password pair.
type Credentials struct {
	username string
	password string
}

// NewCredentials hashes the configured pair.
func NewCredentials(username, password string) (Credentials, error) {
	hu, err := hashSecret(username)
	if err != nil {
		return Credentials{}, fmt.Errorf("hashing username: %w", err)
	}
	hp, err := hashSecret(password)
	if err != nil {
		return Credentials{}, fmt.Errorf("hashing password: %w", err)
	}
	return Credentials{username: hu, password: hp}, nil
}

// MatchUsername reports whether input is exactly the configured username.
func (c Credentials) MatchUsername(input string) bool {
	ok, err := compareSecret(input, c.username)
	return err == nil && ok
}

// MatchPassword reports whether input is exactly the configured password.
func (c Credentials) MatchPassword(input string) bool {
	ok, err := compareSecret(input, c.password)
	return err == nil && ok
}

// hashSecret produces an encoded argon2id hash carrying its own salt
// and parameters.
func hashSecret(secret string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(secret), salt, iterations, memory, parallelism, keyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, iterations, parallelism, b64Salt, b64Hash), nil
}

// compareSecret re-hashes input with the parameters encoded in the
// stored hash and compares in constant time.
func compareSecret(input, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}

	var version, mem, iter, par int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, err
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par); err != nil {
		return false, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(input), salt, uint32(iter), uint32(mem), uint8(par), uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}
