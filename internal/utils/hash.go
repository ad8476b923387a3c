// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters follow the OWASP (2024) recommendation:
// 1 iteration, 64 MiB memory, 4 threads, 32-byte key.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	saltLen = 16
)

// NewPasswordSalt reads saltLen random bytes from the OS CSPRNG and returns
// them hex-encoded, ready to be stored next to the password hash.
// Returns an error only if the random read fails.
func NewPasswordSalt() (string, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating password salt: %w", err)
	}

	return hex.EncodeToString(salt), nil
}

// HashPassword derives an argon2id digest of password with the given
// hex-encoded salt and returns it hex-encoded.
//
// The same (password, salt) pair always produces the same digest, so the
// result can be compared against a stored hash during login.
func HashPassword(password, salt string) (string, error) {
	rawSalt, err := hex.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("error decoding password salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), rawSalt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(digest), nil
}

// VerifyPassword re-derives the digest for password with the stored salt and
// compares it against the stored hash in constant time.
//
// Returns false both for a mismatch and for a malformed salt; the caller
// treats either case as a failed login.
func VerifyPassword(password, salt, storedHash string) bool {
	computed, err := HashPassword(password, salt)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
