// Package auth implements the password credential scheme: PBKDF2 key
// derivation for stored password hashes and the reversible remember-me
// token used by the local credential cache.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 32
	iterations = 100000
	keyBytes   = 32
)

// ErrMalformedToken is returned when a remember-me token cannot be decoded.
var ErrMalformedToken = errors.New("malformed credential token")

// DeriveCredential generates a random salt and derives the password hash
// with PBKDF2-HMAC-SHA256. Both values are returned hex-encoded.
func DeriveCredential(password string) (hash, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = hex.EncodeToString(raw)
	return derive(password, salt), salt, nil
}

// derive keys over the hex-encoded salt string, not the raw salt bytes;
// stored hashes depend on that.
func derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyBytes, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyCredential recomputes the derivation for a candidate password and
// compares it to the stored hash in constant time.
func VerifyCredential(storedHash, storedSalt, candidate string) bool {
	computed := derive(candidate, storedSalt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// ObfuscateCredentials encodes a username/password pair for the local
// remember-me file. This is plain base64, not encryption; the file is a
// convenience cache, not secure storage.
func ObfuscateCredentials(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// DeobfuscateCredentials reverses ObfuscateCredentials. The pair is split on
// the first colon, so usernames must not contain one; passwords may.
func DeobfuscateCredentials(token string) (username, password string, err error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", ErrMalformedToken
	}
	return username, password, nil
}
