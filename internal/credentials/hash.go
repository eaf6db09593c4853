// Package credentials derives and verifies password credentials and tracks
// failed-login counters with a sliding lockout window.
package credentials

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookit/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	iterations = 100000
	keySize    = 64
)

// Hash derives a credential string from the plaintext password using
// PBKDF2-SHA512 with a fresh random salt. The result is encoded as
// "saltHex:iterations:hashHex"; two calls for the same plaintext produce
// different credentials.
func Hash(plaintext string) string {
	salt := common.GenerateRandByteArray(saltSize)
	key := pbkdf2.Key([]byte(plaintext), salt, iterations, keySize, sha512.New)
	return fmt.Sprintf("%s:%d:%s", hex.EncodeToString(salt), iterations, hex.EncodeToString(key))
}

// Verify reports whether plaintext matches the stored credential. It never
// returns an error: a malformed credential (wrong field count, non-numeric
// iteration count, bad hex) degrades to false.
func Verify(plaintext, credential string) bool {
	parts := strings.Split(credential, ":")
	if len(parts) != 3 {
		return false
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	iter, err := strconv.Atoi(parts[1])
	if err != nil || iter <= 0 {
		return false
	}
	stored, err := hex.DecodeString(parts[2])
	if err != nil || len(stored) == 0 {
		return false
	}

	computed := pbkdf2.Key([]byte(plaintext), salt, iter, len(stored), sha512.New)
	return subtle.ConstantTimeCompare(computed, stored) == 1
}
