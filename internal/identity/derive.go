// Package identity derives deterministic, content-addressed identifiers
// for widgets from their declared shape and an optional user-supplied key.
package identity

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// GeneratedKeyPrefix marks identities produced by Derive, so generated
// identifiers are easy to tell apart from anything user-supplied.
const GeneratedKeyPrefix = "$$WIDGET_ID"

// noKeySentinel stands in for an absent user key in the identity suffix.
// A widget keyed with the literal string "none" still differs from an
// unkeyed widget because the key also feeds claim-set checks.
const noKeySentinel = "none"

// Derive computes a widget identity from its element type, its canonically
// encoded configuration, and an optional user key.
//
// The identity includes the user key as a suffix so widgets with identical
// configuration can still be distinct, and a fixed prefix so generated
// identifiers are recognizable.
//
// Pure function: identical inputs always yield identical identities, and
// the digest is byte-stable across process restarts. MD5 is used for
// distribution only; accidental collisions between unrelated widgets are
// the concern, not adversarial ones.
func Derive(elementType string, encodedConfig []byte, userKey string) string {
	h := md5.New()
	io.WriteString(h, elementType)
	h.Write(encodedConfig)

	key := userKey
	if key == "" {
		key = noKeySentinel
	}
	return fmt.Sprintf("%s-%s-%s", GeneratedKeyPrefix, hex.EncodeToString(h.Sum(nil)), key)
}

// IsGenerated reports whether id carries the generated-identity prefix.
func IsGenerated(id string) bool {
	return strings.HasPrefix(id, GeneratedKeyPrefix+"-")
}

// UserKey extracts the user key suffix from a generated identity.
// Returns ok=false for non-generated identifiers or unkeyed widgets.
func UserKey(id string) (string, bool) {
	if !IsGenerated(id) {
		return "", false
	}
	rest := id[len(GeneratedKeyPrefix)+1:]
	i := strings.IndexByte(rest, '-')
	if i < 0 {
		return "", false
	}
	key := rest[i+1:]
	if key == noKeySentinel {
		return "", false
	}
	return key, true
}
