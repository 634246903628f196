package identity

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^\$\$WIDGET_ID-[0-9a-f]{32}-.+$`)

func TestDeriveDeterministic(t *testing.T) {
	a := Derive("button", []byte(`{"label":"Go"}`), "go")
	b := Derive("button", []byte(`{"label":"Go"}`), "go")
	assert.Equal(t, a, b)
	assert.Regexp(t, idPattern, a)
}

func TestDeriveSensitivity(t *testing.T) {
	base := Derive("button", []byte(`{"label":"Go"}`), "go")

	assert.NotEqual(t, base, Derive("checkbox", []byte(`{"label":"Go"}`), "go"),
		"element type must feed the digest")
	assert.NotEqual(t, base, Derive("button", []byte(`{"label":"Stop"}`), "go"),
		"config must feed the digest")
	assert.NotEqual(t, base, Derive("button", []byte(`{"label":"Go"}`), "other"),
		"user key must feed the digest")
}

func TestDeriveNoKeySentinel(t *testing.T) {
	id := Derive("button", []byte(`{}`), "")
	assert.Regexp(t, `-none$`, id)

	key, ok := UserKey(id)
	assert.False(t, ok)
	assert.Empty(t, key)
}

func TestUserKeyRoundTrip(t *testing.T) {
	id := Derive("text_input", []byte(`{"label":"Name"}`), "name")
	key, ok := UserKey(id)
	require.True(t, ok)
	assert.Equal(t, "name", key)
}

func TestUserKeyWithHyphens(t *testing.T) {
	// Keys may themselves contain hyphens; only the first two separators
	// are structural.
	id := Derive("text_input", []byte(`{}`), "my-fancy-key")
	key, ok := UserKey(id)
	require.True(t, ok)
	assert.Equal(t, "my-fancy-key", key)
}

func TestIsGenerated(t *testing.T) {
	assert.True(t, IsGenerated(Derive("button", []byte(`{}`), "")))
	assert.False(t, IsGenerated("some-session-key"))
	assert.False(t, IsGenerated(""))
}
