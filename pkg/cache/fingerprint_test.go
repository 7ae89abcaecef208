package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bengalssg/bengal/pkg/cache"
)

func TestHashFileIsStableAndSensitiveToContent(t *testing.T) {
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.txt", "same content")
	b := writeTemp(t, dir, "b.txt", "same content")
	c := writeTemp(t, dir, "c.txt", "different content")

	hashA := cache.HashFile(a)
	hashB := cache.HashFile(b)
	hashC := cache.HashFile(c)

	assert.NotEmpty(t, hashA)
	assert.Equal(t, hashA, hashB)
	assert.NotEqual(t, hashA, hashC)
}

func TestHashFileMissingReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", cache.HashFile(filepath.Join(t.TempDir(), "missing.txt")))
}

func TestShortFingerprintTruncatesTo16(t *testing.T) {
	full := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"
	assert.Equal(t, "0123456789abcdef", cache.ShortFingerprint(full))
	assert.Equal(t, "short", cache.ShortFingerprint("short"))
}
