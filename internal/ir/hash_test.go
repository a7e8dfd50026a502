package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleHashStable(t *testing.T) {
	text := []byte("module {\n}\n")

	first := ModuleHash(text)
	second := ModuleHash(text)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex-encoded SHA-256
}

func TestModuleHashDiffersOnContent(t *testing.T) {
	a := ModuleHash([]byte("module {\n}\n"))
	b := ModuleHash([]byte("module {\n\n}\n"))

	assert.NotEqual(t, a, b)
}

func TestModuleHashDomainSeparated(t *testing.T) {
	// The same bytes under a different domain must not collide.
	data := []byte("payload")
	assert.NotEqual(t, hashWithDomain(DomainModule, data), hashWithDomain("other/v1", data))
}
