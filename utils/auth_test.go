package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSecretHashIsDeterministic(t *testing.T) {
	a := GenerateSecretHash("user@example.com", "client", "secret")
	b := GenerateSecretHash("user@example.com", "client", "secret")
	c := GenerateSecretHash("other@example.com", "client", "secret")

	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestExtractNameFromEmail(t *testing.T) {
	assert.Equal(t, "milos", ExtractNameFromEmail("milos@example.com"))
	assert.Equal(t, "plain", ExtractNameFromEmail("plain"))
	assert.Equal(t, "@example.com", ExtractNameFromEmail("@example.com"))
}
