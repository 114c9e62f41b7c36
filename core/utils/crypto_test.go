package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipherRoundTrip(t *testing.T) {
	c, err := NewCipher("test-secret")
	require.NoError(t, err)

	for _, plain := range []string{"3333-01-1234567", "990101-2345678", "", "한글 계좌"} {
		enc, err := c.EncryptString(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, enc)

		dec, err := c.DecryptString(enc)
		require.NoError(t, err)
		assert.Equal(t, plain, dec)
	}
}

// A fresh nonce per call means the same plaintext never encrypts twice to
// the same ciphertext.
func TestCipherNonDeterministic(t *testing.T) {
	c, err := NewCipher("test-secret")
	require.NoError(t, err)

	a, err := c.EncryptString("same input")
	require.NoError(t, err)
	b, err := c.EncryptString("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCipherWrongKey(t *testing.T) {
	c1, err := NewCipher("secret-one")
	require.NoError(t, err)
	c2, err := NewCipher("secret-two")
	require.NoError(t, err)

	enc, err := c1.EncryptString("payload")
	require.NoError(t, err)
	_, err = c2.DecryptString(enc)
	assert.Error(t, err)
}

func TestCipherRejectsGarbage(t *testing.T) {
	c, err := NewCipher("test-secret")
	require.NoError(t, err)

	_, err = c.DecryptString("not base64!!")
	assert.Error(t, err)

	_, err = c.DecryptString("c2hvcnQ=")
	assert.Error(t, err)
}

func TestNewCipherRequiresSecret(t *testing.T) {
	_, err := NewCipher("")
	assert.Error(t, err)
}
