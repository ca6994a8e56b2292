package crypt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/crypt"
)

func TestBox_RoundTrip(t *testing.T) {
	box, err := crypt.NewBox("s3cret")
	require.NoError(t, err)

	sealed, err := box.Seal([]byte("session-id"))
	require.NoError(t, err)
	assert.NotContains(t, sealed, "session-id")

	plain, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "session-id", string(plain))
}

func TestBox_NoncesDiffer(t *testing.T) {
	box, err := crypt.NewBox("s3cret")
	require.NoError(t, err)

	a, _ := box.Seal([]byte("x"))
	b, _ := box.Seal([]byte("x"))
	assert.NotEqual(t, a, b)
}

func TestBox_RejectsForeignAndTampered(t *testing.T) {
	mine, _ := crypt.NewBox("one")
	theirs, _ := crypt.NewBox("two")

	sealed, err := theirs.Seal([]byte("id"))
	require.NoError(t, err)

	_, err = mine.Open(sealed)
	assert.ErrorIs(t, err, crypt.ErrDecrypt)

	_, err = mine.Open("not base64 !!")
	assert.ErrorIs(t, err, crypt.ErrDecrypt)

	_, err = mine.Open("")
	assert.ErrorIs(t, err, crypt.ErrDecrypt)
}

func TestNewBox_EmptySecret(t *testing.T) {
	_, err := crypt.NewBox("")
	assert.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	enc, err := crypt.Encrypt("hello")
	require.NoError(t, err)

	dec, err := crypt.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "hello", dec)
}
