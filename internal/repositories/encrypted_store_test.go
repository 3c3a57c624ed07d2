package repositories

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEncryptedStore_InvalidKey(t *testing.T) {
	_, err := NewEncryptedStore(NewMemoryStore(), []byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKeyLen)
}

func TestEncryptedStore_StoresCiphertextOnly(t *testing.T) {
	inner := NewMemoryStore()
	store, err := NewEncryptedStore(inner, bytes.Repeat([]byte{7}, 32))
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyAccessToken, "header.payload.signature"))

	raw, err := inner.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.NotContains(t, raw, "payload")

	plain, err := store.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "header.payload.signature", plain)
}

func TestEncryptedStore_WrongKey(t *testing.T) {
	inner := NewMemoryStore()
	writer, err := NewEncryptedStore(inner, bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)
	reader, err := NewEncryptedStore(inner, bytes.Repeat([]byte{2}, 32))
	require.NoError(t, err)

	require.NoError(t, writer.Set(KeyRefreshToken, "R1"))

	_, err = reader.Get(KeyRefreshToken)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestEncryptedStore_TamperedValue(t *testing.T) {
	inner := NewMemoryStore()
	store, err := NewEncryptedStore(inner, bytes.Repeat([]byte{3}, 32))
	require.NoError(t, err)

	require.NoError(t, inner.Set(KeyUserData, "not-base64!"))

	_, err = store.Get(KeyUserData)
	assert.ErrorIs(t, err, ErrDecrypt)
}
