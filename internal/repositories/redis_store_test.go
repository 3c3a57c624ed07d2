package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectRedis_Unreachable(t *testing.T) {
	client, err := ConnectRedis("127.0.0.1:1", "", 0)

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisStore_PrefixesKeys(t *testing.T) {
	store := NewRedisStore(nil, "vss:")
	assert.Equal(t, "vss:access_token", store.key(KeyAccessToken))
}
