package clients

import (
	"testing"

	"github.com/DRSN-tech/marketplace/internal/cfg"
	"github.com/stretchr/testify/assert"
)

func TestRedisClientKey(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"marketplace", "marketplace:revoked:abc"},
		{"marketplace:", "marketplace:revoked:abc"},
		{"", "revoked:abc"},
	}

	for _, tt := range tests {
		c := NewRedisClient(&cfg.RedisCfg{Addr: "localhost:6379", KeyPrefix: tt.prefix})
		assert.Equal(t, tt.want, c.Key("revoked", "abc"), tt.prefix)
		_ = c.Close()
	}
}
