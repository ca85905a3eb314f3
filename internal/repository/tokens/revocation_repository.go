// Package tokens tracks revoked access tokens in Redis.
package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "auth:revoked:"

// RevocationRepository stores token ids that were logged out before expiry.
// A nil client disables revocation.
type RevocationRepository struct {
	client *redis.Client
}

// NewRevocationRepository constructs a revocation store.
func NewRevocationRepository(client *redis.Client) *RevocationRepository {
	return &RevocationRepository{client: client}
}

// Enabled reports whether revocations are persisted.
func (r *RevocationRepository) Enabled() bool {
	return r != nil && r.client != nil
}

// Revoke marks jti as revoked until ttl elapses.
func (r *RevocationRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if !r.Enabled() || jti == "" || ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke %s: %w", jti, err)
	}
	return nil
}

// IsRevoked reports whether jti was revoked.
func (r *RevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !r.Enabled() || jti == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", jti, err)
	}
	return n > 0, nil
}
