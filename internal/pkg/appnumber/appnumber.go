// Package appnumber mints human-readable application numbers of the form
// SKI-2026-000421: service prefix, year, zero-padded sequence. The sequence
// lives in Redis (one counter per prefix and year) so numbers stay unique
// across instances.
package appnumber

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sertifikat-identitas/internal/domain"
)

type Generator interface {
	Next(ctx context.Context, serviceType domain.ServiceType) (string, error)
}

type redisGenerator struct {
	rdb *redis.Client
}

func NewRedisGenerator(rdb *redis.Client) Generator {
	return &redisGenerator{rdb: rdb}
}

func (g *redisGenerator) Next(ctx context.Context, serviceType domain.ServiceType) (string, error) {
	prefix := serviceType.NumberPrefix()
	year := time.Now().Year()

	key := fmt.Sprintf("appnumber:%s:%d", prefix, year)
	seq, err := g.rdb.Incr(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("increment application number sequence: %w", err)
	}

	return Format(prefix, year, seq), nil
}

func Format(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, seq)
}
