package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock_watchlist/internal/feature/kite/usecase"

	"github.com/redis/go-redis/v9"
)

// StateRedis implements usecase.StateStore on Redis. Each state is a key with a TTL
// and is deleted on first use.
type StateRedis struct {
	client redis.Cmdable
	prefix string
}

var _ usecase.StateStore = (*StateRedis)(nil)

// NewStateRedis creates a StateRedis. Keys are "<prefix>:<state>".
func NewStateRedis(client redis.Cmdable, prefix string) *StateRedis {
	return &StateRedis{client: client, prefix: prefix}
}

func (s *StateRedis) key(state string) string {
	return fmt.Sprintf("%s:%s", s.prefix, state)
}

func (s *StateRedis) Save(ctx context.Context, state string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("login state ttl must be positive")
	}
	return s.client.Set(ctx, s.key(state), "1", ttl).Err()
}

// Consume は state を取り出して削除します。存在しなければ false を返します。
func (s *StateRedis) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, s.key(state)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
