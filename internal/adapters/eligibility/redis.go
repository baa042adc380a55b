package eligibility

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// setMembership узкая часть redis.Cmdable, нужная для проверки
type setMembership interface {
	SIsMember(ctx context.Context, key string, member interface{}) *redis.BoolCmd
}

// RedisAllowlist пускает только чаты из redis-множества key.
// Ошибка redis трактуется как отказ.
type RedisAllowlist struct {
	rdb    setMembership
	key    string
	logger *slog.Logger
}

func NewRedisAllowlist(rdb setMembership, key string, logger *slog.Logger) *RedisAllowlist {
	return &RedisAllowlist{rdb: rdb, key: key, logger: logger}
}

func (a *RedisAllowlist) IsEligible(ctx context.Context, chatID int64) bool {
	ok, err := a.rdb.SIsMember(ctx, a.key, strconv.FormatInt(chatID, 10)).Result()
	if err != nil {
		a.logger.Error("allowlist lookup failed", "chat_id", chatID, "key", a.key, "error", err)
		return false
	}
	if !ok {
		a.logger.Debug("chat not in allowlist", "chat_id", chatID)
	}
	return ok
}

// NewRedisClient поднимает клиента и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
