package helper

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"movie_booking/config"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

const catalogTTL = 60 * time.Second

// RedisClient khởi tạo lười; cache là tuỳ chọn, redis chết thì coi như
// miss chứ không chặn request.
func RedisClient() *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr: config.ConfigDefault("REDIS_ADDR", "localhost:6379"),
		})
	})
	return redisClient
}

func CacheGet(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	val, err := RedisClient().Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func CacheSet(key string, payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	RedisClient().Set(ctx, key, payload, catalogTTL)
}

// InvalidateCatalog xoá cache danh mục sau khi admin sửa phim.
func InvalidateCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	RedisClient().Del(ctx, "catalog:movies", "catalog:showtimes")
}
