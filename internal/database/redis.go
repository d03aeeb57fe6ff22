package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/imaditya55/RoomMateMatcher/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Token revocation and match caching will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// BlacklistToken revokes a JWT by jti until its natural expiry.
func BlacklistToken(jti string, ttl time.Duration) error {
	if Redis == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	key := fmt.Sprintf("token_blacklist:%s", jti)
	return Redis.Set(Ctx, key, "revoked", ttl).Err()
}

// IsTokenBlacklisted reports whether a jti was revoked via logout. Fails open
// when Redis is unavailable so auth keeps working without it.
func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	key := fmt.Sprintf("token_blacklist:%s", jti)
	n, err := Redis.Exists(Ctx, key).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Caching
func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return nil
	}
	json, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, json, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return redis.Nil
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheInvalidate(pattern string) error {
	if Redis == nil {
		return nil
	}
	keys, err := Redis.Keys(Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return Redis.Del(Ctx, keys...).Err()
	}
	return nil
}
