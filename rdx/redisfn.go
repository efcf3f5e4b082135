package rdx

import (
	"os"
	"time"

	"globetrotter/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(globals.Ctx, hash, field).Result()
}

// CountKeys returns how many keys match pattern. Used for the
// active-user gauge; SCAN keeps it off the KEYS command.
func CountKeys(pattern string) (int64, error) {
	var count int64
	var cursor uint64
	for {
		keys, next, err := Conn.Scan(globals.Ctx, cursor, pattern, 100).Result()
		if err != nil {
			return count, err
		}
		count += int64(len(keys))
		if next == 0 {
			return count, nil
		}
		cursor = next
	}
}

// MarkActive refreshes the presence key for a user; keys expire after
// five minutes of inactivity.
func MarkActive(userID string) {
	if userID == "" {
		return
	}
	_ = SetWithExpiry("active:"+userID, "1", 5*time.Minute)
}
