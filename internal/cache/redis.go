package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Catalog cache keys. Listings change rarely compared to how often they are
// browsed, so counties/towns get a long TTL and house lists a short one.
const (
	CountiesKey  = "catalog:counties"
	TownsKeyFmt  = "catalog:towns:%d"
	HousesKeyFmt = "catalog:houses:town:%d"
	catalogTTL   = time.Hour
	houseListTTL = 30 * time.Second
)

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays nil and
// every cache call becomes a no-op; the catalog then reads straight from
// Postgres.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when caching is disabled)
func GetClient() *redis.Client {
	return client
}

// GetJSON fetches a cached value into dest. Returns false on miss or when
// caching is disabled.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON stores a value under key. Failures are ignored; the cache is an
// optimization, not a source of truth.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// CatalogTTL returns the TTL for county/town lists
func CatalogTTL() time.Duration { return catalogTTL }

// HouseListTTL returns the TTL for per-town house lists
func HouseListTTL() time.Duration { return houseListTTL }

// TownsKey builds the cache key for a county's town list
func TownsKey(countyID int) string {
	return fmt.Sprintf(TownsKeyFmt, countyID)
}

// HousesKey builds the cache key for a town's house list
func HousesKey(townID int) string {
	return fmt.Sprintf(HousesKeyFmt, townID)
}

// InvalidateHouses drops the cached house list for a town, called after a
// booking or payment changes a house's status.
func InvalidateHouses(ctx context.Context, townID int) {
	if client == nil {
		return
	}
	client.Del(ctx, HousesKey(townID))
}
