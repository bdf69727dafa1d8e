package dedup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 5 * time.Second

// BloomConfig configures the optional RedisBloom seen-filter
type BloomConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	// Capacity sets the initial BF.RESERVE capacity (number of items)
	Capacity int
	// ErrorRate sets the desired false positive probability
	ErrorRate float64
}

// SeenFilter is a Redis-backed bloom filter over article IDs. It is a
// fast path in front of the JSON ledger, never a replacement: a positive
// answer may over-skip an article (bounded by the error rate) but can
// never cause a duplicate remote call, and the ledger stays canonical.
type SeenFilter struct {
	client *redis.Client
	key    string
}

// NewFromEnv creates a SeenFilter when REDIS_ADDR is set, or (nil, nil)
// when the fast path is disabled. Optional: REDIS_PASS, BLOOM_KEY,
// BLOOM_CAPACITY, BLOOM_ERROR_RATE.
func NewFromEnv() (*SeenFilter, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	cfg := BloomConfig{
		Addr:      addr,
		Password:  os.Getenv("REDIS_PASS"),
		Key:       "aura:curated:bloom",
		Capacity:  100000,
		ErrorRate: 0.001,
	}
	if k := os.Getenv("BLOOM_KEY"); k != "" {
		cfg.Key = k
	}
	if c := os.Getenv("BLOOM_CAPACITY"); c != "" {
		if v, err := strconv.Atoi(c); err == nil && v > 0 {
			cfg.Capacity = v
		}
	}
	if e := os.Getenv("BLOOM_ERROR_RATE"); e != "" {
		if v, err := strconv.ParseFloat(e, 64); err == nil && v > 0 {
			cfg.ErrorRate = v
		}
	}

	return New(cfg)
}

// New creates a SeenFilter and verifies connectivity. When the key does
// not exist yet a BF.RESERVE is attempted; failure there is non-fatal
// since BF.ADD auto-creates the filter on standard RedisBloom setups.
func New(cfg BloomConfig) (*SeenFilter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}

	exists, err := client.Exists(ctx, cfg.Key).Result()
	if err == nil && exists == 0 {
		_ = client.Do(ctx, "BF.RESERVE", cfg.Key,
			fmt.Sprintf("%f", cfg.ErrorRate), cfg.Capacity).Err()
	}

	return &SeenFilter{client: client, key: cfg.Key}, nil
}

// Close closes the underlying Redis client.
func (f *SeenFilter) Close() error {
	return f.client.Close()
}

// Seen checks whether the article ID is probably in the filter.
func (f *SeenFilter) Seen(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := f.client.Do(ctx, "BF.EXISTS", f.key, id).Result()
	if err != nil {
		return false, err
	}

	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// Add inserts the article ID into the filter.
func (f *SeenFilter) Add(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return f.client.Do(ctx, "BF.ADD", f.key, id).Err()
}
