package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
)

const (
	defaultDialTimeout  = 5 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second

	keyPrefix = "wirecalc:result"
)

// NewRedisClient returns a configured go-redis client and validates the connection with PING.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis: addr is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  defaultDialTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), defaultDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// Store caches calculation results. A result is a pure function of the
// request and the settings folded into its key, so entries never need
// invalidation; the TTL only bounds memory.
type Store struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewStore(client redis.Cmdable, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Key derives the cache key for a request body evaluated under settings, the
// configuration the result depends on beyond the request itself (such as
// default voltage-drop limits). Equivalent JSON documents (key order,
// whitespace, number spelling) map to the same key.
func Key(kind domain.Kind, settings string, payload []byte) (string, error) {
	canonical, err := canonicalJSON(payload)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(settings))
	h.Write([]byte{0})
	h.Write(canonical)
	sum := h.Sum(nil)
	return fmt.Sprintf("%s:%s:%s", keyPrefix, kind, hex.EncodeToString(sum)), nil
}

func canonicalJSON(payload []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("cache: canonicalize request: %w", err)
	}
	normalizeNumbers(v)
	return json.Marshal(v)
}

// normalizeNumbers rewrites json.Number values so 240, 240.0 and 2.4e2 agree.
func normalizeNumbers(v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if n, ok := val.(json.Number); ok {
				t[k] = normalizeNumber(n)
				continue
			}
			normalizeNumbers(val)
		}
	case []any:
		for i, val := range t {
			if n, ok := val.(json.Number); ok {
				t[i] = normalizeNumber(n)
				continue
			}
			normalizeNumbers(val)
		}
	}
}

func normalizeNumber(n json.Number) any {
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n
}

// Get returns the cached result and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (domain.CalculationResult, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CalculationResult{}, false, nil
	}
	if err != nil {
		return domain.CalculationResult{}, false, err
	}
	var res domain.CalculationResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return domain.CalculationResult{}, false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return res, true, nil
}

func (s *Store) Set(ctx context.Context, key string, res domain.CalculationResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}
