package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/veilhex/provider"
)

var ErrInvalidConfig = errors.New("ristretto provider: invalid config")

// avgEncodedLen is the expected size of one memoised encoding, used to size
// the admission counters from a byte budget.
const avgEncodedLen = 512

type Provider struct {
	c *rc.Cache
}

var _ pr.Provider = (*Provider)(nil)

// Config is a byte budget. Every entry costs its encoded length, so the
// cache holds at most MaxBytes of encodings.
type Config struct {
	MaxBytes int64
	Metrics  bool
}

// DefaultConfig holds roughly 64 MiB of encodings.
func DefaultConfig() Config { return Config{MaxBytes: 64 << 20} }

func New(cfg Config) (*Provider, error) {
	if cfg.MaxBytes <= 0 {
		return nil, ErrInvalidConfig
	}
	// ristretto wants ~10 counters per item it may hold
	counters := 10 * cfg.MaxBytes / avgEncodedLen
	if counters < 1000 {
		counters = 1000
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: counters,
		MaxCost:     cfg.MaxBytes,
		BufferItems: 64,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		p.c.Del(key)
		return "", false, nil
	}
	return s, true, nil
}

// Set waits for the write to apply so consecutive duplicate payloads hit the
// memo. ok=false means the admission policy refused the entry.
func (p *Provider) Set(_ context.Context, key, encoded string, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	ok := p.c.SetWithTTL(key, encoded, int64(len(encoded)), ttl)
	p.c.Wait()
	return ok, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Close()
	return nil
}

// Metrics exposes ristretto counters when Config.Metrics is set; nil otherwise.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
