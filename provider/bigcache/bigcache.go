package bigcache

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	pr "github.com/unkn0wn-root/veilhex/provider"
)

// Provider stores each encoding behind an 8-byte big-endian expiry (unix
// nanoseconds, 0 = none) so per-entry TTLs hold inside BigCache's global
// LifeWindow.
type Provider struct {
	c   *bc.BigCache
	now func() time.Time
}

var _ pr.Provider = (*Provider)(nil)

const expiryLen = 8

type Config struct {
	LifeWindow         time.Duration // 0 => 10m; upper bound for every entry
	CleanWindow        time.Duration
	Shards             int // power of two; 0 => 1024
	MaxEntrySize       int // expected encoding size in bytes
	HardMaxCacheSizeMB int // 0 = unlimited
}

func New(ctx context.Context, cfg Config) (*Provider, error) {
	life := cfg.LifeWindow
	if life <= 0 {
		life = 10 * time.Minute
	}
	conf := bc.DefaultConfig(life)
	conf.Verbose = false
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.Shards > 0 {
		conf.Shards = cfg.Shards
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize + expiryLen
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, now: time.Now}, nil
}

func (p *Provider) Get(_ context.Context, key string) (string, bool, error) {
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if len(b) < expiryLen {
		_ = p.c.Delete(key)
		return "", false, nil
	}
	if exp := int64(binary.BigEndian.Uint64(b)); exp != 0 && p.now().UnixNano() >= exp {
		_ = p.c.Delete(key)
		return "", false, nil
	}
	return string(b[expiryLen:]), true, nil
}

func (p *Provider) Set(_ context.Context, key, encoded string, ttl time.Duration) (bool, error) {
	var exp int64
	if ttl > 0 {
		exp = p.now().Add(ttl).UnixNano()
	}
	buf := make([]byte, expiryLen, expiryLen+len(encoded))
	binary.BigEndian.PutUint64(buf, uint64(exp))
	if err := p.c.Set(key, append(buf, encoded...)); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	err := p.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (p *Provider) Close(_ context.Context) error {
	return p.c.Close()
}
