// Package toolcache 缓存镜像对应的 MCP 工具列表。
//
// 缓存可以只存在于内存，也可以持久化到 JSON Lines 文件。多个进程共享同一文件时，
// 通过 flock 文件锁串行化读写，写入时按创建时间合并，较新的条目胜出。
package toolcache

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/singleflight"
)

// Cache 以镜像 ID 为键缓存原始 JSON 工具列表。
type Cache struct {
	ttl         time.Duration
	path        string
	handleError func(error)

	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
}

type entry struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
}

func (e entry) valid(ttl time.Duration) bool {
	return len(e.Value) > 0 && (ttl <= 0 || time.Since(e.CreatedAt) < ttl)
}

// New 创建内存缓存。ttl <= 0 表示条目永不过期。
func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: make(map[string]entry)}
}

// NewPersistent 创建持久化到 path 的缓存，并加载文件中仍有效的条目。
func NewPersistent(path string, ttl time.Duration, handleError func(error)) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	cache := &Cache{ttl: ttl, path: path, handleError: handleError, entries: make(map[string]entry)}

	unlock, err := cache.lock(false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	entries, err := loadEntries(file, ttl)
	if err != nil {
		return nil, err
	}
	cache.entries = entries
	return cache, nil
}

// Get 返回 key 对应的缓存值；缺失或过期时调用 fallback，并发调用合并为一次。
func (c *Cache) Get(key string, fallback func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok && e.valid(c.ttl) {
		return e.Value, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		value, err := fallback()
		if err != nil {
			return nil, err
		}
		c.Set(key, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Set 写入一个条目。持久化失败只会上报给 handleError。
func (c *Cache) Set(key string, value []byte) {
	if len(value) == 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry{Key: key, Value: append(json.RawMessage(nil), value...), CreatedAt: time.Now()}
	c.mu.Unlock()

	if c.path != "" {
		if err := c.persist(); err != nil && c.handleError != nil {
			c.handleError(err)
		}
	}
}

func (c *Cache) persist() error {
	unlock, err := c.lock(true)
	if err != nil {
		return err
	}
	defer unlock()

	file, err := os.OpenFile(c.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	onDisk, err := loadEntries(file, c.ttl)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range onDisk {
		if existed, ok := c.entries[k]; !ok || existed.CreatedAt.Before(v.CreatedAt) {
			c.entries[k] = v
		}
	}

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err = file.Truncate(0); err != nil {
		return err
	}
	encoder := json.NewEncoder(file)
	for _, e := range c.entries {
		if !e.valid(c.ttl) {
			continue
		}
		if err = encoder.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) lock(exclusive bool) (func(), error) {
	lockFile := flock.New(c.path + ".lock")
	var err error
	if exclusive {
		err = lockFile.Lock()
	} else {
		err = lockFile.RLock()
	}
	if err != nil {
		return nil, err
	}
	return func() {
		if err := lockFile.Unlock(); err != nil && c.handleError != nil {
			c.handleError(err)
		}
	}, nil
}

func loadEntries(r io.Reader, ttl time.Duration) (map[string]entry, error) {
	decoder := json.NewDecoder(r)
	entries := make(map[string]entry)
	for decoder.More() {
		var e entry
		if err := decoder.Decode(&e); err != nil {
			return nil, err
		}
		if e.valid(ttl) {
			entries[e.Key] = e
		}
	}
	return entries, nil
}
