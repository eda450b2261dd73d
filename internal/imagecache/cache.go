// Package imagecache maps short keys to inline image data so that authored
// text can reference pasted images as `![alt](@key)` instead of embedding the
// full data URL. The cache is an explicitly constructed component with a
// load/save lifecycle; entries persist in one redis hash.
package imagecache

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	keyRe = regexp.MustCompile(`^img_(\d+)_`)
	refRe = regexp.MustCompile(`!\[([^\]]*)\]\(@([^)]+)\)`)
)

type Cache struct {
	rdb     *redis.Client
	hashKey string

	mu     sync.Mutex
	images map[string]string
	nextID int
}

func New(rdb *redis.Client, hashKey string) *Cache {
	return &Cache{
		rdb:     rdb,
		hashKey: hashKey,
		images:  make(map[string]string),
		nextID:  1,
	}
}

// Load replaces the in-memory map with the persisted hash and resumes key
// numbering after the highest stored key.
func (c *Cache) Load(ctx context.Context) error {
	entries, err := c.rdb.HGetAll(ctx, c.hashKey).Result()
	if err != nil {
		return fmt.Errorf("load image cache failed: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = entries
	if c.images == nil {
		c.images = make(map[string]string)
	}
	maxID := 0
	for key := range c.images {
		if m := keyRe.FindStringSubmatch(key); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxID {
				maxID = n
			}
		}
	}
	c.nextID = maxID + 1
	return nil
}

// Save writes the in-memory map back to redis, replacing the stored hash.
func (c *Cache) Save(ctx context.Context) error {
	c.mu.Lock()
	snapshot := make(map[string]string, len(c.images))
	for k, v := range c.images {
		snapshot[k] = v
	}
	c.mu.Unlock()

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, c.hashKey)
	if len(snapshot) > 0 {
		pipe.HSet(ctx, c.hashKey, snapshot)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save image cache failed: %w", err)
	}
	return nil
}

// Put stores an image data URL and returns its short key.
func (c *Cache) Put(dataURL string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := fmt.Sprintf("img_%d_%d", c.nextID, time.Now().UnixMilli())
	c.nextID++
	c.images[key] = dataURL
	return key
}

func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	dataURL, ok := c.images[key]
	return dataURL, ok
}

// Markdown returns the short-key image reference for authored text.
func (c *Cache) Markdown(key, alt string) string {
	return fmt.Sprintf("![%s](@%s)", alt, key)
}

// Resolve replaces every `![alt](@key)` reference in the text with the cached
// data URL. Unknown keys stay as written.
func (c *Cache) Resolve(text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return refRe.ReplaceAllStringFunc(text, func(match string) string {
		m := refRe.FindStringSubmatch(match)
		if dataURL, ok := c.images[m[2]]; ok {
			return fmt.Sprintf("![%s](%s)", m[1], dataURL)
		}
		return match
	})
}

// Cleanup drops every cached image whose key is not in the given set.
func (c *Cache) Cleanup(usedKeys []string) {
	used := make(map[string]struct{}, len(usedKeys))
	for _, key := range usedKeys {
		used[key] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.images {
		if _, ok := used[key]; !ok {
			delete(c.images, key)
		}
	}
}

// Len reports the number of cached images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}
