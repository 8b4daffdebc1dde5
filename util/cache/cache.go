package cache

import (
	"container/list"
	"errors"
	"sync"
)

var ErrCacheIsNotFound = errors.New("cache is not found")

type Cache[K comparable, V any] interface {
	Get(K) (V, error)
	Set(K, V)
	Delete(K)
	Contains(K) bool
	Len() int
	Purge()
}

type EvictCallback func(any, any)

type options struct {
	maxSize int
	evictFn EvictCallback
}

type Option interface{ apply(*options) }

type OptionFunc func(o *options)

func (f OptionFunc) apply(o *options) { f(o) }

func WithMaxSize(maxSize int) Option {
	return OptionFunc(func(o *options) { o.maxSize = maxSize })
}

func WithEvictCallback(fn EvictCallback) Option {
	return OptionFunc(func(o *options) { o.evictFn = fn })
}

type cacheEntry[K comparable, V any] struct {
	key   K
	value V
}

var _ Cache[string, string] = (*LruCache[string, string])(nil)

// LruCache is a size bounded cache evicting the least recently used entry.
type LruCache[K comparable, V any] struct {
	mu    sync.Mutex
	lru   *list.List
	cache map[K]*list.Element
	opts  options
}

func NewCache[K comparable, V any](opt ...Option) Cache[K, V] {
	lc := &LruCache[K, V]{
		lru:   list.New(),
		cache: make(map[K]*list.Element, 32),
		opts:  options{maxSize: 100},
	}
	for _, o := range opt {
		o.apply(&lc.opts)
	}
	if lc.opts.maxSize <= 0 {
		lc.opts.maxSize = 1
	}
	return lc
}

func (c *LruCache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.cache[key]
	return ok
}

func (c *LruCache[K, V]) Get(key K) (value V, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ele, ok := c.cache[key]
	if !ok {
		err = ErrCacheIsNotFound
		return
	}
	c.lru.MoveToBack(ele)
	return ele.Value.(*cacheEntry[K, V]).value, nil
}

func (c *LruCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.cache[key]; ok {
		ele.Value.(*cacheEntry[K, V]).value = value
		c.lru.MoveToBack(ele)
		return
	}
	for c.lru.Len() >= c.opts.maxSize {
		c.delete(c.lru.Front())
	}
	c.cache[key] = c.lru.PushBack(&cacheEntry[K, V]{key: key, value: value})
}

func (c *LruCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.cache[key]; ok {
		c.delete(ele)
	}
}

func (c *LruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *LruCache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.lru.Len() > 0 {
		c.delete(c.lru.Front())
	}
}

func (c *LruCache[K, V]) delete(ele *list.Element) {
	entry := ele.Value.(*cacheEntry[K, V])
	delete(c.cache, entry.key)
	c.lru.Remove(ele)
	if c.opts.evictFn != nil {
		c.opts.evictFn(entry.key, entry.value)
	}
}
