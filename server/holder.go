package server

import (
	"sync/atomic"
	"time"

	"github.com/josexy/hosts-whitelist/matcher"
	"github.com/josexy/hosts-whitelist/util/cache"
)

// DefaultCacheSize is the number of check verdicts remembered per index.
const DefaultCacheSize = 4096

type snapshot struct {
	idx      *matcher.Index
	loadedAt time.Time
	verdicts cache.Cache[string, matcher.Verdict]
}

// Holder publishes the current index to concurrent readers. Every index
// gets its own verdict cache, so a reload never serves stale verdicts.
type Holder struct {
	p         atomic.Pointer[snapshot]
	cacheSize int
}

func NewHolder() *Holder {
	return &Holder{cacheSize: DefaultCacheSize}
}

// Get returns the current index, or nil before the first load.
func (h *Holder) Get() *matcher.Index {
	if s := h.p.Load(); s != nil {
		return s.idx
	}
	return nil
}

func (h *Holder) LoadedAt() time.Time {
	if s := h.p.Load(); s != nil {
		return s.loadedAt
	}
	return time.Time{}
}

func (h *Holder) Set(idx *matcher.Index) {
	h.p.Store(&snapshot{
		idx:      idx,
		loadedAt: time.Now(),
		verdicts: cache.NewCache[string, matcher.Verdict](cache.WithMaxSize(h.cacheSize)),
	})
}

// Check runs line against the current index, consulting the verdict cache
// first. The bool result reports a cache hit.
func (h *Holder) Check(line string) (matcher.Verdict, bool, error) {
	s := h.p.Load()
	if s == nil {
		return matcher.Verdict{}, false, errIndexNotReady
	}
	if v, err := s.verdicts.Get(line); err == nil {
		return v, true, nil
	}
	v, err := s.idx.Check(line)
	if err != nil {
		return v, false, err
	}
	s.verdicts.Set(line, v)
	return v, false, nil
}
