package statistic

import (
	"sync"
	"sync/atomic"
	"time"
)

var DefaultManager = NewManager()

type Snapshot struct {
	Checked     int64            `json:"checked"`
	Whitelisted int64            `json:"whitelisted"`
	Survivors   int64            `json:"survivors"`
	Runs        int64            `json:"runs"`
	Verdicts    map[string]int64 `json:"verdicts"`
	LastRun     time.Time        `json:"last_run"`
	LastElapsed time.Duration    `json:"last_elapsed"`
}

// Manager keeps running totals of filtering runs. It mirrors the
// prometheus collectors so the numbers can be served as plain JSON.
type Manager struct {
	checked     atomic.Int64
	whitelisted atomic.Int64
	survivors   atomic.Int64
	runs        atomic.Int64
	verdicts    sync.Map // string -> *atomic.Int64

	mu          sync.Mutex
	lastRun     time.Time
	lastElapsed time.Duration
}

func NewManager() *Manager {
	return &Manager{}
}

// AddVerdict records the decision for one candidate line.
func (manager *Manager) AddVerdict(category string, whitelisted bool) {
	manager.checked.Add(1)
	if whitelisted {
		manager.whitelisted.Add(1)
	}
	v, _ := manager.verdicts.LoadOrStore(category, new(atomic.Int64))
	v.(*atomic.Int64).Add(1)
	linesTotal.WithLabelValues(category).Inc()
}

// AddRun records a finished filtering run.
func (manager *Manager) AddRun(survivors int, elapsed time.Duration) {
	manager.runs.Add(1)
	manager.survivors.Add(int64(survivors))
	manager.mu.Lock()
	manager.lastRun = time.Now()
	manager.lastElapsed = elapsed
	manager.mu.Unlock()
	survivorsTotal.Add(float64(survivors))
	filterDuration.Observe(elapsed.Seconds())
}

func (manager *Manager) Reset() {
	manager.checked.Store(0)
	manager.whitelisted.Store(0)
	manager.survivors.Store(0)
	manager.runs.Store(0)
	manager.verdicts.Range(func(key, _ any) bool {
		manager.verdicts.Delete(key)
		return true
	})
	manager.mu.Lock()
	manager.lastRun = time.Time{}
	manager.lastElapsed = 0
	manager.mu.Unlock()
}

func (manager *Manager) Snapshot() *Snapshot {
	s := &Snapshot{
		Checked:     manager.checked.Load(),
		Whitelisted: manager.whitelisted.Load(),
		Survivors:   manager.survivors.Load(),
		Runs:        manager.runs.Load(),
		Verdicts:    make(map[string]int64),
	}
	manager.verdicts.Range(func(key, value any) bool {
		s.Verdicts[key.(string)] = value.(*atomic.Int64).Load()
		return true
	})
	manager.mu.Lock()
	s.LastRun = manager.lastRun
	s.LastElapsed = manager.lastElapsed
	manager.mu.Unlock()
	return s
}
