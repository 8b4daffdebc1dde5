package server

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/josexy/hosts-whitelist/matcher"
	"github.com/josexy/hosts-whitelist/statistic"
	"github.com/josexy/hosts-whitelist/util/logger"
)

// Loader compiles a fresh index from the configured sources.
type Loader interface {
	Load(ctx context.Context) (*matcher.Index, error)
}

type LoaderFunc func(ctx context.Context) (*matcher.Index, error)

func (f LoaderFunc) Load(ctx context.Context) (*matcher.Index, error) { return f(ctx) }

type UpdaterConfig struct {
	Interval       time.Duration // reload interval, zero disables reloading
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Timeout        time.Duration // bound of a single load
}

// RunUpdater keeps the held index fresh until ctx is done. An empty holder
// is loaded right away, then the index is reloaded every Interval. A failed
// load keeps the previous index and is retried with exponential backoff
// until it succeeds.
func RunUpdater(ctx context.Context, cfg UpdaterConfig, loader Loader, holder *Holder) error {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 30 * time.Second
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 30 * time.Minute
	}

	if holder.Get() == nil && !reload(ctx, cfg, loader, holder) {
		return nil
	}
	if cfg.Interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Logger.Infof("index updater stopped: %v", ctx.Err())
			return nil
		case <-ticker.C:
		}
		if !reload(ctx, cfg, loader, holder) {
			return nil
		}
		ticker.Reset(cfg.Interval)
	}
}

// reload loads until it succeeds, sleeping the backoff between attempts.
// It reports false when ctx ends first.
func reload(ctx context.Context, cfg UpdaterConfig, loader Loader, holder *Holder) bool {
	var failures int
	for {
		err := LoadOnce(ctx, cfg.Timeout, loader, holder)
		if err == nil {
			if failures > 0 {
				logger.Logger.Infof("index reload recovered after %d failures", failures)
			}
			return true
		}
		if ctx.Err() != nil {
			logger.Logger.Infof("index updater stopped: %v", ctx.Err())
			return false
		}

		failures++
		backoff := calcBackoff(cfg.InitialBackoff, cfg.MaxBackoff, failures)
		logger.Logger.Warnf("index reload failed (attempt #%d), backoff=%s: %v", failures, backoff, err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Logger.Infof("index updater stopped during backoff: %v", ctx.Err())
			return false
		case <-timer.C:
		}
	}
}

// LoadOnce loads an index and publishes it on success.
func LoadOnce(ctx context.Context, timeout time.Duration, loader Loader, holder *Holder) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	idx, err := loader.Load(ctx)
	statistic.ObserveReload(err)
	if err != nil {
		return err
	}
	holder.Set(idx)
	logger.Logger.Debugf("index reloaded: %+v", idx.Stats())
	return nil
}

func calcBackoff(initial, max time.Duration, failures int) time.Duration {
	backoff := time.Duration(float64(initial) * math.Pow(2, float64(failures-1)))
	if backoff > max || backoff <= 0 {
		backoff = max
	}
	// ±20% jitter
	jitter := time.Duration((rand.Float64()*0.4 - 0.2) * float64(backoff))
	return backoff + jitter
}
