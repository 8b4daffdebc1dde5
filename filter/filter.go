// Package filter removes whitelisted lines from candidate lists, serially or
// with a bounded pool of goroutines.
package filter

import (
	"runtime"
	"time"

	"github.com/josexy/hosts-whitelist/matcher"
	"github.com/josexy/hosts-whitelist/statistic"
	"github.com/josexy/hosts-whitelist/util/logger"
	"github.com/josexy/logx"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// chunksPerWorker controls the batch granularity of the parallel path.
const chunksPerWorker = 4

// DefaultWorkers is half the available CPUs, at least one.
func DefaultWorkers() int {
	return max(1, runtime.NumCPU()/2)
}

type Orchestrator struct {
	idx  *matcher.Index
	opts options
}

func New(idx *matcher.Index, opts ...Option) *Orchestrator {
	o := options{workers: DefaultWorkers()}
	for _, opt := range opts {
		opt.apply(&o)
	}
	if o.workers <= 0 {
		o.workers = DefaultWorkers()
	}
	return &Orchestrator{idx: idx, opts: o}
}

// Filter returns the candidates the index does not whitelist, in their
// original relative order, then applies the configured sort. An empty index
// keeps every candidate. On error nothing is returned.
func (o *Orchestrator) Filter(candidates []string) ([]string, error) {
	start := time.Now()
	var survivors []string
	if o.idx.Empty() {
		survivors = append([]string(nil), candidates...)
	} else {
		var (
			verdicts []matcher.Verdict
			err      error
		)
		if o.opts.parallel && o.opts.workers > 1 && len(candidates) > 1 {
			verdicts, err = o.checkParallel(candidates)
		} else {
			verdicts, err = o.checkSerial(candidates)
		}
		if err != nil {
			return nil, err
		}
		survivors = make([]string, 0, len(candidates))
		for _, v := range verdicts {
			statistic.DefaultManager.AddVerdict(v.By.String(), v.Whitelisted)
			if !v.Whitelisted {
				survivors = append(survivors, v.Line)
			}
		}
	}

	survivors = o.opts.sort.apply(survivors)
	elapsed := time.Since(start)
	statistic.DefaultManager.AddRun(len(survivors), elapsed)
	logger.Logger.Debug("candidates filtered",
		logx.Int("candidates", len(candidates)),
		logx.Int("survivors", len(survivors)),
		logx.Bool("parallel", o.opts.parallel),
		logx.Int("workers", o.opts.workers),
		logx.String("elapsed", elapsed.String()),
	)
	return survivors, nil
}

func (o *Orchestrator) checkSerial(candidates []string) ([]matcher.Verdict, error) {
	verdicts := make([]matcher.Verdict, len(candidates))
	for i, line := range candidates {
		v, err := o.idx.Check(line)
		if err != nil {
			return nil, err
		}
		verdicts[i] = v
	}
	return verdicts, nil
}

// checkParallel splits the candidates into ordered chunks. Every chunk
// writes into its own window of the result slice, so no locking is needed
// and positions match the input.
func (o *Orchestrator) checkParallel(candidates []string) ([]matcher.Verdict, error) {
	verdicts := make([]matcher.Verdict, len(candidates))
	size := max(1, (len(candidates)+o.opts.workers*chunksPerWorker-1)/(o.opts.workers*chunksPerWorker))

	var g errgroup.Group
	g.SetLimit(o.opts.workers)
	for i, chunk := range lo.Chunk(candidates, size) {
		offset, chunk := i*size, chunk
		g.Go(func() error {
			for j, line := range chunk {
				v, err := o.idx.Check(line)
				if err != nil {
					return err
				}
				verdicts[offset+j] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

// Filter is a shorthand for New(idx, ...).Filter(candidates).
func Filter(idx *matcher.Index, candidates []string, parallel bool, workers int) ([]string, error) {
	return New(idx, WithParallel(parallel), WithWorkers(workers)).Filter(candidates)
}
