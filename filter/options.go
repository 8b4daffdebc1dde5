package filter

type options struct {
	parallel bool
	workers  int
	sort     SortMode
}

type Option interface{ apply(*options) }

type OptionFunc func(o *options)

func (f OptionFunc) apply(o *options) { f(o) }

func WithParallel(parallel bool) Option {
	return OptionFunc(func(o *options) { o.parallel = parallel })
}

// WithWorkers sets the pool size. Zero or less selects DefaultWorkers.
func WithWorkers(workers int) Option {
	return OptionFunc(func(o *options) { o.workers = workers })
}

func WithSort(mode SortMode) Option {
	return OptionFunc(func(o *options) { o.sort = mode })
}
