package matcher

import "time"

// DefaultBloomThreshold is the number of exact entries above which a bloom
// filter is placed in front of the strict and present buckets.
const DefaultBloomThreshold = 10000

type options struct {
	noComplement   bool
	bloomThreshold int
	regexTimeout   time.Duration
}

type Option interface{ apply(*options) }

type OptionFunc func(o *options)

func (f OptionFunc) apply(o *options) { f(o) }

// WithNoComplement disables the "www." sibling generation.
func WithNoComplement(noComplement bool) Option {
	return OptionFunc(func(o *options) { o.noComplement = noComplement })
}

// WithBloomThreshold sets the exact entry count from which the bloom
// prefilter is built. A negative value disables it.
func WithBloomThreshold(n int) Option {
	return OptionFunc(func(o *options) { o.bloomThreshold = n })
}

// WithRegexTimeout bounds a single regex search. Zero means no limit.
func WithRegexTimeout(d time.Duration) Option {
	return OptionFunc(func(o *options) { o.regexTimeout = d })
}

func newOptions(opts []Option) *options {
	o := &options{bloomThreshold: DefaultBloomThreshold}
	for _, opt := range opts {
		opt.apply(o)
	}
	return o
}
