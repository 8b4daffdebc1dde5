package matcher

// bucket is an insertion ordered set.
type bucket struct {
	list []string
	seen map[string]struct{}
}

func newBucket() *bucket {
	return &bucket{seen: make(map[string]struct{})}
}

// add reports whether s was not already present.
func (b *bucket) add(s string) bool {
	if _, ok := b.seen[s]; ok {
		return false
	}
	b.seen[s] = struct{}{}
	b.list = append(b.list, s)
	return true
}

func (b *bucket) contains(s string) bool {
	if b == nil {
		return false
	}
	_, ok := b.seen[s]
	return ok
}

type buckets map[string]*bucket

func (bs buckets) add(key, s string) bool {
	b, ok := bs[key]
	if !ok {
		b = newBucket()
		bs[key] = b
	}
	return b.add(s)
}

func (bs buckets) entries() int {
	var n int
	for _, b := range bs {
		n += len(b.list)
	}
	return n
}

func (bs buckets) snapshot() map[string][]string {
	out := make(map[string][]string, len(bs))
	for key, b := range bs {
		out[key] = append([]string(nil), b.list...)
	}
	return out
}
