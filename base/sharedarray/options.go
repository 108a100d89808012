package sharedarray

// DefaultCapacity is the capacity of a store created by New without options.
const DefaultCapacity = 4

type options struct {
	capacity int
}

// Option configures a new Array.
type Option func(*options)

// WithCapacity sets the initial capacity of the backing store.
// Negative values are treated as zero.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = max(n, 0)
	}
}

func buildOptions(opts []Option) options {
	o := options{
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
