// Package workerpool wraps an ants pool behind a small context-aware surface.
// Validation of independent resource families is embarrassingly parallel, so
// the validator fans family checks out over a pool while each job keeps its
// own issue buffer.
package workerpool

import (
	"context"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pitabwire/util"
)

const defaultCapacityFactor = 4

// Options defines configurable options for a worker pool.
type Options struct {
	Capacity       int
	ExpiryDuration time.Duration
	Nonblocking    bool
	PreAlloc       bool
	PanicHandler   func(any)
	Logger         *util.LogEntry
}

// Option defines a function that configures worker pool options.
type Option func(*Options)

// WithCapacity sets the maximum number of concurrently running workers.
func WithCapacity(capacity int) Option {
	return func(opts *Options) {
		opts.Capacity = capacity
	}
}

// WithExpiryDuration sets how long idle workers are kept around.
func WithExpiryDuration(duration time.Duration) Option {
	return func(opts *Options) {
		opts.ExpiryDuration = duration
	}
}

// WithNonblocking makes Submit fail instead of waiting when the pool is full.
func WithNonblocking(nonblocking bool) Option {
	return func(opts *Options) {
		opts.Nonblocking = nonblocking
	}
}

// WithPreAlloc pre-allocates memory for the pool.
func WithPreAlloc(preAlloc bool) Option {
	return func(opts *Options) {
		opts.PreAlloc = preAlloc
	}
}

// WithPanicHandler sets a panic handler for pool workers.
func WithPanicHandler(handler func(any)) Option {
	return func(opts *Options) {
		opts.PanicHandler = handler
	}
}

// WithLogger sets a logger for the pool.
func WithLogger(logger *util.LogEntry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// Pool adapts *ants.Pool to a context-aware Submit.
type Pool struct {
	pool *ants.Pool
}

// New creates a worker pool. Without an explicit capacity the pool scales
// with the available CPUs.
func New(ctx context.Context, opts ...Option) (*Pool, error) {
	options := &Options{
		Capacity: runtime.NumCPU() * defaultCapacityFactor,
		Logger:   util.Log(ctx),
	}
	for _, opt := range opts {
		opt(options)
	}

	antsOpts := []ants.Option{
		ants.WithNonblocking(options.Nonblocking),
		ants.WithLogger(options.Logger),
	}
	if options.ExpiryDuration > 0 {
		antsOpts = append(antsOpts, ants.WithExpiryDuration(options.ExpiryDuration))
	}
	if options.PreAlloc {
		antsOpts = append(antsOpts, ants.WithPreAlloc(options.PreAlloc))
	}
	if options.PanicHandler != nil {
		antsOpts = append(antsOpts, ants.WithPanicHandler(options.PanicHandler))
	}

	pool, err := ants.NewPool(options.Capacity, antsOpts...)
	if err != nil {
		return nil, err
	}

	return &Pool{pool: pool}, nil
}

// Submit hands a task to the pool unless the context is already done.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	return p.pool.Submit(task)
}

// Shutdown releases the pool's workers.
func (p *Pool) Shutdown() {
	p.pool.Release()
}
