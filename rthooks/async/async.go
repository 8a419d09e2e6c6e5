// Package async wraps a rowtypes.Hooks in a bounded worker queue, so a slow
// or blocking hook implementation never stalls the calling serialize/
// deserialize path.
package async

import (
	"sync"

	"github.com/unkn0wn-root/rowtypes"
)

type Hooks struct {
	inner rowtypes.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ rowtypes.Hooks = (*Hooks)(nil)

// New starts workers goroutines draining a qlen-buffered queue of hook
// calls. workers <= 0 defaults to 1; qlen <= 0 defaults to 1024.
func New(inner rowtypes.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close stops accepting new work and waits for queued calls to drain.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop on backpressure
	}
}

func (h *Hooks) SchemaDefaultApplied(property, field string) {
	h.try(func() { h.inner.SchemaDefaultApplied(property, field) })
}

func (h *Hooks) EnvelopeSelfHealed(property, reason string) {
	h.try(func() { h.inner.EnvelopeSelfHealed(property, reason) })
}

func (h *Hooks) DecryptKeyRejected(property string) {
	h.try(func() { h.inner.DecryptKeyRejected(property) })
}
