package counter

import (
	"fmt"

	c "github.com/d0ngw/hitcounter/common"
)

// MemoryStore keeps the counters in process memory, the counters are listed in creation order
type MemoryStore struct {
	counters *c.LinkedMap[string, int64]
	metrics  *Metrics
}

// NewMemoryStore create an empty store, metrics is optional
func NewMemoryStore(metrics *Metrics) *MemoryStore {
	return &MemoryStore{
		counters: c.NewLinkedMap[string, int64](),
		metrics:  metrics,
	}
}

// Create impls Store.Create
func (p *MemoryStore) Create(name string) (int64, error) {
	if !p.counters.PutIfAbsent(name, 0) {
		p.metrics.observe(opCreate, resultConflict)
		return 0, fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}
	p.metrics.observe(opCreate, resultOK)
	p.metrics.addSize(1)
	return 0, nil
}

// Get impls Store.Get
func (p *MemoryStore) Get(name string) (int64, error) {
	val, ok := p.counters.Get(name)
	if !ok {
		p.metrics.observe(opGet, resultNotFound)
		return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	p.metrics.observe(opGet, resultOK)
	return val, nil
}

// Incr impls Store.Incr
func (p *MemoryStore) Incr(name string) (int64, error) {
	val, ok := p.counters.Update(name, func(old int64) int64 {
		return old + 1
	})
	if !ok {
		p.metrics.observe(opIncr, resultNotFound)
		return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	p.metrics.observe(opIncr, resultOK)
	return val, nil
}

// Del impls Store.Del
func (p *MemoryStore) Del(name string) {
	if _, ok := p.counters.Remove(name); !ok {
		p.metrics.observe(opDel, resultNotFound)
		return
	}
	p.metrics.observe(opDel, resultOK)
	p.metrics.addSize(-1)
}

// List impls Store.List
func (p *MemoryStore) List() []*Entry {
	entries := p.counters.Entries()
	list := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		list = append(list, &Entry{Name: e.Key, Counter: e.Value})
	}
	p.metrics.observe(opList, resultOK)
	return list
}

// Reset impls Store.Reset
func (p *MemoryStore) Reset() {
	p.counters.Clear()
	p.metrics.resetSize()
}
