package repo

import (
	"sort"
	"sync"

	"lifecycle/internal/domain"
)

// keyLocks hands out one mutex per key so updates to the same entity run one at
// a time while different entities proceed independently. An entry lives only
// while someone holds or waits for it.
type keyLocks struct {
	mu sync.Mutex
	m  map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int
}

func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	if k.m == nil {
		k.m = make(map[string]*keyLock)
	}
	l, ok := k.m[key]
	if !ok {
		l = &keyLock{}
		k.m[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(k.m, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyLocks) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.m)
}

type MemoryOrderRepo struct {
	mu    sync.RWMutex
	m     map[domain.OrderID]*domain.Order
	seq   map[domain.OrderID]int
	next  int
	locks keyLocks
}

func NewMemoryOrderRepo() *MemoryOrderRepo {
	return &MemoryOrderRepo{
		m:   make(map[domain.OrderID]*domain.Order),
		seq: make(map[domain.OrderID]int),
	}
}

// Insert stores a copy of o. It reports false when the id is taken.
func (r *MemoryOrderRepo) Insert(o *domain.Order) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[o.ID()]; ok {
		return false
	}
	cp := *o
	r.m[o.ID()] = &cp
	r.seq[o.ID()] = r.next
	r.next++
	return true
}

func (r *MemoryOrderRepo) Get(id domain.OrderID) (*domain.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.m[id]
	if !ok {
		return nil, false
	}
	cp := *o
	return &cp, true
}

// Update runs fn on a copy of the stored order while holding the order's lock,
// and stores the copy only if fn succeeds. It reports false for unknown ids.
func (r *MemoryOrderRepo) Update(id domain.OrderID, fn func(*domain.Order) error) (bool, error) {
	unlock := r.locks.lock(string(id))
	defer unlock()

	cur, ok := r.Get(id)
	if !ok {
		return false, nil
	}
	if err := fn(cur); err != nil {
		return true, err
	}
	r.mu.Lock()
	r.m[id] = cur
	r.mu.Unlock()
	return true, nil
}

// List returns orders in insertion order.
func (r *MemoryOrderRepo) List(page, pageSize int) ([]*domain.Order, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*domain.Order, 0, len(r.m))
	for _, o := range r.m {
		cp := *o
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return r.seq[all[i].ID()] < r.seq[all[j].ID()] })
	total := len(all)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total
}

type MemoryEmailRepo struct {
	mu    sync.RWMutex
	m     map[string]domain.AnyEmail
	locks keyLocks
}

func NewMemoryEmailRepo() *MemoryEmailRepo {
	return &MemoryEmailRepo{m: make(map[string]domain.AnyEmail)}
}

func (r *MemoryEmailRepo) Insert(e domain.AnyEmail) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[e.String()]; ok {
		return false
	}
	r.m[e.String()] = e
	return true
}

func (r *MemoryEmailRepo) Get(address string) (domain.AnyEmail, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.m[address]
	return e, ok
}

// Update replaces the stored email with fn's result while holding the address's lock.
func (r *MemoryEmailRepo) Update(address string, fn func(domain.AnyEmail) (domain.AnyEmail, error)) (bool, error) {
	unlock := r.locks.lock(address)
	defer unlock()

	cur, ok := r.Get(address)
	if !ok {
		return false, nil
	}
	next, err := fn(cur)
	if err != nil {
		return true, err
	}
	r.mu.Lock()
	r.m[address] = next
	r.mu.Unlock()
	return true, nil
}
