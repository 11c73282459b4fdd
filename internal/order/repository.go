package order

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	ErrNotFound    = errors.New("order not found")
	ErrDuplicateID = errors.New("order id already exists")
)

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id string) (Order, error)
	// FindByReferenceSuffix resolves a shortened reference typed by a
	// customer on the public tracking page (case-insensitive). When more
	// than one order matches, the most recently created one wins.
	FindByReferenceSuffix(suffix string) (Order, error)
	// List returns all orders, newest first.
	List() ([]Order, error)
	// UpdateStatus is a partial update: a nil trackingCode leaves the
	// stored code untouched.
	UpdateStatus(id, status string, trackingCode *string) (Order, error)
	// TransitionStatus is a compare-and-set: the status moves from `from`
	// to `to` only if the row currently holds `from`. It reports whether
	// the transition happened so callers can gate one-shot side effects
	// (confirmation email) on it.
	TransitionStatus(id, from, to string) (bool, error)
}

// InMemoryRepository is a mutex-guarded in-memory implementation used in
// tests and local development.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{storage: make([]Order, 0)}
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.storage {
		if o.ID == ord.ID {
			return Order{}, ErrDuplicateID
		}
	}
	r.storage = append(r.storage, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.storage {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) FindByReferenceSuffix(suffix string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]Order, 0, 1)
	for _, o := range r.storage {
		if strings.HasSuffix(strings.ToLower(o.ID), strings.ToLower(suffix)) {
			matches = append(matches, o)
		}
	}
	if len(matches) == 0 {
		return Order{}, ErrNotFound
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt > matches[j].CreatedAt
	})
	return matches[0], nil
}

func (r *InMemoryRepository) List() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, len(r.storage))
	copy(out, r.storage)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id, status string, trackingCode *string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Status = status
			if trackingCode != nil {
				r.storage[i].TrackingCode = *trackingCode
			}
			return r.storage[i], nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) TransitionStatus(id, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			if r.storage[i].Status != from {
				return false, nil
			}
			r.storage[i].Status = to
			return true, nil
		}
	}
	return false, ErrNotFound
}
