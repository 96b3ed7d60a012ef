package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// OTPRepository keeps codes in process memory. Codes are lost on restart and
// are not shared between instances; use the redis store for that.
type OTPRepository struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewOTPRepository() *OTPRepository {
	return &OTPRepository{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (r *OTPRepository) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweep()
	r.entries[key] = entry{value: value, expiresAt: r.now().Add(ttl)}

	return nil
}

// Take deletes the entry only when it is live and equals expected.
func (r *OTPRepository) Take(ctx context.Context, key, expected string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return false, nil
	}

	if !r.now().Before(e.expiresAt) {
		delete(r.entries, key)
		return false, nil
	}

	if e.value != expected {
		return false, nil
	}

	delete(r.entries, key)
	return true, nil
}

func (r *OTPRepository) sweep() {
	now := r.now()
	for k, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, k)
		}
	}
}
