package notification

import (
	"errors"
	"fmt"
	"sync"
)

// Handle is one live connection. *melody.Session satisfies it.
type Handle interface {
	Write(msg []byte) error
}

// Directory maps a user to the live connections currently open for them
type Directory struct {
	mu      sync.RWMutex
	handles map[uint]map[Handle]struct{}
}

func NewDirectory() *Directory {
	return &Directory{handles: make(map[uint]map[Handle]struct{})}
}

func (d *Directory) Register(userID uint, h Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	set, ok := d.handles[userID]
	if !ok {
		set = make(map[Handle]struct{})
		d.handles[userID] = set
	}
	set[h] = struct{}{}
}

func (d *Directory) Unregister(userID uint, h Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	set, ok := d.handles[userID]
	if !ok {
		return
	}
	delete(set, h)
	if len(set) == 0 {
		delete(d.handles, userID)
	}
}

// HandlesFor returns a snapshot; callers may write to it without holding the lock
func (d *Directory) HandlesFor(userID uint) []Handle {
	d.mu.RLock()
	defer d.mu.RUnlock()

	set := d.handles[userID]
	out := make([]Handle, 0, len(set))
	for h := range set {
		out = append(out, h)
	}
	return out
}

func (d *Directory) Online(userID uint) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handles[userID]) > 0
}

// Deliver writes payload to every handle of userID and returns how many writes succeeded
func (d *Directory) Deliver(userID uint, payload []byte) (int, error) {
	var (
		delivered int
		errs      []error
	)
	for _, h := range d.HandlesFor(userID) {
		if err := h.Write(payload); err != nil {
			errs = append(errs, fmt.Errorf("write to user %d: %w", userID, err))
			continue
		}
		delivered++
	}
	return delivered, errors.Join(errs...)
}
