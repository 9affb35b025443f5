package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Nikk8744/F-T-T-sub000/services/logger"
)

type fakeHandle struct {
	mu       sync.Mutex
	messages [][]byte
	err      error
}

func (h *fakeHandle) Write(msg []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.messages = append(h.messages, msg)
	return nil
}

func (h *fakeHandle) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

func TestDirectoryRegisterUnregister(t *testing.T) {
	dir := NewDirectory()
	a, b := &fakeHandle{}, &fakeHandle{}

	dir.Register(1, a)
	dir.Register(1, b)
	dir.Register(1, a)

	if got := len(dir.HandlesFor(1)); got != 2 {
		t.Fatalf("HandlesFor(1) = %d handles, want 2", got)
	}

	dir.Unregister(1, a)
	if !dir.Online(1) {
		t.Fatal("user 1 should still be online with one handle")
	}

	dir.Unregister(1, b)
	dir.Unregister(1, b)
	if dir.Online(1) {
		t.Fatal("user 1 should be offline")
	}
	if got := len(dir.HandlesFor(1)); got != 0 {
		t.Errorf("HandlesFor(1) = %d, want 0", got)
	}
}

func TestDirectoryDeliverContinuesPastFailedHandle(t *testing.T) {
	dir := NewDirectory()
	broken := &fakeHandle{err: errors.New("closed")}
	ok := &fakeHandle{}
	dir.Register(7, broken)
	dir.Register(7, ok)

	n, err := dir.Deliver(7, []byte(`{"event":"x"}`))
	if n != 1 {
		t.Errorf("delivered = %d, want 1", n)
	}
	if err == nil {
		t.Error("expected the broken handle's error")
	}
	if ok.count() != 1 {
		t.Errorf("healthy handle got %d messages, want 1", ok.count())
	}
}

func TestDirectoryConcurrentAccess(t *testing.T) {
	dir := NewDirectory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := &fakeHandle{}
			uid := uint(i%5 + 1)
			dir.Register(uid, h)
			_, _ = dir.Deliver(uid, []byte("{}"))
			dir.Unregister(uid, h)
		}(i)
	}
	wg.Wait()

	for uid := uint(1); uid <= 5; uid++ {
		if dir.Online(uid) {
			t.Errorf("user %d still online", uid)
		}
	}
}

func TestLocalBrokerOfflineUserIsNotAnError(t *testing.T) {
	b := NewLocalBroker(NewDirectory(), logger.Nop{})
	if err := b.Publish(context.Background(), 42, []byte("{}")); err != nil {
		t.Fatalf("Publish to offline user: %v", err)
	}
}
