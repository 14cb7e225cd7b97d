package storage

import (
	"context"
	"fmt"
	"sync"

	"checkin-server/repo"
)

// keyedLock hands out one exclusive slot per key. Holders of different keys
// never wait on each other.
type keyedLock struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{slots: make(map[string]*lockSlot)}
}

// acquire blocks until the key is free or ctx is done. The returned func
// releases the key.
func (k *keyedLock) acquire(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	slot, ok := k.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		k.slots[key] = slot
	}
	slot.refs++
	k.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		return func() {
			<-slot.ch
			k.unref(key, slot)
		}, nil
	case <-ctx.Done():
		k.unref(key, slot)
		return nil, fmt.Errorf("%w: %v", repo.ErrLockTimeout, ctx.Err())
	}
}

func (k *keyedLock) unref(key string, slot *lockSlot) {
	k.mu.Lock()
	slot.refs--
	if slot.refs == 0 {
		delete(k.slots, key)
	}
	k.mu.Unlock()
}

func (k *keyedLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.slots)
}
