package keylock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Locker serializes work per string key inside one process.
// Each key is backed by a weighted semaphore of size 1 so waits honour the context.
// Entries are reference counted and dropped once nobody holds or waits on them.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

func New() *Locker {
	return &Locker{
		locks: make(map[string]*entry),
	}
}

// Lock acquires all keys in sorted order and returns a func releasing them.
// Callers locking overlapping key sets therefore never deadlock each other.
//
// Usage:
//
//	unlock, err := locker.Lock(ctx, "member:1", "inventory:3:7")
//	if err != nil {
//	    return err // ctx deadline exceeded or canceled
//	}
//	defer unlock()
func (l *Locker) Lock(ctx context.Context, keys ...string) (func(), error) {
	sorted := normalize(keys)
	acquired := make([]string, 0, len(sorted))

	for _, key := range sorted {
		e := l.ref(key)
		if err := e.sem.Acquire(ctx, 1); err != nil {
			l.unref(key)
			l.release(acquired)
			return nil, fmt.Errorf("keylock: acquire %q: %w", key, err)
		}
		acquired = append(acquired, key)
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(acquired) })
	}, nil
}

// Len returns the number of keys currently held or awaited
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *Locker) ref(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *Locker) release(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.mu.Lock()
		e := l.locks[keys[i]]
		e.sem.Release(1)
		l.mu.Unlock()
		l.unref(keys[i])
	}
}

func normalize(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
