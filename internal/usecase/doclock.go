package usecase

import "sync"

// keyedMutex serializes operations per document ID. Two signers stamping the
// same document concurrently would otherwise both read the same source
// snapshot and the last pointer write would silently discard the other's
// stamp; holding the document's lock across the read-stamp-update sequence
// applies stamps one after another onto the latest file.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
