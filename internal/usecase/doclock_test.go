package usecase

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := km.Lock("doc-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := newKeyedMutex()

	// Holding one key must not block another.
	unlockA := km.Lock("doc-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("doc-b")
		unlockB()
		close(done)
	}()

	<-done
}

func TestKeyedMutexReentryAfterUnlock(t *testing.T) {
	km := newKeyedMutex()

	unlock := km.Lock("doc-1")
	unlock()

	unlock = km.Lock("doc-1")
	unlock()
}
