package platform

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	k := NewKeyedMutex()

	unlock := k.Lock(42)
	acquired := make(chan struct{})

	go func() {
		release := k.Lock(42)
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder entered a busy section")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second holder never entered the released section")
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	k := NewKeyedMutex()

	unlock := k.Lock(1)
	defer unlock()

	done := make(chan struct{})
	go func() {
		release := k.Lock(2)
		release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unrelated key was blocked")
	}
}

func TestKeyedMutexDropsIdleEntries(t *testing.T) {
	k := NewKeyedMutex()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(key int64) {
			defer wg.Done()
			k.Lock(key % 4)()
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 0, k.Len())
}
