package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	kl := NewKeyLock()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kl.Lock("alloc:1:2025-11")
			defer kl.Unlock("alloc:1:2025-11")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyLock_DistinctKeysIndependent(t *testing.T) {
	kl := NewKeyLock()

	kl.Lock("slot:7:2025-11-01")
	// a different key must not block
	done := make(chan struct{})
	go func() {
		kl.Lock("slot:8:2025-11-01")
		kl.Unlock("slot:8:2025-11-01")
		close(done)
	}()
	<-done
	kl.Unlock("slot:7:2025-11-01")
}
