//go:build unit

package keymutex_test

import (
	"sync"
	"testing"
	"time"

	"bookswap/internal/pkg/keymutex"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	km := keymutex.New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("exchange:1")
			defer km.Unlock("exchange:1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestIndependentKeysDoNotBlock(t *testing.T) {
	km := keymutex.New()

	km.Lock("a")
	defer km.Unlock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on an independent key blocked")
	}
}

func TestUnlockOfUnheldKeyPanics(t *testing.T) {
	km := keymutex.New()
	assert.Panics(t, func() { km.Unlock("missing") })
}
