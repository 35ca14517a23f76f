package reslock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockerSerializesPerResource(t *testing.T) {
	l := New()

	const workers = 32
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock(7)
			counter++
			l.Unlock(7)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestDifferentResourcesDoNotBlock(t *testing.T) {
	l := New()

	l.Lock(1)
	done := make(chan struct{})
	go func() {
		l.Lock(2)
		l.Unlock(2)
		close(done)
	}()
	<-done
	l.Unlock(1)
}
