package pipeline

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeenSetFirstSightingWins(t *testing.T) {
	seen := newSeenSet()

	assert.True(t, seen.Add("prod-1"))
	assert.False(t, seen.Add("prod-1"))
	assert.True(t, seen.Add("prod-2"))
	assert.Equal(t, 2, seen.Len())
}

func TestSeenSetConcurrentAdd(t *testing.T) {
	seen := newSeenSet()

	var wg sync.WaitGroup
	accepted := make(chan string, 1000)
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := fmt.Sprintf("prod-%d", i)
				if seen.Add(id) {
					accepted <- id
				}
			}
		}()
	}
	wg.Wait()
	close(accepted)

	// Each id is accepted exactly once across all goroutines
	counts := make(map[string]int)
	for id := range accepted {
		counts[id]++
	}
	assert.Len(t, counts, 100)
	for id, n := range counts {
		assert.Equal(t, 1, n, "id %s accepted more than once", id)
	}
	assert.Equal(t, 100, seen.Len())
}
