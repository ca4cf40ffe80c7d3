package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextHasPrefix(t *testing.T) {
	g := New("DK")
	n := g.Next()
	require.True(t, strings.HasPrefix(n, "DK"))
	assert.Greater(t, len(n), 12)
}

func TestNextUniqueUnderConcurrency(t *testing.T) {
	g := New("DK")

	var mu sync.Mutex
	var all []string

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				n := g.Next()
				mu.Lock()
				all = append(all, n)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, len(all))
	for _, n := range all {
		require.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
	assert.Len(t, seen, 400)
}
