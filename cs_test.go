package bipring

import (
	"sync"
	"testing"
)

func TestWithExcludesConcurrentCallers(t *testing.T) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			With(func(cs CS) {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
			})
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Fatalf("max concurrent With callers = %d, want 1", maxSeen)
	}
}
