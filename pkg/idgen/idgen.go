package idgen

import (
	"fmt"
	"sync"
	"time"
)

// Generator produces human-readable order numbers:
// prefix + unix seconds + 3-digit per-second sequence.
type Generator struct {
	mu       sync.Mutex
	prefix   string
	sequence int64
	lastTime int64
}

const maxSequence = 999

func New(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// Next returns the next order number. Within one second the sequence
// increments; on exhaustion it spins to the next second.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().Unix()
	if now == g.lastTime {
		g.sequence = (g.sequence + 1) % (maxSequence + 1)
		if g.sequence == 0 {
			for now <= g.lastTime {
				now = time.Now().Unix()
			}
		}
	} else {
		g.sequence = 0
	}
	g.lastTime = now

	return fmt.Sprintf("%s%d%03d", g.prefix, now, g.sequence)
}
