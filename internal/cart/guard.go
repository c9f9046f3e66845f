package cart

import (
	"strconv"
	"time"
)

const guardCapacity = 100

// txGuard suppresses duplicate add dispatches caused by rapid repeated UI
// events. It keeps a fixed-capacity ring of recently seen transaction
// tokens plus a companion set for O(1) membership; when the ring wraps,
// the oldest slot and its set entry are evicted together.
//
// The guard is best-effort: two adds of the same product within the same
// millisecond share a token and collapse into one dispatch. That is the
// intended handling for double-clicks and an accepted tradeoff for the
// rare legitimately distinct pair.
type txGuard struct {
	ring []string
	next int
	seen map[string]struct{}
}

func newTxGuard(capacity int) *txGuard {
	if capacity <= 0 {
		capacity = guardCapacity
	}
	return &txGuard{
		ring: make([]string, capacity),
		seen: make(map[string]struct{}, capacity),
	}
}

// admit records the token and reports whether the caller may dispatch.
// A false return means the token was already seen and the call must be
// treated as a successful duplicate suppression.
func (g *txGuard) admit(token string) bool {
	if _, ok := g.seen[token]; ok {
		return false
	}
	if evicted := g.ring[g.next]; evicted != "" {
		delete(g.seen, evicted)
	}
	g.ring[g.next] = token
	g.seen[token] = struct{}{}
	g.next = (g.next + 1) % len(g.ring)
	return true
}

// release drops the token from the seen set so a failed dispatch can be
// retried. The ring slot is cleared too: if the same token were re-admitted
// into a new slot, evicting the stale slot later would delete the live
// membership entry and shorten the window.
func (g *txGuard) release(token string) {
	delete(g.seen, token)
	for i := range g.ring {
		if g.ring[i] == token {
			g.ring[i] = ""
			break
		}
	}
}

func txToken(id string, at time.Time) string {
	return id + ":" + strconv.FormatInt(at.UnixMilli(), 10)
}
