package cart

import (
	"fmt"
	"testing"
	"time"
)

func TestGuardSuppressesDuplicateToken(t *testing.T) {
	t.Parallel()

	g := newTxGuard(guardCapacity)
	token := txToken("x", time.UnixMilli(1700000000000))

	if !g.admit(token) {
		t.Fatal("first admit must succeed")
	}
	if g.admit(token) {
		t.Fatal("second admit of the same token must be suppressed")
	}
}

func TestGuardTokenShape(t *testing.T) {
	t.Parallel()

	token := txToken("prod-1", time.UnixMilli(1700000000123))
	if token != "prod-1:1700000000123" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestGuardEvictsOldestAtCapacity(t *testing.T) {
	t.Parallel()

	g := newTxGuard(3)

	for i := 0; i < 3; i++ {
		if !g.admit(fmt.Sprintf("t%d", i)) {
			t.Fatalf("admit t%d failed", i)
		}
	}

	// t0 is the oldest slot; admitting a fourth token evicts it.
	if !g.admit("t3") {
		t.Fatal("admit t3 failed")
	}
	if !g.admit("t0") {
		t.Fatal("t0 should have been evicted and admissible again")
	}
	// t2 is still inside the window.
	if g.admit("t2") {
		t.Fatal("t2 should still be suppressed")
	}
}

func TestGuardReleaseAllowsRetry(t *testing.T) {
	t.Parallel()

	g := newTxGuard(guardCapacity)
	token := "x:123"

	if !g.admit(token) {
		t.Fatal("first admit must succeed")
	}
	g.release(token)
	if !g.admit(token) {
		t.Fatal("released token must be admissible for retry")
	}
}

func TestGuardReleasedSlotDoesNotShortenWindow(t *testing.T) {
	t.Parallel()

	g := newTxGuard(3)

	// Release leaves no stale copy of the token in the ring; a later
	// re-admission must get the full window.
	if !g.admit("x") {
		t.Fatal("first admit must succeed")
	}
	g.release("x")
	if !g.admit("x") {
		t.Fatal("re-admit after release must succeed")
	}
	if !g.admit("a") {
		t.Fatal("admit a failed")
	}
	if !g.admit("b") {
		t.Fatal("admit b failed")
	}

	// Only two admissions have happened since x came back; at capacity 3
	// it is still inside the window and must stay suppressed.
	if g.admit("x") {
		t.Fatal("x must still be suppressed")
	}
}
