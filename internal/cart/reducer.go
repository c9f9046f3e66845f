package cart

import (
	pkgerrors "github.com/chainfeed/storefront-backend/pkg/errors"
)

// Reduce applies an action to the current line collection and returns the
// resulting collection. It is pure: the input slice is never mutated, no
// I/O happens here, and the same (lines, action) pair always yields the
// same result. Only a structurally invalid Add payload produces an error;
// every other recognized action degrades to a no-op.
func Reduce(lines []Line, action Action) ([]Line, error) {
	switch act := action.(type) {
	case Add:
		return reduceAdd(lines, act)
	case Remove:
		return reduceRemove(lines, act.ID), nil
	case SetQuantity:
		return reduceSetQuantity(lines, act), nil
	case Clear:
		return []Line{}, nil
	case Initialize:
		return cloneLines(act.Lines), nil
	default:
		return lines, pkgerrors.New(pkgerrors.CodeInternal, "unrecognized cart action")
	}
}

func reduceAdd(lines []Line, act Add) ([]Line, error) {
	candidate, err := NewLine(act.Product, act.Quantity)
	if err != nil {
		return lines, err
	}

	next := cloneLines(lines)
	for i := range next {
		if next[i].ID == candidate.ID {
			// Merge on id: quantity accumulates, the stored price stays
			// frozen at what it was when the line was first created.
			next[i].Quantity += act.Quantity
			return next, nil
		}
	}
	return append(next, candidate), nil
}

func reduceRemove(lines []Line, id string) []Line {
	next := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ID == id {
			continue
		}
		next = append(next, line)
	}
	return next
}

func reduceSetQuantity(lines []Line, act SetQuantity) []Line {
	if act.Quantity < 1 {
		return cloneLines(lines)
	}
	next := cloneLines(lines)
	for i := range next {
		if next[i].ID == act.ID {
			next[i].Quantity = act.Quantity
			break
		}
	}
	return next
}

func cloneLines(lines []Line) []Line {
	next := make([]Line, len(lines))
	copy(next, lines)
	return next
}
