package level

import (
	"fmt"

	"github.com/vovakirdan/tui-hive/internal/hexagon"
)

const historyInitialCapacity = 64

// StepHistory is an append-only change log grouped into steps.
//
// offsets[i] is the index just past the last change of step i, so offsets is
// strictly increasing. Changes past the last offset form the open step, which
// is either committed as a new step or discarded.
type StepHistory struct {
	changes []Change
	offsets []int
}

// NewStepHistory creates an empty history.
func NewStepHistory() *StepHistory {
	return &StepHistory{
		changes: make([]Change, 0, historyInitialCapacity),
		offsets: make([]int, 0, historyInitialCapacity),
	}
}

// StepCount returns the number of committed steps.
func (h *StepHistory) StepCount() int {
	return len(h.offsets)
}

// ChangeCount returns the number of stored changes, open step included.
func (h *StepHistory) ChangeCount() int {
	return len(h.changes)
}

// OpenCount returns the number of changes appended since the last commit.
func (h *StepHistory) OpenCount() int {
	return len(h.changes) - h.committedEnd()
}

// Offsets returns a copy of the step boundaries.
func (h *StepHistory) Offsets() []int {
	out := make([]int, len(h.offsets))
	copy(out, h.offsets)
	return out
}

// Step returns a copy of the changes of step i, counted from the oldest.
func (h *StepHistory) Step(i int) []Change {
	if i < 0 || i >= len(h.offsets) {
		return nil
	}
	start, end := h.stepBounds(i)
	out := make([]Change, end-start)
	copy(out, h.changes[start:end])
	return out
}

// Last returns a copy of the most recently committed step.
func (h *StepHistory) Last() []Change {
	return h.Step(len(h.offsets) - 1)
}

// Append adds c to the open step and returns its slot. The pointer is valid
// until the next Append.
func (h *StepHistory) Append(c Change) *Change {
	if len(h.changes) == cap(h.changes) {
		h.changes = growChanges(h.changes)
	}
	h.changes = append(h.changes, c)
	return &h.changes[len(h.changes)-1]
}

// Commit closes the open step and applies its changes to their entities,
// last appended first. A push chain is appended pusher first, so the
// furthest entity moves before the one pushing it. No-op when the open step
// is empty.
func (h *StepHistory) Commit() {
	open := h.OpenCount()
	if open == 0 {
		return
	}

	h.pushOffset(len(h.changes))

	for i := len(h.changes) - 1; i >= len(h.changes)-open; i-- {
		apply(h.changes[i])
	}
}

// Discard rejects the open step. The last appended change becomes Blocked,
// earlier ones Invalid, and each is applied for feedback before the open
// step is truncated. No-op when the open step is empty.
func (h *StepHistory) Discard(direction hexagon.Orientation) {
	open := h.OpenCount()
	if open == 0 {
		return
	}

	end := len(h.changes)
	for i := end - 1; i >= end-open; i-- {
		c := &h.changes[i]
		if i == end-1 {
			c.Kind = ChangeBlocked
		} else {
			c.Kind = ChangeInvalid
		}
		c.Face.Direction = direction
		apply(*c)
	}

	h.changes = h.changes[:end-open]
}

// PopStep removes the committed step offset steps back from the most recent
// one (0 is the most recent), shifting later changes down and re-biasing their
// boundaries. Out-of-range offsets are ignored. Popped changes are not
// reverted.
func (h *StepHistory) PopStep(offset int) {
	if offset < 0 || offset >= len(h.offsets) {
		return
	}

	index := len(h.offsets) - offset - 1
	start, end := h.stepBounds(index)
	size := end - start

	h.changes = append(h.changes[:start], h.changes[end:]...)

	h.offsets = append(h.offsets[:index], h.offsets[index+1:]...)
	for i := index; i < len(h.offsets); i++ {
		h.offsets[i] -= size
	}
}

// SwapStep moves the most recent step of h onto dst. Each change of the step
// is reversed in its original order, applied to its entity, reported to
// reverted (when non-nil) and appended to dst. The reversed changes are then
// committed on dst as one step without being applied again.
// Returns false when h has no committed step.
func (h *StepHistory) SwapStep(dst *StepHistory, reverted func(Change)) bool {
	if len(h.offsets) == 0 {
		return false
	}
	if dst.OpenCount() != 0 {
		panic("level: swap onto a history with an open step")
	}

	start, end := h.stepBounds(len(h.offsets) - 1)
	for i := start; i < end; i++ {
		r, ok := h.changes[i].Reversed()
		if !ok {
			continue
		}
		apply(r)
		if reverted != nil {
			reverted(r)
		}
		dst.Append(r)
	}

	if dst.OpenCount() > 0 {
		dst.pushOffset(len(dst.changes))
	}

	h.changes = h.changes[:start]
	h.offsets = h.offsets[:len(h.offsets)-1]
	return true
}

// Clear empties the history without releasing its storage.
func (h *StepHistory) Clear() {
	h.changes = h.changes[:0]
	h.offsets = h.offsets[:0]
}

func (h *StepHistory) committedEnd() int {
	if len(h.offsets) == 0 {
		return 0
	}
	return h.offsets[len(h.offsets)-1]
}

func (h *StepHistory) stepBounds(i int) (start, end int) {
	if i > 0 {
		start = h.offsets[i-1]
	}
	return start, h.offsets[i]
}

func (h *StepHistory) pushOffset(offset int) {
	if len(h.offsets) == cap(h.offsets) {
		h.offsets = growOffsets(h.offsets)
	}
	h.offsets = append(h.offsets, offset)
}

func growChanges(s []Change) []Change {
	n := make([]Change, len(s), grownCapacity(cap(s)))
	copy(n, s)
	return n
}

func growOffsets(s []int) []int {
	n := make([]int, len(s), grownCapacity(cap(s)))
	copy(n, s)
	return n
}

func grownCapacity(c int) int {
	if c == 0 {
		return historyInitialCapacity
	}
	return c * 2
}

func apply(c Change) {
	if c.Entity == nil {
		panic(fmt.Sprintf("level: %s change without entity", c.Kind))
	}
	c.Entity.HandleChange(c)
}
