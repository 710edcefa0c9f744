package hierarchy

import (
	"fmt"

	"github.com/agentstation/regionmap/pkg/dataset"
	"github.com/agentstation/regionmap/pkg/errors"
)

// IDAllocator hands out synthetic ids from the per-depth bands of a profile.
// Ids within a band increase monotonically in allocation order.
type IDAllocator struct {
	width int
	start map[int]int
	next  map[int]int
}

// NewIDAllocator creates an allocator positioned at the start of every band.
func NewIDAllocator(bands dataset.Bands) *IDAllocator {
	a := &IDAllocator{
		width: bands.Width,
		start: make(map[int]int, len(bands.Levels)),
		next:  make(map[int]int, len(bands.Levels)),
	}
	for _, l := range bands.Levels {
		a.start[l.Depth] = l.Start
		a.next[l.Depth] = l.Start
	}
	return a
}

// Next returns the next unused id of the band for depth.
func (a *IDAllocator) Next(depth int) (int, error) {
	start, ok := a.start[depth]
	if !ok {
		return 0, errors.NewConfigError("bands", fmt.Sprintf("no synthetic id band configured for depth %d", depth), nil)
	}
	id := a.next[depth]
	if id >= start+a.width {
		return 0, errors.NewExhaustionError(fmt.Sprintf("depth %d id band", depth), a.width, id-start+1)
	}
	a.next[depth] = id + 1
	return id, nil
}

// Allocated returns how many ids have been handed out for depth.
func (a *IDAllocator) Allocated(depth int) int {
	return a.next[depth] - a.start[depth]
}
