package hierarchy

import (
	"strconv"
	"strings"

	"github.com/agentstation/regionmap/pkg/constants"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/regions"
)

// Tree links every region to its parent by ancestry index prefix. Positions
// refer to the region slice the tree was built from.
type Tree struct {
	regions  []regions.Region
	root     int
	parent   []int
	children [][]int
}

// BuildTree resolves the parent of every region. The parent of a region is
// the region whose ancestry index equals the child's index without its last
// component; regions at depth 2 hang off the root.
//
// Several regions can share an index (the two copies of a bilateral row).
// A sided child picks the candidate on its own side. Otherwise the last
// candidate preceding the child in table order wins, falling back to the
// last candidate overall.
func BuildTree(rs []regions.Region) (*Tree, error) {
	t := &Tree{
		regions:  rs,
		root:     -1,
		parent:   make([]int, len(rs)),
		children: make([][]int, len(rs)),
	}

	byIndex := make(map[string][]int, len(rs))
	for i := range rs {
		r := &rs[i]
		if r.IDSource == regions.IDSourceRoot {
			if t.root >= 0 {
				return nil, errors.NewCollisionError("root", strconv.Itoa(r.ID), []string{rs[t.root].Name, r.Name})
			}
			t.root = i
			continue
		}
		key := indexKey(r.Index)
		byIndex[key] = append(byIndex[key], i)
	}
	if t.root < 0 {
		return nil, errors.NewAncestryError("root", "", "no root region present")
	}
	t.parent[t.root] = -1

	for i := range rs {
		if i == t.root {
			continue
		}
		r := &rs[i]
		if !r.HasID() {
			return nil, errors.NewAncestryError(r.Name, r.RawIndex, "region has no id: no band applies and no segment label matches "+strconv.Quote(r.Acronym))
		}
		if len(r.Index) == 0 {
			return nil, errors.NewAncestryError(r.Name, r.RawIndex, "empty ancestry index")
		}

		parent := t.root
		if len(r.Index) > 1 {
			prefix := indexKey(r.Index[:len(r.Index)-1])
			candidates := byIndex[prefix]
			if len(candidates) == 0 {
				return nil, errors.NewAncestryError(r.Name, r.RawIndex, "no region has parent index "+prefix)
			}
			parent = chooseParent(rs, candidates, i)
		}
		t.parent[i] = parent
		t.children[parent] = append(t.children[parent], i)
	}
	return t, nil
}

// chooseParent picks one of the regions sharing the parent index.
func chooseParent(rs []regions.Region, candidates []int, child int) int {
	if side := rs[child].Side; side != regions.SideNone {
		var same []int
		for _, c := range candidates {
			if rs[c].Side == side {
				same = append(same, c)
			}
		}
		if len(same) > 0 {
			candidates = same
		}
	}

	best := candidates[len(candidates)-1]
	for _, c := range candidates {
		if c < child {
			best = c
		}
	}
	return best
}

// Root returns the position of the root region.
func (t *Tree) Root() int {
	return t.root
}

// Parent returns the position of the parent of region i, or false for the root.
func (t *Tree) Parent(i int) (int, bool) {
	p := t.parent[i]
	return p, p >= 0
}

// Children returns the positions of the direct children of region i in
// table order.
func (t *Tree) Children(i int) []int {
	return t.children[i]
}

// Path returns the ids from the root down to region i.
func (t *Tree) Path(i int) []int {
	var rev []int
	for at := i; at >= 0; at = t.parent[at] {
		rev = append(rev, t.regions[at].ID)
	}
	path := make([]int, len(rev))
	for j, id := range rev {
		path[len(rev)-1-j] = id
	}
	return path
}

// Walk visits every region depth first in table order, starting at the root.
// Returning false from fn skips the region's subtree.
func (t *Tree) Walk(fn func(pos, depth int) bool) {
	var visit func(pos, depth int)
	visit = func(pos, depth int) {
		if !fn(pos, depth) {
			return
		}
		for _, c := range t.children[pos] {
			visit(c, depth+1)
		}
	}
	visit(t.root, 1)
}

// OrderViolation describes a region whose table position disagrees with its
// structural parent, i.e. the most recent shallower row is not its parent.
type OrderViolation struct {
	Region     string
	Positional string
	Structural string
}

// OrderViolations reports where the table is not in parent-before-children
// order. Linking does not depend on that order; the report only flags input
// that a positional reading would have mis-linked.
func (t *Tree) OrderViolations() []OrderViolation {
	var out []OrderViolation
	lastAtDepth := make([]int, constants.MaxDepth+1)
	for d := range lastAtDepth {
		lastAtDepth[d] = -1
	}
	lastAtDepth[1] = t.root

	for i := range t.regions {
		if i == t.root {
			continue
		}
		r := &t.regions[i]
		depth := len(r.Index) + 1
		if depth > constants.MaxDepth {
			continue
		}
		lastAtDepth[depth] = i
		for d := depth + 1; d <= constants.MaxDepth; d++ {
			lastAtDepth[d] = -1
		}
		if depth == 2 {
			continue
		}

		structural := t.parent[i]
		positional := lastAtDepth[depth-1]
		if positional >= 0 && indexKey(t.regions[positional].Index) == indexKey(t.regions[structural].Index) {
			continue
		}
		v := OrderViolation{Region: r.Label(), Structural: t.regions[structural].Label(), Positional: "none"}
		if positional >= 0 {
			v.Positional = t.regions[positional].Label()
		}
		out = append(out, v)
	}
	return out
}

func indexKey(index []int) string {
	parts := make([]string, len(index))
	for i, v := range index {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, constants.IndexSeparator)
}
