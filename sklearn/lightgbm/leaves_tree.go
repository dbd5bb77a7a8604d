package lightgbm

import (
	"math"
)

// LeavesNode is one internal node of a flattened tree
type LeavesNode struct {
	Threshold  float64
	Categories map[int]struct{} // categorical splits only
	Left       int32            // index into Nodes, or ^leafIndex when the child is a leaf
	Right      int32
	Feature    int
	Flags      uint8
}

const (
	categorical = 1 << 0
	defaultLeft = 1 << 1
	missingZero = 1 << 2
	missingNan  = 1 << 3
)

const zeroThreshold = 1e-35

// LeavesTree is a tree flattened from the JSON dump
type LeavesTree struct {
	Nodes      []LeavesNode
	LeafValues []float64
	Shrinkage  float64
	TreeIndex  int
}

// Predict returns the leaf value reached by fvals.
func (t *LeavesTree) Predict(fvals []float64) float64 {
	if len(t.Nodes) == 0 {
		// Constant tree with single leaf value
		if len(t.LeafValues) > 0 {
			return t.LeafValues[0]
		}
		return 0.0
	}

	idx := int32(0)
	for {
		node := &t.Nodes[idx]
		next := node.Right
		if t.decision(node, fvals[node.Feature]) {
			next = node.Left
		}
		if next < 0 {
			return t.LeafValues[^next]
		}
		idx = next
	}
}

// decision reports whether fval goes to the left child.
func (t *LeavesTree) decision(node *LeavesNode, fval float64) bool {
	if node.Flags&categorical > 0 {
		return categoricalDecision(node, fval)
	}
	return numericalDecision(node, fval)
}

func numericalDecision(node *LeavesNode, fval float64) bool {
	if math.IsNaN(fval) && node.Flags&missingNan == 0 {
		fval = 0.0
	}

	isZero := fval > -zeroThreshold && fval <= zeroThreshold
	if (node.Flags&missingZero > 0 && isZero) || (node.Flags&missingNan > 0 && math.IsNaN(fval)) {
		return node.Flags&defaultLeft > 0
	}

	return fval <= node.Threshold
}

func categoricalDecision(node *LeavesNode, fval float64) bool {
	if math.IsNaN(fval) {
		return false
	}
	ifval := int(fval)
	if ifval < 0 {
		return false
	}
	_, ok := node.Categories[ifval]
	return ok
}
