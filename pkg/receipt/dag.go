package receipt

import (
	"errors"
	"fmt"
	"sort"
)

// Structural DAG errors. Wrapped errors carry the offending hash.
var (
	ErrNotFoundInDAG = errors.New("not found in DAG")
	ErrAlreadyInDAG  = errors.New("already exists in DAG")
)

// DAGNode is one receipt in the obligation graph, keyed by receipt hash with
// hash references to its parents. Nodes are never mutated after insertion.
type DAGNode struct {
	ReceiptHash  string   `json:"receipt_hash"`
	ParentHashes []string `json:"parent_hashes"`
	Receipt      Receipt  `json:"receipt"`
}

// DAG is a hash-keyed arena of receipt nodes. It generalizes the linear
// chain to multiple parents for forked and merged obligations. Parent and
// child relationships are hash references resolved through the node map, so
// the structure stays content-addressed and serializable.
//
// A DAG is not safe for concurrent mutation; callers serialize writes.
type DAG struct {
	nodes    map[string]DAGNode
	childRef map[string]int // times a hash is referenced as a parent
}

// NewDAG creates an empty receipt DAG.
func NewDAG() *DAG {
	return &DAG{
		nodes:    make(map[string]DAGNode),
		childRef: make(map[string]int),
	}
}

// AddNode inserts a receipt with the given parent hashes. Every parent must
// already be present, and the receipt hash must be new.
func (d *DAG) AddNode(r Receipt, parentHashes []string) error {
	if _, ok := d.nodes[r.ReceiptHash]; ok {
		return fmt.Errorf("receipt %s: %w", r.ReceiptHash, ErrAlreadyInDAG)
	}
	for _, p := range parentHashes {
		if _, ok := d.nodes[p]; !ok {
			return fmt.Errorf("parent %s: %w", p, ErrNotFoundInDAG)
		}
	}
	parents := make([]string, len(parentHashes))
	copy(parents, parentHashes)
	d.nodes[r.ReceiptHash] = DAGNode{
		ReceiptHash:  r.ReceiptHash,
		ParentHashes: parents,
		Receipt:      r,
	}
	for _, p := range parents {
		d.childRef[p]++
	}
	return nil
}

// Get retrieves a node by receipt hash.
func (d *DAG) Get(hash string) (DAGNode, bool) {
	n, ok := d.nodes[hash]
	return n, ok
}

// Len returns the number of nodes.
func (d *DAG) Len() int {
	return len(d.nodes)
}

// Roots returns the hashes of nodes with no parents, sorted.
func (d *DAG) Roots() []string {
	var roots []string
	for hash, n := range d.nodes {
		if len(n.ParentHashes) == 0 {
			roots = append(roots, hash)
		}
	}
	sort.Strings(roots)
	return roots
}

// Leaves returns the hashes of nodes never referenced as a parent, sorted.
// Leaves are the currently open branches of the obligation graph.
func (d *DAG) Leaves() []string {
	var leaves []string
	for hash := range d.nodes {
		if d.childRef[hash] == 0 {
			leaves = append(leaves, hash)
		}
	}
	sort.Strings(leaves)
	return leaves
}

// CommonAncestors returns the sorted intersection of the two nodes' ancestor
// sets. A node is its own sole common ancestor when compared with itself.
// Disconnected nodes yield an empty slice.
func (d *DAG) CommonAncestors(a, b string) ([]string, error) {
	if _, ok := d.nodes[a]; !ok {
		return nil, fmt.Errorf("receipt %s: %w", a, ErrNotFoundInDAG)
	}
	if _, ok := d.nodes[b]; !ok {
		return nil, fmt.Errorf("receipt %s: %w", b, ErrNotFoundInDAG)
	}
	if a == b {
		return []string{a}, nil
	}
	ancestorsA := d.ancestors(a)
	ancestorsB := d.ancestors(b)
	common := []string{}
	for hash := range ancestorsA {
		if ancestorsB[hash] {
			common = append(common, hash)
		}
	}
	sort.Strings(common)
	return common, nil
}

// ancestors walks parent edges breadth-first and returns the full ancestor
// set of start, excluding start itself.
func (d *DAG) ancestors(start string) map[string]bool {
	seen := make(map[string]bool)
	queue := append([]string(nil), d.nodes[start].ParentHashes...)
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]
		if seen[hash] {
			continue
		}
		seen[hash] = true
		queue = append(queue, d.nodes[hash].ParentHashes...)
	}
	return seen
}

// Reputation returns the arithmetic mean of the outcome values of all leaf
// receipts, using the default breach penalties. Leaves represent unresolved
// branches; internal nodes are history already reflected in their children.
// An empty DAG scores 0.
func (d *DAG) Reputation() float64 {
	return d.ReputationWithPenalty(DefaultBreachPenalty)
}

// ReputationWithPenalty is Reputation with a caller-supplied severity
// penalty table.
func (d *DAG) ReputationWithPenalty(penalty map[Severity]float64) float64 {
	leaves := d.Leaves()
	if len(leaves) == 0 {
		return 0
	}
	var sum float64
	for _, hash := range leaves {
		v := OutcomeValue(d.nodes[hash].Receipt, penalty)
		if v < 0 {
			v = 0
		}
		sum += v
	}
	return sum / float64(len(leaves))
}
