// Package dag builds the dependency graph of agent steps from a validated
// decomposition. Nodes are agents, edges are "depends on" relations derived
// from sequencing hints. The graph is built fresh per compilation and read
// only by the emitter afterwards.
package dag

import (
	"fmt"
	"strings"
)

// Node is a single agent step in the graph. Edge slices preserve insertion
// order so that traversal, and therefore emitted output, is deterministic.
type Node struct {
	// Name is the agent name, unique within the graph.
	Name string
	// Index is the agent's position in the input declaration order. It is
	// the tie-break key for every ordering decision downstream.
	Index int

	Role        string
	Instruction string

	// ForEach names the bound collection when this node is a
	// foreach-template. Expansion happens in the external runtime.
	ForEach string

	// LoopKeyword ("until" or "while") and LoopCondition mark a
	// convergence loop.
	LoopKeyword   string
	LoopCondition string

	deps       []*Node
	dependents []*Node
	depSet     map[string]struct{}
}

// Deps returns this node's direct predecessors in edge-insertion order.
func (n *Node) Deps() []*Node { return n.deps }

// Dependents returns the nodes that directly depend on this node.
func (n *Node) Dependents() []*Node { return n.dependents }

// IsRoot reports whether the node has no predecessors.
func (n *Node) IsRoot() bool { return len(n.deps) == 0 }

// Graph is the dependency DAG. Nodes are stored both by name for lookup and
// as an ordered slice preserving declaration order.
type Graph struct {
	byName map[string]*Node
	order  []*Node
}

// NewGraph returns an initialized, empty graph.
func NewGraph() *Graph {
	return &Graph{byName: make(map[string]*Node)}
}

// AddNode inserts a node for the named agent. The first declaration wins;
// adding the same name again does nothing.
func (g *Graph) AddNode(name, role, instruction string) *Node {
	if n, ok := g.byName[name]; ok {
		return n
	}
	n := &Node{
		Name:        name,
		Index:       len(g.order),
		Role:        role,
		Instruction: instruction,
		depSet:      make(map[string]struct{}),
	}
	g.byName[name] = n
	g.order = append(g.order, n)
	return n
}

// Node returns the named node, or nil.
func (g *Graph) Node(name string) *Node { return g.byName[name] }

// Nodes returns all nodes in declaration order.
func (g *Graph) Nodes() []*Node { return g.order }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// Roots returns the nodes with no predecessors, in declaration order.
func (g *Graph) Roots() []*Node {
	var roots []*Node
	for _, n := range g.order {
		if n.IsRoot() {
			roots = append(roots, n)
		}
	}
	return roots
}

// AddEdge records that `to` depends on `from`. Duplicate edges collapse;
// self-references and unknown node names are errors.
func (g *Graph) AddEdge(from, to string) error {
	if from == to {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", from, to)
	}
	fromNode, ok := g.byName[from]
	if !ok {
		return fmt.Errorf("source node not found: %s", from)
	}
	toNode, ok := g.byName[to]
	if !ok {
		return fmt.Errorf("destination node not found: %s", to)
	}
	if _, dup := toNode.depSet[from]; dup {
		return nil
	}
	toNode.depSet[from] = struct{}{}
	toNode.deps = append(toNode.deps, fromNode)
	fromNode.dependents = append(fromNode.dependents, toNode)
	return nil
}

// CycleError reports a dependency cycle. Path is the full ordered loop in
// execution-flow direction; the first and last entries are the same node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}

// DetectCycles checks the graph with a depth-first traversal tracking the
// recursion stack. It returns a *CycleError carrying the exact cycle path,
// or nil for an acyclic graph. No automatic cycle-breaking is attempted.
func (g *Graph) DetectCycles() error {
	const (
		white = iota // unvisited
		grey         // on the recursion stack
		black        // fully explored
	)
	color := make(map[string]int, len(g.order))
	var stack []*Node

	var visit func(n *Node) *CycleError
	visit = func(n *Node) *CycleError {
		color[n.Name] = grey
		stack = append(stack, n)

		for _, next := range n.dependents {
			switch color[next.Name] {
			case grey:
				return cycleFromStack(stack, next)
			case white:
				if err := visit(next); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[n.Name] = black
		return nil
	}

	for _, n := range g.order {
		if color[n.Name] == white {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleFromStack slices the recursion stack from the first occurrence of
// the revisited node and closes the loop.
func cycleFromStack(stack []*Node, repeat *Node) *CycleError {
	for i, n := range stack {
		if n == repeat {
			path := make([]string, 0, len(stack)-i+1)
			for _, m := range stack[i:] {
				path = append(path, m.Name)
			}
			path = append(path, repeat.Name)
			return &CycleError{Path: path}
		}
	}
	// The revisited node is always on the stack when colored grey.
	return &CycleError{Path: []string{repeat.Name, repeat.Name}}
}
