package tree

import "errors"

// ErrSkipChildren may be returned by a top-down action to prune the branch
// below a node without reporting an error.
var ErrSkipChildren = errors.New("skip children of node")

// ErrEmptyTree is returned if a traversal is called with an empty tree.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// Action is a function type to operate on tree nodes. It receives the node,
// its parent (nil for the start node) and the position of the node within
// the children of its parent.
type Action[T comparable] func(n *Node[T], parent *Node[T], position int) error

type visit[T comparable] struct {
	node     *Node[T]
	parent   *Node[T]
	position int
	done     bool // children have been pushed already
}

// TopDown traverses a tree starting at (and including) the root node.
// The traversal guarantees that parents are always processed before
// their children, and siblings are processed in order.
//
// If the action function returns an error for a node,
// descending the branch below this node is aborted. TopDown will continue
// with the remaining branches and return the last error that occured,
// except for ErrSkipChildren, which is never reported.
func TopDown[T comparable](root *Node[T], action Action[T]) error {
	if root == nil {
		return ErrEmptyTree
	}
	var lasterror error
	stack := []visit[T]{{node: root}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := action(v.node, v.parent, v.position); err != nil {
			if err != ErrSkipChildren {
				tracer().Debugf("top-down action for %v returned %v", v.node, err)
				lasterror = err
			}
			continue
		}
		children := v.node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, visit[T]{node: children[i], parent: v.node, position: i})
		}
	}
	return lasterror
}

// BottomUp traverses a tree starting at (and including) the root node.
// The traversal guarantees that parents are not processed before
// all of their children.
//
// If the action function returns an error for a node,
// the parent is processed regardless. BottomUp returns the last error
// that occured.
func BottomUp[T comparable](root *Node[T], action Action[T]) error {
	if root == nil {
		return ErrEmptyTree
	}
	var lasterror error
	stack := []visit[T]{{node: root}}
	for len(stack) > 0 {
		top := len(stack) - 1
		if stack[top].done {
			v := stack[top]
			stack = stack[:top]
			if err := action(v.node, v.parent, v.position); err != nil {
				lasterror = err
			}
			continue
		}
		stack[top].done = true
		node := stack[top].node
		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, visit[T]{node: children[i], parent: node, position: i})
		}
	}
	return lasterror
}

// Ancestors returns the chain of parents of a node, starting with the
// immediate parent and ending with the root. The node itself is not included.
func Ancestors[T comparable](node *Node[T]) []*Node[T] {
	var chain []*Node[T]
	for node != nil && node.parent != nil {
		node = node.parent
		chain = append(chain, node)
	}
	return chain
}
