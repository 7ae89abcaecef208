package ast

// WalkFunc is the callback signature for Walk. Returning a non-nil error
// stops the walk immediately.
type WalkFunc func(n *Node) error

// Walk performs a depth-first, parent-before-children traversal of the tree
// rooted at root, calling fn for every node including those reachable only
// through child lists. Grounded on the teacher's mdast.Walk: same signature,
// same pre-order contract, same early-stop-via-error behavior.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := fn(root); err != nil {
		return err
	}
	for c := root.FirstChild; c != nil; c = c.Next {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// errStopWalk is a sentinel used internally to stop a walk once a result has
// been found, without surfacing an error to the caller.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (*stopWalkError) Error() string { return "stop walk" }

// FindAll returns every node for which predicate returns true, in document order.
func FindAll(root *Node, predicate func(*Node) bool) []*Node {
	var out []*Node
	_ = Walk(root, func(n *Node) error {
		if predicate(n) {
			out = append(out, n)
		}
		return nil
	})
	return out
}

// FindFirst returns the first node (in document order) for which predicate
// returns true, or nil if none match.
func FindFirst(root *Node, predicate func(*Node) bool) *Node {
	var found *Node
	_ = Walk(root, func(n *Node) error {
		if predicate(n) {
			found = n
			return errStopWalk
		}
		return nil
	})
	return found
}

// FindByKind returns every node of the given kind, in document order.
func FindByKind(root *Node, kind Kind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
