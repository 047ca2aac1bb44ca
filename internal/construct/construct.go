package construct

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// PathSeparator separates node ids in a path.
const PathSeparator = "/"

var (
	// ErrInvalidID is returned for empty or malformed node ids.
	ErrInvalidID = errors.New("invalid construct id")

	// ErrDuplicateID is returned when a sibling already uses the id.
	ErrDuplicateID = errors.New("duplicate construct id")

	// ErrNoStack is returned when a scope is not inside a stack.
	ErrNoStack = errors.New("scope is not inside a stack")
)

// Scope is anything that can parent nodes.
type Scope interface {
	Node() *Node
}

// Node is a position in the construct tree.
type Node struct {
	id       string
	parent   *Node
	children []*Node
	byID     map[string]*Node
	stack    *Stack
}

func newNode(parent *Node, id string) (*Node, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	n := &Node{id: id, parent: parent, byID: make(map[string]*Node)}
	if parent == nil {
		return n, nil
	}

	if _, exists := parent.byID[id]; exists {
		return nil, fmt.Errorf("%w: %q under %q", ErrDuplicateID, id, parent.Path())
	}
	parent.byID[id] = n
	parent.children = append(parent.children, n)
	n.stack = parent.stack
	return n, nil
}

// detach removes a leaf node from its parent.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	delete(p.byID, n.id)
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// ValidateID reports whether id can name a node. Ids must be non-empty, must
// not contain the path separator or control characters, and must contain at
// least one letter or digit so that a logical ID can be derived from them.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidID)
	}
	if strings.Contains(id, PathSeparator) {
		return fmt.Errorf("%w: %q must not contain %q", ErrInvalidID, id, PathSeparator)
	}

	hasAlnum := false
	for _, r := range id {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains control characters", ErrInvalidID, id)
		}
		if isAlnum(r) {
			hasAlnum = true
		}
	}
	if !hasAlnum {
		return fmt.Errorf("%w: %q has no letters or digits", ErrInvalidID, id)
	}
	return nil
}

// ID returns the node's id.
func (n *Node) ID() string {
	return n.id
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child nodes in declaration order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the direct child with the given id.
func (n *Node) Child(id string) (*Node, bool) {
	c, ok := n.byID[id]
	return c, ok
}

// Stack returns the stack containing the node, or nil when the node is the
// app root.
func (n *Node) Stack() *Stack {
	return n.stack
}

// Path returns the ids from the app root's child down to this node, joined
// with "/". The app root itself has an empty path.
func (n *Node) Path() string {
	return strings.Join(n.components(), PathSeparator)
}

func (n *Node) components() []string {
	var parts []string
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.id)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}

// Construct is a plain grouping node.
type Construct struct {
	node *Node
}

// New declares a grouping node under scope.
func New(scope Scope, id string) (*Construct, error) {
	if scope == nil || scope.Node() == nil {
		return nil, fmt.Errorf("%w: nil scope for %q", ErrInvalidID, id)
	}
	n, err := newNode(scope.Node(), id)
	if err != nil {
		return nil, err
	}
	return &Construct{node: n}, nil
}

// Node implements Scope.
func (c *Construct) Node() *Node {
	return c.node
}

// StackOf returns the stack that contains scope.
func StackOf(scope Scope) (*Stack, error) {
	if scope == nil || scope.Node() == nil || scope.Node().stack == nil {
		return nil, ErrNoStack
	}
	return scope.Node().stack, nil
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
