package construct

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/imamik/valheimctl/internal/template"
)

// stackNameRegex matches names CloudFormation accepts for stacks.
var stackNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,127}$`)

// App is the root of a construct tree.
type App struct {
	node   *Node
	stacks []*Stack
}

// NewApp returns an empty app.
func NewApp() *App {
	return &App{node: &Node{byID: make(map[string]*Node)}}
}

// Node implements Scope.
func (a *App) Node() *Node {
	return a.node
}

// Stacks returns the stacks in declaration order.
func (a *App) Stacks() []*Stack {
	out := make([]*Stack, len(a.stacks))
	copy(out, a.stacks)
	return out
}

// Synth returns the template of every stack keyed by stack name.
func (a *App) Synth() map[string]*template.Template {
	out := make(map[string]*template.Template, len(a.stacks))
	for _, s := range a.stacks {
		out[s.Name()] = s.Template()
	}
	return out
}

// StackProps configures a stack.
type StackProps struct {
	// Description is written to the template.
	Description string

	// Tags are applied to every taggable resource in the stack.
	Tags map[string]string
}

// Stack is a deployable unit that owns one template.
type Stack struct {
	node     *Node
	tmpl     *template.Template
	tags     map[string]string
	declared map[*Node]string
}

// NewStack declares a stack in app. The id doubles as the CloudFormation
// stack name, so it must satisfy CloudFormation's naming rules.
func NewStack(app *App, id string, props StackProps) (*Stack, error) {
	if app == nil {
		return nil, fmt.Errorf("%w: nil app for stack %q", ErrInvalidID, id)
	}
	if !stackNameRegex.MatchString(id) {
		return nil, fmt.Errorf("%w: stack name %q must start with a letter and contain only letters, digits and hyphens (max 128)", ErrInvalidID, id)
	}

	n, err := newNode(app.node, id)
	if err != nil {
		return nil, err
	}

	s := &Stack{
		node:     n,
		tmpl:     template.New(props.Description),
		tags:     make(map[string]string, len(props.Tags)),
		declared: make(map[*Node]string),
	}
	for k, v := range props.Tags {
		s.tags[k] = v
	}
	n.stack = s
	app.stacks = append(app.stacks, s)
	return s, nil
}

// Node implements Scope.
func (s *Stack) Node() *Node {
	return s.node
}

// Name returns the stack name.
func (s *Stack) Name() string {
	return s.node.id
}

// Template returns the stack's template. Callers may inspect it; resources
// are added through Declare.
func (s *Stack) Template() *template.Template {
	return s.tmpl
}

// Tags returns the stack tags sorted by key.
func (s *Stack) Tags() []template.Tag {
	keys := make([]string, 0, len(s.tags))
	for k := range s.tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]template.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, template.Tag{Key: k, Value: s.tags[k]})
	}
	return out
}

// Declare creates a node for id under scope and registers r in the template
// under the node's logical ID.
func (s *Stack) Declare(scope Scope, id string, r *template.Resource) (string, error) {
	if scope == nil || scope.Node() == nil || scope.Node().stack != s {
		return "", fmt.Errorf("%w: %q", ErrNoStack, id)
	}

	n, err := newNode(scope.Node(), id)
	if err != nil {
		return "", err
	}

	lid := s.LogicalID(n)
	if err := s.tmpl.AddResource(lid, r); err != nil {
		n.detach()
		return "", fmt.Errorf("%w: %v", ErrDuplicateID, err)
	}
	s.declared[n] = lid
	return lid, nil
}

// LogicalID returns the template key for a node in this stack.
func (s *Stack) LogicalID(n *Node) string {
	if lid, ok := s.declared[n]; ok {
		return lid
	}

	all := n.components()
	// Drop the stack's own id.
	return logicalID(all[1:])
}

// AddOutput registers a stack output. The key must be alphanumeric.
func (s *Stack) AddOutput(key string, o *template.Output) error {
	if key == "" || removeNonAlphanumeric(key) != key {
		return fmt.Errorf("%w: output key %q must be alphanumeric", ErrInvalidID, key)
	}
	if err := s.tmpl.AddOutput(key, o); err != nil {
		return fmt.Errorf("%w: %v", ErrDuplicateID, err)
	}
	return nil
}
