package tags

// Standard tag keys for AWS resources.
// Using valheimctl.io prefix for clear namespacing.
const (
	// KeyStack identifies which stack a resource belongs to
	KeyStack = "valheimctl.io/stack"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "valheimctl.io/managed-by"

	// KeyGame identifies the game the server runs
	KeyGame = "valheimctl.io/game"
)

// ManagedByValheimctl is the KeyManagedBy value for resources we declare.
const ManagedByValheimctl = "valheimctl"

// TagBuilder provides a fluent interface for building resource tags.
type TagBuilder struct {
	tags map[string]string
}

// NewTagBuilder creates a new tag builder with the stack name pre-set.
func NewTagBuilder(stackName string) *TagBuilder {
	return &TagBuilder{
		tags: map[string]string{
			KeyStack:     stackName,
			KeyManagedBy: ManagedByValheimctl,
		},
	}
}

// WithGame adds the game tag.
func (tb *TagBuilder) WithGame(game string) *TagBuilder {
	if game != "" {
		tb.tags[KeyGame] = game
	}
	return tb
}

// Merge adds all tags from the provided map. User tags win over defaults.
func (tb *TagBuilder) Merge(extra map[string]string) *TagBuilder {
	for k, v := range extra {
		tb.tags[k] = v
	}
	return tb
}

// Build returns a copy of the tags map.
func (tb *TagBuilder) Build() map[string]string {
	result := make(map[string]string, len(tb.tags))
	for k, v := range tb.tags {
		result[k] = v
	}
	return result
}
