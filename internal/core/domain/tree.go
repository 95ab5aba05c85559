package domain

// NodeType distinguishes directory nodes from file leaves.
type NodeType string

const (
	// NodeDirectory is an intermediate category node.
	NodeDirectory NodeType = "directory"

	// NodeFile is a leaf node backed by a document.
	NodeFile NodeType = "file"
)

// TreeNode is a node in the category navigation tree derived from the
// documents' slash-delimited category strings.
//
// Invariants: root nodes have ParentID == "" and Level == 0; every
// non-root node's Level is its parent's Level + 1; file nodes are
// always leaves.
type TreeNode struct {
	// ID is the node's unique identifier. Directory nodes use their
	// full category path prefix; file nodes use the document ID.
	ID string

	// Label is the display name for this node.
	Label string

	// Type is directory or file.
	Type NodeType

	// ParentID is the parent node's ID, empty for roots.
	ParentID string

	// Children holds child nodes in insertion order.
	Children []*TreeNode

	// Level is the depth of this node; roots are level 0.
	Level int

	// FilePath is set on file nodes only.
	FilePath string
}

// Breadcrumb is one entry in a navigation trail. Path grows strictly
// with each successive entry.
type Breadcrumb struct {
	Label string
	Path  string
}

// TOCEntry is a single table-of-contents row derived from a markdown
// heading line.
type TOCEntry struct {
	// Level is the heading depth, 1 to 6.
	Level int

	// Title is the heading text with markdown markers stripped.
	Title string

	// ID is the slugified anchor. Duplicate headings slug to the same
	// ID; collisions are preserved rather than suffixed.
	ID string
}
