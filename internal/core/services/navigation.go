package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driving"
)

// Ensure NavigationService implements the interface.
var _ driving.NavigationService = (*NavigationService)(nil)

// NavigationService derives the category tree, breadcrumb trails and
// tables of contents from catalog data. It is stateless: every method
// is a pure function of its arguments.
type NavigationService struct{}

// NewNavigationService creates a navigation service.
func NewNavigationService() *NavigationService {
	return &NavigationService{}
}

// BuildTree derives the category tree from the documents' slash-
// delimited category strings. Directory nodes are deduplicated by
// their full path prefix, so "Agents/Core" and "Agents/Swarm" share
// one "Agents" node. Rebuilding from the same documents yields an
// isomorphic tree.
func (s *NavigationService) BuildTree(documents []domain.Document) []*domain.TreeNode {
	roots := make([]*domain.TreeNode, 0)
	dirs := make(map[string]*domain.TreeNode)

	for _, doc := range documents {
		segments := doc.CategorySegments()

		var parent *domain.TreeNode
		prefix := ""
		for level, segment := range segments {
			if prefix == "" {
				prefix = segment
			} else {
				prefix = prefix + "/" + segment
			}

			node, ok := dirs[prefix]
			if !ok {
				node = &domain.TreeNode{
					ID:    prefix,
					Label: segment,
					Type:  domain.NodeDirectory,
					Level: level,
				}
				if parent != nil {
					node.ParentID = parent.ID
					parent.Children = append(parent.Children, node)
				} else {
					roots = append(roots, node)
				}
				dirs[prefix] = node
			}
			parent = node
		}

		leaf := &domain.TreeNode{
			ID:       doc.ID,
			Label:    doc.Title,
			Type:     domain.NodeFile,
			ParentID: parent.ID,
			Level:    len(segments),
			FilePath: doc.FilePath,
		}
		parent.Children = append(parent.Children, leaf)
	}

	return roots
}

// Flatten returns a pre-order traversal of the tree. Every node's
// parent appears before the node itself.
func (s *NavigationService) Flatten(roots []*domain.TreeNode) []*domain.TreeNode {
	flat := make([]*domain.TreeNode, 0)

	var walk func(node *domain.TreeNode)
	walk = func(node *domain.TreeNode) {
		flat = append(flat, node)
		for _, child := range node.Children {
			walk(child)
		}
	}

	for _, root := range roots {
		walk(root)
	}
	return flat
}

// Breadcrumbs derives the navigation trail for a document file path.
// Each entry's path strictly extends the previous one; the last entry
// carries the cleaned filename as its label.
func (s *NavigationService) Breadcrumbs(filePath string) []domain.Breadcrumb {
	trimmed := strings.Trim(filePath, "/")
	if trimmed == "" {
		return []domain.Breadcrumb{}
	}

	segments := strings.Split(trimmed, "/")
	crumbs := make([]domain.Breadcrumb, 0, len(segments))

	path := ""
	for i, segment := range segments {
		if path == "" {
			path = segment
		} else {
			path = path + "/" + segment
		}

		label := segment
		if i == len(segments)-1 {
			label = strings.TrimSuffix(label, ".md")
		}
		crumbs = append(crumbs, domain.Breadcrumb{
			Label: titleCase(label),
			Path:  path,
		})
	}

	return crumbs
}

// titleCase turns a path segment like "getting-started" into
// "Getting Started".
func titleCase(segment string) string {
	words := strings.Split(strings.ReplaceAll(segment, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// TableOfContents scans markdown heading lines into TOC entries.
// Duplicate heading texts slug to the same ID; collisions are kept
// as-is rather than suffixed.
func (s *NavigationService) TableOfContents(markdown string) []domain.TOCEntry {
	entries := make([]domain.TOCEntry, 0)

	for _, line := range strings.Split(markdown, "\n") {
		level := 0
		for level < len(line) && line[level] == '#' {
			level++
		}
		if level == 0 || level > 6 {
			continue
		}
		rest := line[level:]
		if rest == "" || rest[0] != ' ' {
			continue
		}

		title := strings.TrimSpace(rest)
		if title == "" {
			continue
		}

		entries = append(entries, domain.TOCEntry{
			Level: level,
			Title: title,
			ID:    slugify(title),
		})
	}

	return entries
}

// slugify lowercases, maps spaces to dashes and strips everything
// outside [a-z0-9-].
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}
