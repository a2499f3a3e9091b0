package virtual

import (
	"path"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
)

// Kind tags the node union.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// Node is one vertex of the virtual tree: a file holding bytes or a
// directory owning its children by name. The structure is a strict tree;
// a child belongs to exactly one parent and there are no back-references.
type Node struct {
	Kind     Kind             `json:"kind"`
	Content  []byte           `json:"content,omitempty"`
	Children map[string]*Node `json:"children,omitempty"`
	Created  int64            `json:"created"`
	Modified int64            `json:"modified"`
}

func newFile(content []byte, now int64) *Node {
	return &Node{Kind: KindFile, Content: content, Created: now, Modified: now}
}

func newDirectory(now int64) *Node {
	return &Node{Kind: KindDirectory, Children: map[string]*Node{}, Created: now, Modified: now}
}

func (n *Node) isDir() bool { return n.Kind == KindDirectory }

// clone deep-copies the subtree. Content bytes and the children mapping are
// duplicated so the result shares nothing with the original.
func (n *Node) clone() *Node {
	c := &Node{Kind: n.Kind, Created: n.Created, Modified: n.Modified}
	if n.Content != nil {
		c.Content = make([]byte, len(n.Content))
		copy(c.Content, n.Content)
	}
	if n.Children != nil {
		c.Children = make(map[string]*Node, len(n.Children))
		for name, child := range n.Children {
			c.Children[name] = child.clone()
		}
	}
	return c
}

// normalize repairs invariants after deserialization: directories always
// carry a non-nil children mapping, files never do.
func (n *Node) normalize() {
	if n.isDir() {
		if n.Children == nil {
			n.Children = map[string]*Node{}
		}
		n.Content = nil
		for _, child := range n.Children {
			child.normalize()
		}
		return
	}
	n.Children = nil
}

// entry builds the uniform entry record for this node at fullPath.
func (n *Node) entry(fullPath string) fs.Entry {
	name := path.Base(fullPath)
	if fullPath == "/" {
		name = "/"
	}
	e := fs.Entry{
		Path:     fullPath,
		Name:     name,
		IsDir:    n.isDir(),
		IsFile:   !n.isDir(),
		Modified: fs.Int64Ptr(n.Modified),
		Created:  fs.Int64Ptr(n.Created),
	}
	if !n.isDir() {
		e.Size = fs.Int64Ptr(int64(len(n.Content)))
	}
	return e
}
