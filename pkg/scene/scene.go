// Package scene provides the retained model of what the viewer draws:
// a small scene graph of transformable nodes, mesh geometry with
// materials, loaded model item lists and the renderer clipping state.
package scene

import "github.com/philipparndt/gobim/pkg/geometry"

// Node is an object in the scene graph with a local transform.
// A node may carry a renderable mesh.
type Node struct {
	Name     string
	Position geometry.Vector3
	Rotation geometry.Quaternion
	Scale    geometry.Vector3
	Visible  bool
	Mesh     *Mesh

	parent        *Node
	children      []*Node
	worldPosition geometry.Vector3
}

// NewNode creates a visible node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: geometry.IdentityQuaternion(),
		Scale:    geometry.NewVector3(1, 1, 1),
		Visible:  true,
	}
}

// Add attaches child to the node. A child already attached elsewhere is
// reparented.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from the node. It reports whether the child was
// attached.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// Traverse calls fn for the node and every descendant, depth first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// UpdateWorldMatrix refreshes the cached world position of the node and
// its subtree from the parent chain.
func (n *Node) UpdateWorldMatrix() {
	if n.parent != nil {
		n.worldPosition = n.parent.worldPosition.Add(n.Position)
	} else {
		n.worldPosition = n.Position
	}
	for _, c := range n.children {
		c.UpdateWorldMatrix()
	}
}

// WorldPosition returns the node position in world space as of the last
// UpdateWorldMatrix.
func (n *Node) WorldPosition() geometry.Vector3 {
	return n.worldPosition
}

// Scene is the root of the scene graph.
type Scene struct {
	Root *Node
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{Root: NewNode("root")}
}

// Add attaches a node at the scene root.
func (s *Scene) Add(n *Node) {
	s.Root.Add(n)
}

// Remove detaches a node from the scene root.
func (s *Scene) Remove(n *Node) bool {
	return s.Root.Remove(n)
}

// Traverse visits every node in the scene.
func (s *Scene) Traverse(fn func(*Node)) {
	s.Root.Traverse(fn)
}
