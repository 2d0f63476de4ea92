package scene

import (
	"math"
	"testing"

	"github.com/philipparndt/gobim/pkg/geometry"
)

func TestNodeAddRemove(t *testing.T) {
	s := NewScene()
	n := NewNode("helper")

	s.Add(n)
	if n.Parent() != s.Root {
		t.Error("Add did not set parent")
	}

	if !s.Remove(n) {
		t.Error("Remove returned false for attached node")
	}
	if n.Parent() != nil {
		t.Error("Remove did not clear parent")
	}
	if s.Remove(n) {
		t.Error("Remove returned true for detached node")
	}
}

func TestNodeReparent(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.Add(child)
	b.Add(child)

	if child.Parent() != b {
		t.Error("child not reparented")
	}
	if len(a.Children()) != 0 {
		t.Error("child still attached to old parent")
	}
}

func TestSceneTraverse(t *testing.T) {
	s := NewScene()
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	s.Add(a)
	a.Add(b)
	s.Add(c)

	visited := map[string]bool{}
	s.Traverse(func(n *Node) {
		visited[n.Name] = true
	})

	for _, name := range []string{"root", "a", "b", "c"} {
		if !visited[name] {
			t.Errorf("%s not visited", name)
		}
	}
}

func TestNodeWorldPosition(t *testing.T) {
	s := NewScene()
	parent := NewNode("parent")
	parent.Position = geometry.NewVector3(10, 0, 0)
	child := NewNode("child")
	child.Position = geometry.NewVector3(0, 5, 0)

	s.Add(parent)
	parent.Add(child)
	s.Root.UpdateWorldMatrix()

	want := geometry.NewVector3(10, 5, 0)
	if child.WorldPosition() != want {
		t.Errorf("WorldPosition = %v, want %v", child.WorldPosition(), want)
	}
}

func TestNewPlaneGeometry(t *testing.T) {
	g := NewPlaneGeometry(10)

	if len(g.Triangles) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(g.Triangles))
	}

	// All corners lie in the XY plane, half the side from the center
	for _, tri := range g.Triangles {
		for _, v := range []geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			if v.Z != 0 {
				t.Errorf("corner %v not in XY plane", v)
			}
			if math.Abs(v.X) != 5 || math.Abs(v.Y) != 5 {
				t.Errorf("corner %v not at half side length", v)
			}
		}
		if n := tri.CalculateNormal(); math.Abs(n.Z-1) > 1e-10 {
			t.Errorf("face normal %v not +Z", n)
		}
	}
}

func TestDisposeTracking(t *testing.T) {
	g := NewPlaneGeometry(1)
	m := NewMaterial("helper")

	if g.Disposed() || m.Disposed() {
		t.Error("fresh resources report disposed")
	}

	g.Dispose()
	m.Dispose()

	if g.DisposeCount() != 1 || m.DisposeCount() != 1 {
		t.Errorf("expected one dispose each, got %d and %d", g.DisposeCount(), m.DisposeCount())
	}
}

func TestModelBoundingBox(t *testing.T) {
	m := NewModel("site")
	tri := geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(-1, 0, 0),
		geometry.NewVector3(4, 0, 0),
		geometry.NewVector3(0, 2, 0),
	)
	m.AddItem(&Item{ID: "w1", Name: "wall", Mesh: NewMesh(NewGeometry([]geometry.Triangle{tri}), NewMaterial("concrete"))})
	m.AddItem(&Item{ID: "s1", Name: "space"}) // no geometry

	bbox := m.BoundingBox()
	if bbox.Min.X != -1 || bbox.Max.X != 4 || bbox.Max.Y != 2 {
		t.Errorf("unexpected bounds: %+v", bbox)
	}
}
