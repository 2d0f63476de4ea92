package geometry

import (
	"math"
	"testing"
)

func TestNewPlaneFromNormalAndPoint(t *testing.T) {
	// Unnormalized normal must be normalized before the constant is computed
	plane := NewPlaneFromNormalAndPoint(NewVector3(2, 0, 0), NewVector3(10, 20, 30))

	if math.Abs(plane.Normal.Length()-1) > 1e-10 {
		t.Errorf("normal not unit length: %v", plane.Normal)
	}
	if math.Abs(plane.Normal.X-1) > 1e-10 {
		t.Errorf("expected normal (1,0,0), got %v", plane.Normal)
	}
	if math.Abs(plane.Constant-(-10)) > 1e-10 {
		t.Errorf("expected constant -10, got %v", plane.Constant)
	}
}

func TestPlaneDistanceToPoint(t *testing.T) {
	plane := NewPlaneFromNormalAndPoint(NewVector3(0, 1, 0), NewVector3(0, 5, 0))

	cases := []struct {
		point Vector3
		want  float64
	}{
		{NewVector3(0, 5, 0), 0},
		{NewVector3(3, 8, -2), 3},
		{NewVector3(3, 1, -2), -4},
	}

	for _, c := range cases {
		got := plane.DistanceToPoint(c.point)
		if math.Abs(got-c.want) > 1e-10 {
			t.Errorf("DistanceToPoint(%v) = %v, want %v", c.point, got, c.want)
		}
	}
}

func TestPlaneNearParallel(t *testing.T) {
	base := NewPlaneFromNormalAndPoint(NewVector3(1, 0, 0), Vector3{})

	cases := []struct {
		name   string
		normal Vector3
		want   bool
	}{
		{"same", NewVector3(1, 0, 0), true},
		{"opposite", NewVector3(-1, 0, 0), true},
		{"slightly off", NewVector3(1, 0.05, 0), true},
		{"perpendicular", NewVector3(0, 1, 0), false},
		{"diagonal", NewVector3(1, 1, 0), false},
	}

	for _, c := range cases {
		other := NewPlaneFromNormalAndPoint(c.normal, Vector3{})
		if got := base.NearParallel(other, NearParallelTolerance); got != c.want {
			t.Errorf("%s: NearParallel = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestPlaneNearEqual(t *testing.T) {
	base := NewPlaneFromNormalAndPoint(NewVector3(0, 0, 1), NewVector3(0, 0, 7))

	// Same orientation, same offset
	same := NewPlaneFromNormalAndPoint(NewVector3(0, 0, 1), NewVector3(2, 3, 7.05))
	if !base.NearEqual(same, NearParallelTolerance, 0.1) {
		t.Error("expected planes at nearly the same offset to match")
	}

	// Same orientation, different offset: co-planar family, different cut
	shifted := NewPlaneFromNormalAndPoint(NewVector3(0, 0, 1), NewVector3(0, 0, 12))
	if base.NearEqual(shifted, NearParallelTolerance, 0.1) {
		t.Error("planes five units apart must not match")
	}
}

func TestPlaneNegate(t *testing.T) {
	plane := NewPlaneFromNormalAndPoint(NewVector3(0, 1, 0), NewVector3(0, 3, 0))
	neg := plane.Negate()

	if math.Abs(neg.Normal.Y+1) > 1e-10 || math.Abs(neg.Constant-3) > 1e-10 {
		t.Errorf("Negate failed: %+v", neg)
	}
	// Signed distances flip, the plane itself is the same point set
	p := NewVector3(1, 10, 1)
	if math.Abs(plane.DistanceToPoint(p)+neg.DistanceToPoint(p)) > 1e-10 {
		t.Error("negated plane distances do not mirror")
	}
}

func TestPlaneClone(t *testing.T) {
	plane := NewPlaneFromNormalAndPoint(NewVector3(0, 1, 0), NewVector3(0, 3, 0))
	clone := plane.Clone()

	if clone == &plane {
		t.Error("Clone returned the same pointer")
	}
	if *clone != plane {
		t.Errorf("Clone changed values: %+v != %+v", *clone, plane)
	}
}
