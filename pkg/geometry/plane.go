package geometry

import "math"

// NearParallelTolerance is the default tolerance used to decide whether
// two plane normals describe the same orientation. Plane reconstruction
// drifts slightly between apply and remove cycles, so orientation
// matching is approximate on purpose.
const NearParallelTolerance = 0.01

// Plane represents an infinite plane in Hessian normal form:
// all points p with Normal·p + Constant = 0. Points with a negative
// signed distance lie in the half-space a clipping plane removes.
type Plane struct {
	Normal   Vector3
	Constant float64
}

// NewPlane creates a plane from a unit normal and signed constant.
func NewPlane(normal Vector3, constant float64) Plane {
	return Plane{Normal: normal, Constant: constant}
}

// NewPlaneFromNormalAndPoint creates the plane through point with the
// given normal. The normal is normalized; the constant is the negated
// projection of the point onto it.
func NewPlaneFromNormalAndPoint(normal, point Vector3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Constant: -point.Dot(n)}
}

// DistanceToPoint returns the signed distance from the point to the plane.
func (p Plane) DistanceToPoint(point Vector3) float64 {
	return p.Normal.Dot(point) + p.Constant
}

// Negate returns the plane with the opposite orientation.
func (p Plane) Negate() Plane {
	return Plane{Normal: p.Normal.Negate(), Constant: -p.Constant}
}

// Clone returns a new plane with the same normal and constant.
func (p *Plane) Clone() *Plane {
	c := *p
	return &c
}

// NearParallel reports whether the plane's normal and other's normal
// describe the same orientation, up to sign, within tol.
func (p Plane) NearParallel(other Plane, tol float64) bool {
	return math.Abs(math.Abs(p.Normal.Dot(other.Normal))-1) <= tol
}

// NearEqual reports whether other is close to the same plane: normals
// near-parallel within normalTol and constants within constantTol.
func (p Plane) NearEqual(other Plane, normalTol, constantTol float64) bool {
	return p.NearParallel(other, normalTol) &&
		math.Abs(p.Constant-other.Constant) <= constantTol
}
