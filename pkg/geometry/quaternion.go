package geometry

import "math"

// Quaternion represents a rotation with X, Y, Z and W components.
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion returns the identity rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// NewQuaternionAxisAngle returns the rotation of angle radians about
// the given unit axis.
func NewQuaternionAxisAngle(axis Vector3, angle float64) Quaternion {
	half := angle / 2
	s := math.Sin(half)
	return Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(half),
	}
}

// NewQuaternionFromUnitVectors returns the rotation taking unit vector
// from to unit vector to. Antiparallel inputs rotate about an arbitrary
// perpendicular axis.
func NewQuaternionFromUnitVectors(from, to Vector3) Quaternion {
	const eps = 1e-6

	var v Vector3
	r := from.Dot(to) + 1
	if r < eps {
		// 180 degree rotation: pick any axis perpendicular to from
		r = 0
		if math.Abs(from.X) > math.Abs(from.Z) {
			v = Vector3{X: -from.Y, Y: from.X}
		} else {
			v = Vector3{Y: -from.Z, Z: from.Y}
		}
	} else {
		v = from.Cross(to)
	}

	q := Quaternion{X: v.X, Y: v.Y, Z: v.Z, W: r}
	return q.Normalize()
}

// Mul returns the composed rotation q then other applied first,
// i.e. the Hamilton product q * other.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y + q.Y*other.W + q.Z*other.X - q.X*other.Z,
		Z: q.W*other.Z + q.Z*other.W + q.X*other.Y - q.Y*other.X,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Length returns the magnitude of the quaternion.
func (q Quaternion) Length() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns the unit quaternion in the same orientation.
// The zero quaternion normalizes to the identity.
func (q Quaternion) Normalize() Quaternion {
	l := q.Length()
	if l == 0 {
		return IdentityQuaternion()
	}
	inv := 1 / l
	return Quaternion{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Conjugate returns the quaternion with the vector part negated.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to a vector.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	// p' = q * p * q^-1, expanded without building intermediate quaternions
	ix := q.W*v.X + q.Y*v.Z - q.Z*v.Y
	iy := q.W*v.Y + q.Z*v.X - q.X*v.Z
	iz := q.W*v.Z + q.X*v.Y - q.Y*v.X
	iw := -q.X*v.X - q.Y*v.Y - q.Z*v.Z

	return Vector3{
		X: ix*q.W + iw*-q.X + iy*-q.Z - iz*-q.Y,
		Y: iy*q.W + iw*-q.Y + iz*-q.X - ix*-q.Z,
		Z: iz*q.W + iw*-q.Z + ix*-q.Y - iy*-q.X,
	}
}
