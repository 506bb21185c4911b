// Package coordinateframe defines rigid 3D coordinate frames and does the
// math of translating points and vectors between a frame and its reference
// frame, plus frame-to-frame composition.
package coordinateframe

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/mathsim/coordinate/spatialmath"
)

// World is the string "world", but made into an exported constant.
const World = "world"

// CoordinateSystem is a named rigid frame: an origin position plus an
// orthonormal orientation, both expressed in a reference frame. It is an
// immutable value; transform operations never mutate it, so concurrent
// readers need no synchronization.
type CoordinateSystem struct {
	name     string
	origin   r3.Vector
	rotation *spatialmath.RotationMatrix
}

// NewWorldCoordinateSystem creates the identity frame named World, with the
// origin at zero and the standard basis as axes.
func NewWorldCoordinateSystem() *CoordinateSystem {
	return NewZeroCoordinateSystem(World)
}

// NewZeroCoordinateSystem creates a frame with no translation or orientation
// changes from its reference frame.
func NewZeroCoordinateSystem(name string) *CoordinateSystem {
	return &CoordinateSystem{name: name, rotation: spatialmath.NewZeroRotationMatrix()}
}

// NewCoordinateSystem creates a frame at the given origin whose basis is the
// given axis triple. The axes are normalized and re-orthogonalized; axes that
// cannot be completed into an orthonormal right-handed basis fail with
// spatialmath.ErrDegenerateAxes.
func NewCoordinateSystem(name string, origin, xAxis, yAxis, zAxis r3.Vector) (*CoordinateSystem, error) {
	rotation, err := spatialmath.NewRotationMatrixFromAxes(xAxis, yAxis, zAxis)
	if err != nil {
		return nil, err
	}
	return &CoordinateSystem{name: name, origin: origin, rotation: rotation}, nil
}

// NewCoordinateSystemFromEulerAngles creates a frame at the given origin
// oriented by the given Euler angles.
func NewCoordinateSystemFromEulerAngles(name string, origin r3.Vector, ea *spatialmath.EulerAngles) *CoordinateSystem {
	return &CoordinateSystem{name: name, origin: origin, rotation: spatialmath.NewRotationMatrixFromEuler(ea)}
}

// NewCoordinateSystemFromRotationMatrix creates a frame at the given origin
// oriented by an already validated rotation matrix.
func NewCoordinateSystemFromRotationMatrix(name string, origin r3.Vector, rotation *spatialmath.RotationMatrix) *CoordinateSystem {
	return &CoordinateSystem{name: name, origin: origin, rotation: rotation}
}

// Name is the name of the frame.
func (cs *CoordinateSystem) Name() string {
	return cs.name
}

// Origin returns the frame origin in reference coordinates.
func (cs *CoordinateSystem) Origin() r3.Vector {
	return cs.origin
}

// RotationMatrix returns the frame orientation. Its columns are the frame
// axes expressed in the reference frame.
func (cs *CoordinateSystem) RotationMatrix() *spatialmath.RotationMatrix {
	return cs.rotation
}

// XAxis returns the frame x axis unit vector in reference coordinates.
func (cs *CoordinateSystem) XAxis() r3.Vector {
	return cs.rotation.Col(0)
}

// YAxis returns the frame y axis unit vector in reference coordinates.
func (cs *CoordinateSystem) YAxis() r3.Vector {
	return cs.rotation.Col(1)
}

// ZAxis returns the frame z axis unit vector in reference coordinates.
func (cs *CoordinateSystem) ZAxis() r3.Vector {
	return cs.rotation.Col(2)
}

// EulerAngles returns the frame orientation decomposed into Euler angles.
func (cs *CoordinateSystem) EulerAngles() *spatialmath.EulerAngles {
	return cs.rotation.EulerAngles()
}

// IsOrthonormal reports whether the frame basis still satisfies the
// orthonormality invariant within tolerance.
func (cs *CoordinateSystem) IsOrthonormal() bool {
	return cs.rotation.IsOrthonormal()
}

// TransformPointToLocal takes a point in reference coordinates and returns
// the same point expressed in this frame's local coordinates by projecting
// the offset from the origin onto each axis.
func (cs *CoordinateSystem) TransformPointToLocal(point r3.Vector) r3.Vector {
	relative := point.Sub(cs.origin)
	return r3.Vector{
		X: relative.Dot(cs.XAxis()),
		Y: relative.Dot(cs.YAxis()),
		Z: relative.Dot(cs.ZAxis()),
	}
}

// TransformPointToGlobal takes a point in this frame's local coordinates and
// returns the same point expressed in the reference frame.
func (cs *CoordinateSystem) TransformPointToGlobal(point r3.Vector) r3.Vector {
	return cs.origin.Add(cs.rotation.Mul(point))
}

// TransformVectorToLocal rotates a direction vector from reference to local
// coordinates. Vectors are translation-invariant so the origin plays no part.
func (cs *CoordinateSystem) TransformVectorToLocal(vector r3.Vector) r3.Vector {
	return r3.Vector{
		X: vector.Dot(cs.XAxis()),
		Y: vector.Dot(cs.YAxis()),
		Z: vector.Dot(cs.ZAxis()),
	}
}

// TransformVectorToGlobal rotates a direction vector from local to reference
// coordinates.
func (cs *CoordinateSystem) TransformVectorToGlobal(vector r3.Vector) r3.Vector {
	return cs.rotation.Mul(vector)
}

// RelativeTo re-expresses this frame with respect to the other frame instead
// of their shared reference frame. Used for chaining alignment frames.
func (cs *CoordinateSystem) RelativeTo(other *CoordinateSystem) *CoordinateSystem {
	return &CoordinateSystem{
		name:     cs.name,
		origin:   other.TransformPointToLocal(cs.origin),
		rotation: other.rotation.Inverse().Compose(cs.rotation),
	}
}

// Compose takes a frame expressed relative to this one and returns it
// expressed in this frame's reference frame. It is the inverse of RelativeTo.
func (cs *CoordinateSystem) Compose(inner *CoordinateSystem) *CoordinateSystem {
	return &CoordinateSystem{
		name:     inner.name,
		origin:   cs.TransformPointToGlobal(inner.origin),
		rotation: cs.rotation.Compose(inner.rotation),
	}
}

// Translated returns a copy of the frame with the origin offset by delta in
// reference coordinates.
func (cs *CoordinateSystem) Translated(delta r3.Vector) *CoordinateSystem {
	return &CoordinateSystem{name: cs.name, origin: cs.origin.Add(delta), rotation: cs.rotation}
}

// Rotated returns a copy of the frame rotated about its own origin by the
// given rotation, applied in reference coordinates.
func (cs *CoordinateSystem) Rotated(rotation *spatialmath.RotationMatrix) *CoordinateSystem {
	return &CoordinateSystem{name: cs.name, origin: cs.origin, rotation: rotation.Compose(cs.rotation)}
}

// TransformationMatrix returns the homogeneous 4x4 matrix that maps local
// coordinates to reference coordinates in a single product.
func (cs *CoordinateSystem) TransformationMatrix() mgl64.Mat4 {
	m := mgl64.Ident4()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m.Set(row, col, cs.rotation.At(row, col))
		}
	}
	m.Set(0, 3, cs.origin.X)
	m.Set(1, 3, cs.origin.Y)
	m.Set(2, 3, cs.origin.Z)
	return m
}

// String returns a human readable string that represents the frame.
func (cs *CoordinateSystem) String() string {
	return fmt.Sprintf("CoordinateSystem %q | Origin: X:%.2f, Y:%.2f, Z:%.2f | Rotation: %s",
		cs.name, cs.origin.X, cs.origin.Y, cs.origin.Z, cs.rotation)
}
