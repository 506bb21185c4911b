// Package spatialmath defines the rotation and angle math used to express the
// orientation of rigid 3D coordinate frames.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// orthonormalEpsilon is the single tolerance used for every orthonormality
// check in this package. A matrix is accepted as a proper rotation when each
// element of R*Rt differs from the identity by less than it and det(R) is
// within it of +1.
const orthonormalEpsilon = 1e-6

// zeroVectorEpsilon is the norm below which an axis vector cannot be normalized.
const zeroVectorEpsilon = 1e-10

// RotationMatrix is an immutable 3x3 direction-cosine matrix stored in row
// major order. Its columns are the rotated frame's axis unit vectors expressed
// in the reference frame, so Mul maps local coordinates to reference
// coordinates. This column convention is used consistently by the whole module.
type RotationMatrix struct {
	mat [9]float64
}

// NewZeroRotationMatrix returns the identity, signifying no rotation.
func NewZeroRotationMatrix() *RotationMatrix {
	return &RotationMatrix{[9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// NewRotationMatrix creates a rotation matrix from a slice of 9 floats in row
// major order, validating that the values form a proper rotation.
func NewRotationMatrix(values []float64) (*RotationMatrix, error) {
	if len(values) != 9 {
		return nil, newRotationMatrixShapeError(len(values))
	}
	rm := &RotationMatrix{}
	copy(rm.mat[:], values)
	if err := rm.orthonormalError(); err != nil {
		return nil, err
	}
	return rm, nil
}

// NewRotationMatrixFromAxes creates a rotation matrix whose columns are the
// given axis vectors after normalization. A triple that is not orthogonal
// within tolerance is re-orthogonalized by Gram-Schmidt, keeping the x
// direction exact and re-deriving z then y from the cross products. Axes that
// are near-zero, near-parallel, or left-handed cannot be completed into a
// rotation and fail with ErrDegenerateAxes.
func NewRotationMatrixFromAxes(x, y, z r3.Vector) (*RotationMatrix, error) {
	var err error
	if x.Norm() < zeroVectorEpsilon {
		err = multierr.Append(err, newZeroLengthAxisError("x"))
	}
	if y.Norm() < zeroVectorEpsilon {
		err = multierr.Append(err, newZeroLengthAxisError("y"))
	}
	if z.Norm() < zeroVectorEpsilon {
		err = multierr.Append(err, newZeroLengthAxisError("z"))
	}
	if err != nil {
		return nil, err
	}
	x = x.Normalize()
	y = y.Normalize()
	z = z.Normalize()
	if x.Cross(y).Norm() < orthonormalEpsilon {
		return nil, newParallelAxesError("x", "y")
	}
	if y.Cross(z).Norm() < orthonormalEpsilon {
		return nil, newParallelAxesError("y", "z")
	}
	if z.Cross(x).Norm() < orthonormalEpsilon {
		return nil, newParallelAxesError("z", "x")
	}
	if z.Dot(x.Cross(y)) < 0 {
		return nil, newLeftHandedAxesError()
	}
	// x is kept, z is made exactly normal to the xy plane, and y closes the
	// right-handed triple.
	z = x.Cross(y).Normalize()
	y = z.Cross(x)
	return &RotationMatrix{[9]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}}, nil
}

// NewRotationMatrixFromQuaternion creates the rotation matrix equivalent to
// the given unit quaternion. The input is normalized first; a near-zero
// quaternion is treated as no rotation.
func NewRotationMatrixFromQuaternion(q quat.Number) *RotationMatrix {
	n := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if n < zeroVectorEpsilon {
		return NewZeroRotationMatrix()
	}
	w, x, y, z := q.Real/n, q.Imag/n, q.Jmag/n, q.Kmag/n
	return &RotationMatrix{[9]float64{
		1 - 2*y*y - 2*z*z, 2*x*y - 2*z*w, 2*x*z + 2*y*w,
		2*x*y + 2*z*w, 1 - 2*x*x - 2*z*z, 2*y*z - 2*x*w,
		2*x*z - 2*y*w, 2*y*z + 2*x*w, 1 - 2*x*x - 2*y*y,
	}}
}

// RotX returns the rotation matrix for a rotation of theta radians about the x
// axis, counter-clockwise positive when viewed from the positive axis toward
// the origin.
func RotX(theta float64) *RotationMatrix {
	s, c := math.Sincos(theta)
	return &RotationMatrix{[9]float64{1, 0, 0, 0, c, -s, 0, s, c}}
}

// RotY returns the rotation matrix for a rotation of theta radians about the y axis.
func RotY(theta float64) *RotationMatrix {
	s, c := math.Sincos(theta)
	return &RotationMatrix{[9]float64{c, 0, s, 0, 1, 0, -s, 0, c}}
}

// RotZ returns the rotation matrix for a rotation of theta radians about the z axis.
func RotZ(theta float64) *RotationMatrix {
	s, c := math.Sincos(theta)
	return &RotationMatrix{[9]float64{c, -s, 0, s, c, 0, 0, 0, 1}}
}

// At returns the value of the matrix at the given row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[3*row+col]
}

// Row returns the a vector representing a particular row of the matrix.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[3*row], Y: rm.mat[3*row+1], Z: rm.mat[3*row+2]}
}

// Col returns the a vector representing a particular column of the matrix.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[3+col], Z: rm.mat[6+col]}
}

// Mul returns the product of the matrix and the given vector, mapping local
// coordinates to reference coordinates.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.mat[0]*v.X + rm.mat[1]*v.Y + rm.mat[2]*v.Z,
		Y: rm.mat[3]*v.X + rm.mat[4]*v.Y + rm.mat[5]*v.Z,
		Z: rm.mat[6]*v.X + rm.mat[7]*v.Y + rm.mat[8]*v.Z,
	}
}

// Compose returns the product of this matrix with the other, applying other
// first. Composition is associative but not commutative.
func (rm *RotationMatrix) Compose(other *RotationMatrix) *RotationMatrix {
	result := &RotationMatrix{}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += rm.mat[3*row+k] * other.mat[3*k+col]
			}
			result.mat[3*row+col] = sum
		}
	}
	return result
}

// Inverse returns the transpose, which inverts any proper rotation.
func (rm *RotationMatrix) Inverse() *RotationMatrix {
	return &RotationMatrix{[9]float64{
		rm.mat[0], rm.mat[3], rm.mat[6],
		rm.mat[1], rm.mat[4], rm.mat[7],
		rm.mat[2], rm.mat[5], rm.mat[8],
	}}
}

// Determinant returns the determinant of the matrix, +1 for a proper rotation.
func (rm *RotationMatrix) Determinant() float64 {
	return mat.Det(rm.dense())
}

// IsOrthonormal reports whether the matrix still satisfies R*Rt = I and
// det(R) = +1 within tolerance.
func (rm *RotationMatrix) IsOrthonormal() bool {
	return rm.orthonormalError() == nil
}

// Quaternion returns the matrix orientation as a quaternion.
func (rm *RotationMatrix) Quaternion() quat.Number {
	m := mgl64.Ident4()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m.Set(row, col, rm.At(row, col))
		}
	}
	q := mgl64.Mat4ToQuat(m)
	return quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}

// AlmostEqual checks if the matrix is numerically close to another.
func (rm *RotationMatrix) AlmostEqual(other *RotationMatrix) bool {
	for i := 0; i < 9; i++ {
		if math.Abs(rm.mat[i]-other.mat[i]) > orthonormalEpsilon {
			return false
		}
	}
	return true
}

// String returns a human readable string that represents the matrix.
func (rm *RotationMatrix) String() string {
	return fmt.Sprintf("[[%.4f, %.4f, %.4f], [%.4f, %.4f, %.4f], [%.4f, %.4f, %.4f]]",
		rm.mat[0], rm.mat[1], rm.mat[2],
		rm.mat[3], rm.mat[4], rm.mat[5],
		rm.mat[6], rm.mat[7], rm.mat[8])
}

func (rm *RotationMatrix) dense() *mat.Dense {
	values := make([]float64, 9)
	copy(values, rm.mat[:])
	return mat.NewDense(3, 3, values)
}

func (rm *RotationMatrix) orthonormalError() error {
	d := rm.dense()
	var product mat.Dense
	product.Mul(d, d.T())
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			want := 0.
			if row == col {
				want = 1.
			}
			if math.Abs(product.At(row, col)-want) > orthonormalEpsilon {
				return newNonOrthogonalMatrixError(row, col, product.At(row, col))
			}
		}
	}
	if det := mat.Det(d); math.Abs(det-1) > orthonormalEpsilon {
		return newBadDeterminantError(det)
	}
	return nil
}
