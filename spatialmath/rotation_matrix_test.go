package spatialmath

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/mathsim/coordinate/utils"
)

func TestZeroRotationMatrix(t *testing.T) {
	rm := NewZeroRotationMatrix()
	test.That(t, rm.IsOrthonormal(), test.ShouldBeTrue)
	test.That(t, rm.Determinant(), test.ShouldAlmostEqual, 1)
	pt := r3.Vector{X: 1, Y: 2, Z: 3}
	test.That(t, rm.Mul(pt), test.ShouldResemble, pt)
	test.That(t, rm.Inverse().AlmostEqual(rm), test.ShouldBeTrue)
}

func TestNewRotationMatrix(t *testing.T) {
	// 90 degrees about z
	rm, err := NewRotationMatrix([]float64{0, -1, 0, 1, 0, 0, 0, 0, 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rm.IsOrthonormal(), test.ShouldBeTrue)
	test.That(t, rm.At(0, 1), test.ShouldAlmostEqual, -1)
	test.That(t, utils.R3VectorAlmostEqual(rm.Col(0), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(rm.Row(1), r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)

	// wrong shape
	_, err = NewRotationMatrix([]float64{1, 0, 0})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrInvalidRotationMatrix), test.ShouldBeTrue)

	// not orthogonal
	_, err = NewRotationMatrix([]float64{2, 0, 0, 0, 2, 0, 0, 0, 2})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrInvalidRotationMatrix), test.ShouldBeTrue)

	// orthogonal but a reflection, det = -1
	_, err = NewRotationMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, -1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrInvalidRotationMatrix), test.ShouldBeTrue)
}

func TestNewRotationMatrixFromAxes(t *testing.T) {
	rm, err := NewRotationMatrixFromAxes(r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rm.AlmostEqual(NewZeroRotationMatrix()), test.ShouldBeTrue)

	// axes are normalized
	rm, err = NewRotationMatrixFromAxes(r3.Vector{X: 5}, r3.Vector{Y: 0.2}, r3.Vector{Z: 3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rm.AlmostEqual(NewZeroRotationMatrix()), test.ShouldBeTrue)

	// a slightly skewed y is re-orthogonalized while x is kept exact
	rm, err = NewRotationMatrixFromAxes(r3.Vector{X: 1}, r3.Vector{X: 0.1, Y: 1}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rm.IsOrthonormal(), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(rm.Col(0), r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(rm.Col(1), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
}

func TestDegenerateAxes(t *testing.T) {
	// zero-length axis
	_, err := NewRotationMatrixFromAxes(r3.Vector{}, r3.Vector{Y: 1}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrDegenerateAxes), test.ShouldBeTrue)

	// multiple zero-length axes reported together
	_, err = NewRotationMatrixFromAxes(r3.Vector{}, r3.Vector{}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "x axis")
	test.That(t, err.Error(), test.ShouldContainSubstring, "y axis")

	// near-parallel axes
	_, err = NewRotationMatrixFromAxes(r3.Vector{X: 1}, r3.Vector{X: 1}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrDegenerateAxes), test.ShouldBeTrue)

	// a left-handed triple has no proper rotation
	_, err = NewRotationMatrixFromAxes(r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: -1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrDegenerateAxes), test.ShouldBeTrue)
}

func TestElementalRotations(t *testing.T) {
	test.That(t, utils.R3VectorAlmostEqual(RotX(math.Pi/2).Mul(r3.Vector{Y: 1}), r3.Vector{Z: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(RotY(math.Pi/2).Mul(r3.Vector{Z: 1}), r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(RotZ(math.Pi/2).Mul(r3.Vector{X: 1}), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)

	for _, rm := range []*RotationMatrix{RotX(0.3), RotY(-1.2), RotZ(2.5)} {
		test.That(t, rm.IsOrthonormal(), test.ShouldBeTrue)
		test.That(t, rm.Determinant(), test.ShouldAlmostEqual, 1)
	}
}

func TestComposeAndInverse(t *testing.T) {
	r1 := RotX(0.5)
	r2 := RotY(1.1)
	r3m := RotZ(-0.7)

	// associative
	left := r1.Compose(r2).Compose(r3m)
	right := r1.Compose(r2.Compose(r3m))
	test.That(t, left.AlmostEqual(right), test.ShouldBeTrue)
	test.That(t, left.IsOrthonormal(), test.ShouldBeTrue)

	// not commutative for these rotations
	test.That(t, r1.Compose(r2).AlmostEqual(r2.Compose(r1)), test.ShouldBeFalse)

	// transpose inverts
	test.That(t, left.Compose(left.Inverse()).AlmostEqual(NewZeroRotationMatrix()), test.ShouldBeTrue)
	test.That(t, left.Inverse().Compose(left).AlmostEqual(NewZeroRotationMatrix()), test.ShouldBeTrue)
}

func TestQuaternionRoundTrip(t *testing.T) {
	for _, rm := range []*RotationMatrix{
		NewZeroRotationMatrix(),
		RotX(math.Pi / 4),
		RotZ(math.Pi / 3).Compose(RotY(0.2)).Compose(RotX(-1.4)),
	} {
		back := NewRotationMatrixFromQuaternion(rm.Quaternion())
		test.That(t, back.AlmostEqual(rm), test.ShouldBeTrue)
	}

	// a near-zero quaternion is treated as no rotation
	rm := NewRotationMatrixFromQuaternion(quat.Number{})
	test.That(t, rm.AlmostEqual(NewZeroRotationMatrix()), test.ShouldBeTrue)
}
