package spatialmath

import "github.com/pkg/errors"

// ErrDegenerateAxes is returned when supplied axis vectors cannot be completed
// into an orthonormal right-handed basis.
var ErrDegenerateAxes = errors.New("axes do not determine an orthonormal basis")

// ErrInvalidRotationMatrix is returned when a raw 3x3 matrix fails the
// proper-orthogonality check.
var ErrInvalidRotationMatrix = errors.New("matrix is not a proper rotation matrix")

// ErrInvalidAngleUnit is returned when an angle unit token is neither degrees nor radians.
var ErrInvalidAngleUnit = errors.New("unrecognized angle unit")

func newZeroLengthAxisError(axis string) error {
	return errors.Wrapf(ErrDegenerateAxes, "%s axis has near-zero length", axis)
}

func newParallelAxesError(a, b string) error {
	return errors.Wrapf(ErrDegenerateAxes, "%s and %s axes are near-parallel", a, b)
}

func newLeftHandedAxesError() error {
	return errors.Wrap(ErrDegenerateAxes, "axes form a left-handed basis")
}

func newNonOrthogonalMatrixError(row, col int, value float64) error {
	return errors.Wrapf(ErrInvalidRotationMatrix, "product with transpose has %f at row %d col %d", value, row, col)
}

func newBadDeterminantError(det float64) error {
	return errors.Wrapf(ErrInvalidRotationMatrix, "determinant is %f, want 1", det)
}

func newRotationMatrixShapeError(length int) error {
	return errors.Wrapf(ErrInvalidRotationMatrix, "need 9 values in row major order, got %d", length)
}

func newInvalidAngleUnitError(unit string) error {
	return errors.Wrapf(ErrInvalidAngleUnit, "%q is neither %q nor %q", unit, Degrees, Radians)
}
