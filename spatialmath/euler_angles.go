package spatialmath

import (
	"math"

	"github.com/mathsim/coordinate/utils"
)

// AngleUnit is the token for the unit angle inputs are expressed in.
type AngleUnit string

// The two accepted angle unit tokens.
const (
	Radians AngleUnit = "rad"
	Degrees AngleUnit = "deg"
)

// ParseAngleUnit converts a raw token into an AngleUnit, failing with
// ErrInvalidAngleUnit for anything other than the two accepted tokens.
func ParseAngleUnit(token string) (AngleUnit, error) {
	switch AngleUnit(token) {
	case Radians:
		return Radians, nil
	case Degrees:
		return Degrees, nil
	default:
		return "", newInvalidAngleUnitError(token)
	}
}

// EulerAngles are three angles, in radians, used to represent the orientation
// of a frame: roll about the reference x axis, pitch about y, yaw about z,
// composed in the fixed extrinsic Z-Y-X order Rz(yaw)*Ry(pitch)*Rx(roll).
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewZeroEulerAngles creates an EulerAngles with all zero angles.
func NewZeroEulerAngles() *EulerAngles {
	return &EulerAngles{}
}

// NewEulerAngles creates an EulerAngles from three angles in the given unit,
// converting degrees to radians when needed. All finite angle values are
// valid; only an unknown unit token fails.
func NewEulerAngles(roll, pitch, yaw float64, unit AngleUnit) (*EulerAngles, error) {
	switch unit {
	case Radians:
		return &EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}, nil
	case Degrees:
		return &EulerAngles{
			Roll:  utils.DegToRad(roll),
			Pitch: utils.DegToRad(pitch),
			Yaw:   utils.DegToRad(yaw),
		}, nil
	default:
		return nil, newInvalidAngleUnitError(string(unit))
	}
}

// InUnit returns the roll, pitch, yaw triple converted to the given unit.
func (ea *EulerAngles) InUnit(unit AngleUnit) (roll, pitch, yaw float64, err error) {
	switch unit {
	case Radians:
		return ea.Roll, ea.Pitch, ea.Yaw, nil
	case Degrees:
		return utils.RadToDeg(ea.Roll), utils.RadToDeg(ea.Pitch), utils.RadToDeg(ea.Yaw), nil
	default:
		return 0, 0, 0, newInvalidAngleUnitError(string(unit))
	}
}

// RotationMatrix returns the rotation matrix for this orientation,
// Rz(yaw)*Ry(pitch)*Rx(roll).
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	return RotZ(ea.Yaw).Compose(RotY(ea.Pitch)).Compose(RotX(ea.Roll))
}

// NewRotationMatrixFromEuler creates the rotation matrix for the given Euler
// angles. All real angle inputs are valid since the representation is periodic.
func NewRotationMatrixFromEuler(ea *EulerAngles) *RotationMatrix {
	return ea.RotationMatrix()
}

// EulerAngles decomposes the matrix back into roll, pitch, yaw for the same
// Z-Y-X order. At gimbal lock, when pitch is within tolerance of +/-90
// degrees, roll and yaw are coupled and the decomposition is not unique; the
// convention here is to report roll as 0 and fold the whole remaining rotation
// into yaw. That case is defined behavior, not an error.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	// A matrix within orthonormality tolerance can still carry an element a
	// hair past +/-1, which would make Asin return NaN.
	pitch := math.Asin(math.Max(-1, math.Min(1, -rm.At(2, 0))))
	if math.Abs(math.Cos(pitch)) > orthonormalEpsilon {
		return &EulerAngles{
			Roll:  math.Atan2(rm.At(2, 1), rm.At(2, 2)),
			Pitch: pitch,
			Yaw:   math.Atan2(rm.At(1, 0), rm.At(0, 0)),
		}
	}
	return &EulerAngles{
		Roll:  0,
		Pitch: pitch,
		Yaw:   math.Atan2(-rm.At(0, 1), rm.At(1, 1)),
	}
}
