package coordinateframe

import "github.com/pkg/errors"

// NewParentFrameMissingError returns an error indicating that the named
// parent is not in the frame system.
func NewParentFrameMissingError(frame, parent string) error {
	return errors.Errorf("parent frame %q of frame %q not in frame system", parent, frame)
}

// NewFrameAlreadyExistsError returns an error indicating that a frame with
// this name is already in the frame system.
func NewFrameAlreadyExistsError(name string) error {
	return errors.Errorf("frame with name %q already in frame system", name)
}

// NewFrameNotFoundError returns an error indicating that no frame with this
// name is in the frame system.
func NewFrameNotFoundError(name string) error {
	return errors.Errorf("frame with name %q not in frame system", name)
}
