package coordinateframe

import (
	"errors"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
)

// FrameSystem represents a tree of coordinate frames connected to each other,
// allowing for transformations between any two frames. Each frame in the tree
// is expressed relative to its parent; the root is the world frame.
type FrameSystem interface {
	// Name returns the name of this FrameSystem.
	Name() string

	// World returns the frame corresponding to the root of the FrameSystem,
	// from which other frames are defined with respect to.
	World() *CoordinateSystem

	// FrameNames returns the names of all of the frames that exist in the FrameSystem.
	FrameNames() []string

	// Frame returns the frame in the FrameSystem corresponding to the name,
	// nil if the frame is not found.
	Frame(name string) *CoordinateSystem

	// AddFrame inserts a given frame into the FrameSystem as a child of the named parent frame.
	AddFrame(frame *CoordinateSystem, parent string) error

	// RemoveFrame removes the named frame and all its descendants from the FrameSystem.
	RemoveFrame(name string)

	// Parent returns the parent frame for the named frame. nil if the frame is World.
	Parent(name string) (*CoordinateSystem, error)

	// TracebackFrame traces the parentage of the named frame up to the world,
	// and returns the full list of frames in between. The list includes both
	// the query frame and the world frame.
	TracebackFrame(name string) ([]*CoordinateSystem, error)

	// PoseInWorld composes the chain of parents of the named frame and
	// returns the frame expressed directly in world coordinates.
	PoseInWorld(name string) (*CoordinateSystem, error)

	// TransformPoint re-expresses a point given in the src frame's local
	// coordinates into the dst frame's local coordinates.
	TransformPoint(point r3.Vector, src, dst string) (r3.Vector, error)

	// TransformVector re-expresses a direction vector between the two named frames.
	TransformVector(vector r3.Vector, src, dst string) (r3.Vector, error)
}

// simpleFrameSystem implements FrameSystem. It is a simple tree graph keyed
// by frame name.
type simpleFrameSystem struct {
	name    string
	world   *CoordinateSystem
	frames  map[string]*CoordinateSystem
	parents map[string]string
	logger  golog.Logger
}

// NewFrameSystem creates an empty FrameSystem with only the world frame in it.
func NewFrameSystem(name string, logger golog.Logger) FrameSystem {
	return &simpleFrameSystem{
		name:    name,
		world:   NewWorldCoordinateSystem(),
		frames:  map[string]*CoordinateSystem{},
		parents: map[string]string{},
		logger:  logger,
	}
}

// Name returns the name of the simpleFrameSystem.
func (sfs *simpleFrameSystem) Name() string {
	return sfs.name
}

// World returns the base world frame.
func (sfs *simpleFrameSystem) World() *CoordinateSystem {
	return sfs.world
}

var errNoParent = errors.New("no parent")

// frameExists is a helper function to see if a frame with a given name already exists in the system.
func (sfs *simpleFrameSystem) frameExists(name string) bool {
	if name == World {
		return true
	}
	_, ok := sfs.frames[name]
	return ok
}

// Frame returns the frame given its name. Returns nil if the frame is not found.
func (sfs *simpleFrameSystem) Frame(name string) *CoordinateSystem {
	if name == World {
		return sfs.world
	}
	return sfs.frames[name]
}

// FrameNames returns the list of frame names registered in the frame system.
func (sfs *simpleFrameSystem) FrameNames() []string {
	var frameNames []string
	for k := range sfs.frames {
		frameNames = append(frameNames, k)
	}
	return frameNames
}

// Parent returns the parent frame of the named frame. nil if the frame is World.
func (sfs *simpleFrameSystem) Parent(name string) (*CoordinateSystem, error) {
	if !sfs.frameExists(name) {
		return nil, NewFrameNotFoundError(name)
	}
	if name == World {
		return nil, errNoParent
	}
	return sfs.Frame(sfs.parents[name]), nil
}

// AddFrame sets an already defined frame into the system under the named parent.
func (sfs *simpleFrameSystem) AddFrame(frame *CoordinateSystem, parent string) error {
	if !sfs.frameExists(parent) {
		return NewParentFrameMissingError(frame.Name(), parent)
	}
	if sfs.frameExists(frame.Name()) {
		return NewFrameAlreadyExistsError(frame.Name())
	}
	sfs.frames[frame.Name()] = frame
	sfs.parents[frame.Name()] = parent
	sfs.logger.Debugf("added frame %q under parent %q", frame.Name(), parent)
	return nil
}

// RemoveFrame will delete the named frame and all descendants from the frame system if it exists.
func (sfs *simpleFrameSystem) RemoveFrame(name string) {
	if _, ok := sfs.frames[name]; !ok {
		return
	}
	delete(sfs.frames, name)
	delete(sfs.parents, name)
	sfs.logger.Debugf("removed frame %q", name)

	// Remove all descendants
	for child, parent := range sfs.parents {
		if parent == name {
			sfs.RemoveFrame(child)
		}
	}
}

// TracebackFrame traces the parentage of the named frame up to the world, and
// returns the full list of frames in between.
func (sfs *simpleFrameSystem) TracebackFrame(name string) ([]*CoordinateSystem, error) {
	if !sfs.frameExists(name) {
		return nil, NewFrameNotFoundError(name)
	}
	if name == World {
		return []*CoordinateSystem{sfs.world}, nil
	}
	parents, err := sfs.TracebackFrame(sfs.parents[name])
	if err != nil {
		return nil, err
	}
	return append([]*CoordinateSystem{sfs.frames[name]}, parents...), nil
}

// PoseInWorld folds the parent chain of the named frame into a single frame
// expressed directly in world coordinates.
func (sfs *simpleFrameSystem) PoseInWorld(name string) (*CoordinateSystem, error) {
	chain, err := sfs.TracebackFrame(name)
	if err != nil {
		return nil, err
	}
	// chain runs query first, world last; compose from the world down.
	pose := chain[len(chain)-1]
	for i := len(chain) - 2; i >= 0; i-- {
		pose = pose.Compose(chain[i])
	}
	return pose, nil
}

// TransformPoint re-expresses a point from the src frame's local coordinates
// into the dst frame's local coordinates, passing through world coordinates.
func (sfs *simpleFrameSystem) TransformPoint(point r3.Vector, src, dst string) (r3.Vector, error) {
	if src == dst {
		return point, nil
	}
	srcPose, err := sfs.PoseInWorld(src)
	if err != nil {
		return r3.Vector{}, err
	}
	dstPose, err := sfs.PoseInWorld(dst)
	if err != nil {
		return r3.Vector{}, err
	}
	return dstPose.TransformPointToLocal(srcPose.TransformPointToGlobal(point)), nil
}

// TransformVector re-expresses a direction vector between the two named frames.
func (sfs *simpleFrameSystem) TransformVector(vector r3.Vector, src, dst string) (r3.Vector, error) {
	if src == dst {
		return vector, nil
	}
	srcPose, err := sfs.PoseInWorld(src)
	if err != nil {
		return r3.Vector{}, err
	}
	dstPose, err := sfs.PoseInWorld(dst)
	if err != nil {
		return r3.Vector{}, err
	}
	return dstPose.TransformVectorToLocal(srcPose.TransformVectorToGlobal(vector)), nil
}
