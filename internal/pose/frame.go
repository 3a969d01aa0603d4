// Package pose defines the per-frame measurement types consumed by the
// coaching engine: joint angles and 2D keypoint positions produced by an
// upstream pose detector.
package pose

import "math"

// Keypoint names following the OpenPose COCO convention.
const (
	Nose      = "Nose"
	Neck      = "Neck"
	RShoulder = "RShoulder"
	RElbow    = "RElbow"
	RWrist    = "RWrist"
	LShoulder = "LShoulder"
	LElbow    = "LElbow"
	LWrist    = "LWrist"
	RHip      = "RHip"
	RKnee     = "RKnee"
	RAnkle    = "RAnkle"
	LHip      = "LHip"
	LKnee     = "LKnee"
	LAnkle    = "LAnkle"
	REye      = "REye"
	LEye      = "LEye"
	REar      = "REar"
	LEar      = "LEar"
)

// KeypointNames lists all keypoint names in COCO index order.
var KeypointNames = []string{
	Nose, Neck, RShoulder, RElbow, RWrist,
	LShoulder, LElbow, LWrist, RHip, RKnee,
	RAnkle, LHip, LKnee, LAnkle, REye,
	LEye, REar, LEar,
}

// Joint names for the angle map. Angles are interior joint angles in
// degrees, expected in [0, 180].
const (
	RightElbow = "right_elbow"
	LeftElbow  = "left_elbow"
	RightKnee  = "right_knee"
	LeftKnee   = "left_knee"
	RightHip   = "right_hip"
	LeftHip    = "left_hip"
)

// Keypoint is a detected 2D body landmark with detector confidence.
type Keypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// Frame is one detection cycle's worth of measurements. Frames are
// produced once by the upstream detector and only read afterwards.
type Frame struct {
	// Timestamp is the capture time in seconds. Expected to be
	// monotonically non-decreasing within a session.
	Timestamp float64 `json:"timestamp"`
	// FrameNum is the detector's sequence number for this frame.
	FrameNum int `json:"frame_num"`
	// Joints maps joint name to angle in degrees.
	Joints map[string]float64 `json:"joints"`
	// Keypoints maps keypoint name to its detected position.
	Keypoints map[string]Keypoint `json:"keypoints"`
}

// Midpoint returns the point halfway between a and b. Confidence is the
// lower of the two.
func Midpoint(a, b Keypoint) Keypoint {
	conf := a.Confidence
	if b.Confidence < conf {
		conf = b.Confidence
	}
	return Keypoint{
		X:          (a.X + b.X) / 2,
		Y:          (a.Y + b.Y) / 2,
		Confidence: conf,
	}
}

// ValidAngle reports whether a is a usable joint angle. NaN and Inf are
// treated the same as missing data.
func ValidAngle(a float64) bool {
	return !math.IsNaN(a) && !math.IsInf(a, 0)
}
