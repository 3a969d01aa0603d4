// Package testdata provides scripted frame sequences for driving the
// coaching engine in tests: deterministic timestamps at a fixed frame
// rate, with wobble segments to move the state machine out of INIT and
// hold segments to settle it into POSE_HOLD.
package testdata

import "github.com/ayusman/drishti/internal/pose"

// DefaultFPS is the frame rate scripts are generated at.
const DefaultFPS = 30.0

// WarriorIIJoints returns joint angles that satisfy every Warrior II
// constraint.
func WarriorIIJoints() map[string]float64 {
	return map[string]float64{
		pose.RightKnee:  90,
		pose.LeftKnee:   175,
		pose.RightHip:   90,
		pose.LeftHip:    170,
		pose.RightElbow: 175,
		pose.LeftElbow:  175,
	}
}

// MountainJoints returns joint angles that satisfy every Mountain Pose
// constraint.
func MountainJoints() map[string]float64 {
	return map[string]float64{
		pose.RightKnee: 175,
		pose.LeftKnee:  175,
		pose.RightHip:  175,
		pose.LeftHip:   175,
	}
}

// Script builds a deterministic frame sequence around a base posture.
type Script struct {
	fps       float64
	joints    map[string]float64
	keypoints map[string]pose.Keypoint
	frames    []pose.Frame
}

// NewScript starts a script holding the given posture at DefaultFPS.
// The joint map is copied.
func NewScript(joints map[string]float64) *Script {
	base := make(map[string]float64, len(joints))
	for j, a := range joints {
		base[j] = a
	}
	return &Script{fps: DefaultFPS, joints: base}
}

// Set changes one joint angle for all subsequent frames.
func (s *Script) Set(joint string, angle float64) *Script {
	s.joints[joint] = angle
	return s
}

// Keypoints sets the keypoint map attached to subsequent frames.
func (s *Script) Keypoints(kp map[string]pose.Keypoint) *Script {
	s.keypoints = kp
	return s
}

// Wobble appends n frames with every joint alternating ±amplitude
// around the base posture. Used to drop the stability score and move
// the state machine out of INIT.
func (s *Script) Wobble(n int, amplitude float64) *Script {
	for i := 0; i < n; i++ {
		offset := amplitude
		if i%2 == 1 {
			offset = -amplitude
		}
		s.appendFrame(offset)
	}
	return s
}

// Hold appends n frames of the base posture, motionless.
func (s *Script) Hold(n int) *Script {
	for i := 0; i < n; i++ {
		s.appendFrame(0)
	}
	return s
}

// Frames returns the generated sequence.
func (s *Script) Frames() []pose.Frame {
	return s.frames
}

func (s *Script) appendFrame(offset float64) {
	joints := make(map[string]float64, len(s.joints))
	for j, a := range s.joints {
		joints[j] = a + offset
	}

	idx := len(s.frames)
	s.frames = append(s.frames, pose.Frame{
		Timestamp: float64(idx) / s.fps,
		FrameNum:  idx + 1,
		Joints:    joints,
		Keypoints: s.keypoints,
	})
}

// EnterHold returns a script segment long enough to settle the state
// machine into POSE_HOLD with default parameters: a short wobble
// followed by holdFrames motionless frames.
func EnterHold(joints map[string]float64, holdFrames int) []pose.Frame {
	return NewScript(joints).Wobble(5, 1).Hold(holdFrames).Frames()
}
