package asana

import (
	"math"

	"github.com/ayusman/drishti/internal/pose"
)

// Alignment predicate builders. Each builder binds its thresholds and
// returns a CheckFunc closure, so a rule carries a resolved predicate
// instead of a method name to look up per call.
//
// All predicates return (true, 0) when a keypoint they need is missing
// or the detected geometry is too degenerate to judge.

// minSpan is the smallest keypoint separation (in pixels) a predicate
// will reason about. Below this the subject is probably not in frame
// properly and the check is skipped.
const minSpan = 10.0

// spineVertical checks that the neck sits vertically above the mid-hip
// point. maxDeg is the allowed deviation from vertical; normDeg scales
// the severity (a deviation of normDeg or more is severity 1.0).
func spineVertical(maxDeg, normDeg float64) CheckFunc {
	return func(kp map[string]pose.Keypoint) (bool, float64) {
		neck, ok1 := kp[pose.Neck]
		rHip, ok2 := kp[pose.RHip]
		lHip, ok3 := kp[pose.LHip]
		if !ok1 || !ok2 || !ok3 {
			return true, 0
		}

		midHip := pose.Midpoint(rHip, lHip)
		dx := neck.X - midHip.X
		dy := neck.Y - midHip.Y

		angle := math.Abs(math.Atan2(dx, -dy) * 180 / math.Pi)
		if angle <= maxDeg {
			return true, 0
		}
		return false, clampSeverity(angle / normDeg)
	}
}

// levelPair checks that two keypoints sit at roughly the same height.
// The allowed height difference is ratioThresh times the horizontal
// separation; ratioNorm scales the severity.
func levelPair(a, b string, ratioThresh, ratioNorm float64) CheckFunc {
	return func(kp map[string]pose.Keypoint) (bool, float64) {
		pa, ok1 := kp[a]
		pb, ok2 := kp[b]
		if !ok1 || !ok2 {
			return true, 0
		}

		heightDiff := math.Abs(pa.Y - pb.Y)
		width := math.Abs(pa.X - pb.X)
		if width < minSpan {
			return true, 0
		}

		if heightDiff <= width*ratioThresh {
			return true, 0
		}
		return false, clampSeverity(heightDiff / (width * ratioNorm))
	}
}

// stackedVertically checks that the upper keypoint is directly above the
// lower one. The allowed horizontal offset is ratioThresh times the
// vertical separation; ratioNorm scales the severity.
func stackedVertically(upper, lower string, ratioThresh, ratioNorm float64) CheckFunc {
	return func(kp map[string]pose.Keypoint) (bool, float64) {
		pu, ok1 := kp[upper]
		pl, ok2 := kp[lower]
		if !ok1 || !ok2 {
			return true, 0
		}

		horizontal := math.Abs(pu.X - pl.X)
		vertical := math.Abs(pu.Y - pl.Y)
		if vertical < minSpan {
			return true, 0
		}

		if horizontal <= vertical*ratioThresh {
			return true, 0
		}
		return false, clampSeverity(horizontal / (vertical * ratioNorm))
	}
}

// armsParallel checks that both arms are within maxDeg of horizontal,
// measured shoulder to wrist. normDeg scales the severity.
func armsParallel(maxDeg, normDeg float64) CheckFunc {
	return func(kp map[string]pose.Keypoint) (bool, float64) {
		rWrist, ok1 := kp[pose.RWrist]
		lWrist, ok2 := kp[pose.LWrist]
		rShoulder, ok3 := kp[pose.RShoulder]
		lShoulder, ok4 := kp[pose.LShoulder]
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return true, 0
		}

		rAngle := armAngle(rShoulder, rWrist)
		lAngle := armAngle(lShoulder, lWrist)

		deviation := math.Max(rAngle, lAngle)
		if deviation <= maxDeg {
			return true, 0
		}
		return false, clampSeverity(deviation / normDeg)
	}
}

// armAngle returns the absolute angle of the shoulder→wrist segment from
// horizontal, in degrees.
func armAngle(shoulder, wrist pose.Keypoint) float64 {
	slope := (wrist.Y - shoulder.Y) / (wrist.X - shoulder.X + 1e-6)
	return math.Abs(math.Atan(slope) * 180 / math.Pi)
}

// torsoOverHips checks that the shoulder midpoint is stacked over the
// hip midpoint. The allowed horizontal offset is ratioThresh times the
// torso height; ratioNorm scales the severity.
func torsoOverHips(ratioThresh, ratioNorm float64) CheckFunc {
	return func(kp map[string]pose.Keypoint) (bool, float64) {
		rShoulder, ok1 := kp[pose.RShoulder]
		lShoulder, ok2 := kp[pose.LShoulder]
		rHip, ok3 := kp[pose.RHip]
		lHip, ok4 := kp[pose.LHip]
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return true, 0
		}

		midShoulder := pose.Midpoint(rShoulder, lShoulder)
		midHip := pose.Midpoint(rHip, lHip)

		offset := math.Abs(midShoulder.X - midHip.X)
		height := math.Abs(midShoulder.Y - midHip.Y)
		if height < minSpan {
			return true, 0
		}

		if offset <= height*ratioThresh {
			return true, 0
		}
		return false, clampSeverity(offset / (height * ratioNorm))
	}
}
