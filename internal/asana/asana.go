// Package asana defines yoga pose specifications and the deterministic
// alignment evaluator that scores a frame of joint angles and keypoints
// against them.
package asana

import (
	"fmt"
	"sort"

	"github.com/ayusman/drishti/internal/pose"
)

// Priority ranks how important an alignment check is. Lower values are
// more important.
type Priority int

const (
	// PriorityCritical marks checks that must be correct for safety.
	PriorityCritical Priority = 1
	// PriorityHigh marks checks essential for pose integrity.
	PriorityHigh Priority = 2
	// PriorityMedium marks checks important for proper form.
	PriorityMedium Priority = 3
	// PriorityLow marks refinement checks.
	PriorityLow Priority = 4
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// AngleConstraint defines the acceptable range for one joint angle.
// Invariant: Min <= Ideal <= Max and Tolerance > 0.
type AngleConstraint struct {
	Joint     string
	Min       float64 // degrees
	Max       float64 // degrees
	Ideal     float64 // degrees
	Tolerance float64 // degrees, ±
	Priority  Priority
}

// InRange reports whether angle is within [Min, Max].
func (c AngleConstraint) InRange(angle float64) bool {
	return angle >= c.Min && angle <= c.Max
}

// Severity returns the normalized error for angle: 0.0 at the ideal,
// clamped to 1.0. Distance from ideal is normalized by half the
// constraint range.
func (c AngleConstraint) Severity(angle float64) float64 {
	diff := angle - c.Ideal
	if diff < 0 {
		diff = -diff
	}
	if diff <= c.Tolerance {
		return 0.0
	}
	halfRange := (c.Max - c.Min) / 2
	if halfRange <= 0 {
		return 1.0
	}
	severity := diff / halfRange
	if severity > 1.0 {
		return 1.0
	}
	return severity
}

// CheckFunc is a spatial alignment predicate over the keypoint map.
// It returns whether the check passed and, when it did not, a severity
// in [0, 1]. Predicates must treat missing keypoints as satisfied.
type CheckFunc func(keypoints map[string]pose.Keypoint) (aligned bool, severity float64)

// AlignmentRule couples an alignment predicate with its identity and
// coaching message. The predicate is bound when the pose definition is
// constructed, never looked up by name at evaluation time.
type AlignmentRule struct {
	ID          string
	Description string
	Check       CheckFunc
	Priority    Priority
	Message     string
}

// Definition describes one named pose: the joints it needs, the angle
// ranges those joints must satisfy, the spatial alignment rules, and the
// coaching messages keyed by error code. Definitions are immutable once
// registered in a Catalog.
type Definition struct {
	ID           string
	Name         string
	SanskritName string

	RequiredJoints []string
	Constraints    map[string]AngleConstraint
	Rules          []AlignmentRule

	// Messages maps error code to its static coaching message.
	Messages map[string]string
}

// Error is one alignment problem detected in a single frame. Errors are
// transient and regenerated on every evaluation.
type Error struct {
	Code         string
	Joint        string
	CurrentAngle float64
	IdealAngle   float64
	HasAngles    bool
	Severity     float64
	Priority     Priority
	Message      string
}

// MissingJoints returns the required joints absent from the angle map.
func (d *Definition) MissingJoints(joints map[string]float64) []string {
	var missing []string
	for _, j := range d.RequiredJoints {
		if a, ok := joints[j]; !ok || !pose.ValidAngle(a) {
			missing = append(missing, j)
		}
	}
	return missing
}

// Evaluate scores the given joint angles and keypoints against this
// definition and returns the detected errors sorted by ascending
// priority value, then descending severity.
//
// Missing joints or keypoints never produce an error: the affected
// constraint or rule is skipped for the frame. Occlusion is common and
// a skipped check is preferable to a false correction.
func (d *Definition) Evaluate(joints map[string]float64, keypoints map[string]pose.Keypoint) []Error {
	var errs []Error

	for _, joint := range d.constraintOrder() {
		constraint := d.Constraints[joint]
		angle, ok := joints[joint]
		if !ok || !pose.ValidAngle(angle) {
			continue
		}
		if constraint.InRange(angle) {
			continue
		}

		code := joint + "_too_open"
		if angle < constraint.Min {
			code = joint + "_too_closed"
		}

		errs = append(errs, Error{
			Code:         code,
			Joint:        joint,
			CurrentAngle: angle,
			IdealAngle:   constraint.Ideal,
			HasAngles:    true,
			Severity:     constraint.Severity(angle),
			Priority:     constraint.Priority,
			Message:      d.message(code, joint+" alignment issue"),
		})
	}

	for _, rule := range d.Rules {
		if rule.Check == nil {
			continue
		}
		aligned, severity := rule.Check(keypoints)
		if aligned {
			continue
		}
		errs = append(errs, Error{
			Code:     rule.ID,
			Joint:    "alignment",
			Severity: clampSeverity(severity),
			Priority: rule.Priority,
			Message:  d.message(rule.ID, rule.Message),
		})
	}

	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Priority != errs[j].Priority {
			return errs[i].Priority < errs[j].Priority
		}
		return errs[i].Severity > errs[j].Severity
	})

	return errs
}

// TopError returns the single most important error, or false when the
// pose is clean.
func (d *Definition) TopError(joints map[string]float64, keypoints map[string]pose.Keypoint) (Error, bool) {
	errs := d.Evaluate(joints, keypoints)
	if len(errs) == 0 {
		return Error{}, false
	}
	return errs[0], true
}

// constraintOrder returns the constrained joints in a deterministic
// order so repeated evaluations of the same frame agree byte for byte.
func (d *Definition) constraintOrder() []string {
	joints := make([]string, 0, len(d.Constraints))
	for j := range d.Constraints {
		joints = append(joints, j)
	}
	sort.Strings(joints)
	return joints
}

func (d *Definition) message(code, fallback string) string {
	if msg, ok := d.Messages[code]; ok {
		return msg
	}
	return fallback
}

func clampSeverity(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
