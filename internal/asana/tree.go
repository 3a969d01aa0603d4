package asana

import "github.com/ayusman/drishti/internal/pose"

// Side selects which leg carries the weight in single-leg poses.
type Side string

const (
	// SideRight places the right leg on the ground.
	SideRight Side = "right"
	// SideLeft places the left leg on the ground.
	SideLeft Side = "left"
)

// Tree returns the Tree Pose (Vrksasana) definition for the given
// standing leg: standing leg straight, lifted foot pressed against the
// inner thigh, hips level, spine vertical.
func Tree(standing Side) *Definition {
	standingKnee := pose.RightKnee
	standingHip := pose.RightHip
	liftedKnee := pose.LeftKnee
	liftedHip := pose.LeftHip
	standingAnkleKP := pose.RAnkle
	standingKneeKP := pose.RKnee
	id := "tree_right"
	if standing == SideLeft {
		standingKnee = pose.LeftKnee
		standingHip = pose.LeftHip
		liftedKnee = pose.RightKnee
		liftedHip = pose.RightHip
		standingAnkleKP = pose.LAnkle
		standingKneeKP = pose.LKnee
		id = "tree_left"
	}

	return &Definition{
		ID:           id,
		Name:         "Tree Pose",
		SanskritName: "Vrksasana",

		RequiredJoints: []string{
			standingKnee,
			standingHip,
			liftedKnee,
			liftedHip,
		},

		Constraints: map[string]AngleConstraint{
			// A bent standing knee collapses the balance base.
			standingKnee: {
				Joint:     standingKnee,
				Min:       165,
				Max:       180,
				Ideal:     175,
				Tolerance: 8,
				Priority:  PriorityCritical,
			},
			standingHip: {
				Joint:     standingHip,
				Min:       165,
				Max:       180,
				Ideal:     175,
				Tolerance: 10,
				Priority:  PriorityHigh,
			},
			liftedKnee: {
				Joint:     liftedKnee,
				Min:       30,
				Max:       90,
				Ideal:     60,
				Tolerance: 20,
				Priority:  PriorityMedium,
			},
			liftedHip: {
				Joint:     liftedHip,
				Min:       60,
				Max:       120,
				Ideal:     90,
				Tolerance: 20,
				Priority:  PriorityMedium,
			},
		},

		Rules: []AlignmentRule{
			{
				ID:          "hips_level",
				Description: "Hips should be level",
				Check:       levelPair(pose.RHip, pose.LHip, 0.08, 0.2),
				Priority:    PriorityHigh,
				Message:     "Keep your hips level and square forward",
			},
			{
				ID:          "spine_vertical",
				Description: "Spine should be vertical",
				Check:       spineVertical(12, 35),
				Priority:    PriorityHigh,
				Message:     "Lengthen your spine and stand tall",
			},
			{
				ID:          "standing_foot_grounded",
				Description: "Standing ankle should be stacked under the knee",
				Check:       stackedVertically(standingKneeKP, standingAnkleKP, 0.15, 0.3),
				Priority:    PriorityCritical,
				Message:     "Press firmly through your standing foot",
			},
		},

		Messages: map[string]string{
			standingKnee + "_too_closed": "Straighten your standing leg completely",
			liftedKnee + "_too_closed":   "Your lifted knee can bend more",
			liftedKnee + "_too_open":     "Bring your lifted foot higher on the thigh",
			"hips_level":                 "Level your hips and avoid tilting to one side",
			"spine_vertical":             "Stand tall with your spine elongated",
			"standing_foot_grounded":     "Root down through all four corners of your standing foot",
		},
	}
}
