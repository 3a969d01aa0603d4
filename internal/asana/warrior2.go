package asana

import "github.com/ayusman/drishti/internal/pose"

// WarriorII returns the Warrior II (Virabhadrasana II) definition.
// The right leg is the front leg: knee bent to 90 degrees over the
// ankle, back leg straight, arms extended parallel to the ground,
// torso upright.
func WarriorII() *Definition {
	return &Definition{
		ID:           "warrior_2",
		Name:         "Warrior II",
		SanskritName: "Virabhadrasana II",

		RequiredJoints: []string{
			pose.RightKnee,
			pose.LeftKnee,
			pose.RightHip,
			pose.LeftHip,
			pose.RightElbow,
			pose.LeftElbow,
		},

		Constraints: map[string]AngleConstraint{
			// Front knee. A misaligned front knee under load is the
			// injury risk in this pose.
			pose.RightKnee: {
				Joint:     pose.RightKnee,
				Min:       70,
				Max:       110,
				Ideal:     90,
				Tolerance: 10,
				Priority:  PriorityCritical,
			},
			// Back leg stays straight.
			pose.LeftKnee: {
				Joint:     pose.LeftKnee,
				Min:       160,
				Max:       180,
				Ideal:     175,
				Tolerance: 10,
				Priority:  PriorityHigh,
			},
			pose.RightHip: {
				Joint:     pose.RightHip,
				Min:       70,
				Max:       110,
				Ideal:     90,
				Tolerance: 15,
				Priority:  PriorityHigh,
			},
			pose.LeftHip: {
				Joint:     pose.LeftHip,
				Min:       160,
				Max:       180,
				Ideal:     170,
				Tolerance: 10,
				Priority:  PriorityMedium,
			},
			pose.RightElbow: {
				Joint:     pose.RightElbow,
				Min:       160,
				Max:       180,
				Ideal:     175,
				Tolerance: 10,
				Priority:  PriorityMedium,
			},
			pose.LeftElbow: {
				Joint:     pose.LeftElbow,
				Min:       160,
				Max:       180,
				Ideal:     175,
				Tolerance: 10,
				Priority:  PriorityMedium,
			},
		},

		Rules: []AlignmentRule{
			{
				ID:          "front_knee_over_ankle",
				Description: "Front knee should be directly over the ankle",
				Check:       stackedVertically(pose.RKnee, pose.RAnkle, 0.2, 0.5),
				Priority:    PriorityCritical,
				Message:     "Align your front knee directly over your ankle",
			},
			{
				ID:          "arms_parallel_to_ground",
				Description: "Arms should be parallel to the ground",
				Check:       armsParallel(15, 45),
				Priority:    PriorityHigh,
				Message:     "Extend your arms parallel to the ground",
			},
			{
				ID:          "hips_square_to_side",
				Description: "Hips should be square to the side",
				Check:       levelPair(pose.RHip, pose.LHip, 0.1, 0.3),
				Priority:    PriorityHigh,
				Message:     "Square your hips to the side of your mat",
			},
			{
				ID:          "spine_vertical",
				Description: "Spine should be vertical",
				Check:       spineVertical(15, 45),
				Priority:    PriorityMedium,
				Message:     "Keep your torso upright and spine vertical",
			},
			{
				ID:          "shoulders_over_hips",
				Description: "Shoulders should be stacked over the hips",
				Check:       torsoOverHips(0.15, 0.4),
				Priority:    PriorityMedium,
				Message:     "Stack your shoulders directly over your hips",
			},
		},

		Messages: map[string]string{
			"right_knee_too_closed":    "Bend your front knee deeper toward 90 degrees",
			"right_knee_too_open":      "Your front knee is over-extended, bend it to 90 degrees",
			"left_knee_too_closed":     "Straighten your back leg completely",
			"left_knee_too_open":       "Back leg is good, maintain that strength",
			"right_elbow_too_closed":   "Straighten your front arm fully",
			"left_elbow_too_closed":    "Straighten your back arm fully",
			"front_knee_over_ankle":    "Align your front knee directly over your ankle",
			"arms_parallel_to_ground":  "Lift or lower your arms to be parallel with the ground",
			"hips_square_to_side":      "Rotate your hips to face the side of your mat",
			"spine_vertical":           "Bring your torso upright, avoid leaning forward or back",
			"shoulders_over_hips":      "Stack your shoulders over your hips",
		},
	}
}
