package asana

import "github.com/ayusman/drishti/internal/pose"

// Mountain returns the Mountain Pose (Tadasana) definition: standing
// tall, legs straight, weight even, shoulders level.
func Mountain() *Definition {
	return &Definition{
		ID:           "mountain",
		Name:         "Mountain Pose",
		SanskritName: "Tadasana",

		RequiredJoints: []string{
			pose.RightKnee,
			pose.LeftKnee,
			pose.RightHip,
			pose.LeftHip,
		},

		Constraints: map[string]AngleConstraint{
			pose.RightKnee: {
				Joint:     pose.RightKnee,
				Min:       165,
				Max:       180,
				Ideal:     175,
				Tolerance: 8,
				Priority:  PriorityMedium,
			},
			pose.LeftKnee: {
				Joint:     pose.LeftKnee,
				Min:       165,
				Max:       180,
				Ideal:     175,
				Tolerance: 8,
				Priority:  PriorityMedium,
			},
			pose.RightHip: {
				Joint:     pose.RightHip,
				Min:       165,
				Max:       180,
				Ideal:     175,
				Tolerance: 10,
				Priority:  PriorityMedium,
			},
			pose.LeftHip: {
				Joint:     pose.LeftHip,
				Min:       165,
				Max:       180,
				Ideal:     175,
				Tolerance: 10,
				Priority:  PriorityMedium,
			},
		},

		Rules: []AlignmentRule{
			{
				ID:          "spine_vertical",
				Description: "Spine should be vertical",
				Check:       spineVertical(10, 30),
				Priority:    PriorityCritical,
				Message:     "Lengthen your spine and stand tall",
			},
			{
				ID:          "weight_balanced",
				Description: "Weight evenly distributed across both feet",
				Check:       levelPair(pose.RHip, pose.LHip, 0.05, 0.15),
				Priority:    PriorityHigh,
				Message:     "Distribute your weight evenly between both feet",
			},
			{
				ID:          "shoulders_level",
				Description: "Shoulders should be level",
				Check:       levelPair(pose.RShoulder, pose.LShoulder, 0.08, 0.2),
				Priority:    PriorityMedium,
				Message:     "Level your shoulders and relax them down",
			},
		},

		Messages: map[string]string{
			"right_knee_too_closed": "Straighten your right leg without locking the knee",
			"left_knee_too_closed":  "Straighten your left leg without locking the knee",
			"right_hip_too_closed":  "Stand upright through your right hip",
			"left_hip_too_closed":   "Stand upright through your left hip",
			"spine_vertical":        "Stand tall with your spine elongated",
			"weight_balanced":       "Balance your weight evenly on both feet",
			"shoulders_level":       "Level your shoulders and draw them away from your ears",
		},
	}
}
