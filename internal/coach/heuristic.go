package coach

import "strings"

// Movement energy classes reported by the upstream detector.
const (
	EnergyLow      = "low"
	EnergyModerate = "moderate"
	EnergyHigh     = "high"
	EnergyVeryHigh = "very_high"
)

// Wellness issue codes surfaced by the heuristic coach.
const (
	IssuePoorBalance   = "poor_balance"
	IssuePoorPosture   = "poor_posture"
	IssueAsymmetry     = "asymmetry"
	IssueHighEnergy    = "high_energy"
	IssueLowEnergy     = "low_energy"
	IssueLowConfidence = "low_confidence"
	IssueFrustration   = "frustration"
)

// Heuristic coach thresholds.
const (
	heuristicPersistence      = 5  // consecutive frames before an issue surfaces
	heuristicCooldownFrames   = 90 // ~3s at 30fps after any surfaced issue
	minValidKeypoints         = 10
	minEmotionConfidence      = 50.0
	poorBalanceThreshold      = 40.0
	poorPostureAngle          = 40.0 // degrees from vertical
	highAsymmetryThreshold    = 20.0 // percent difference
	lowEnergySessionThreshold = 30.0
)

// FrameSummary is the flattened per-frame view the heuristic coach
// consumes: continuous exercise metrics rather than per-pose joint
// constraints.
type FrameSummary struct {
	FrameNum int `json:"frame_num"`

	BalanceScore float64 `json:"balance_score"`
	PostureAngle float64 `json:"posture_angle"` // degrees from vertical
	ArmSymmetry  float64 `json:"arm_symmetry"`  // percent difference
	LegSymmetry  float64 `json:"leg_symmetry"`  // percent difference

	EnergyClass string  `json:"energy_class"`
	EnergyScore float64 `json:"energy_score"`

	Emotion           string  `json:"emotion"`
	EmotionConfidence float64 `json:"emotion_confidence"`

	ValidKeypoints int `json:"valid_keypoints"`
}

// issueOrder fixes the priority in which simultaneous persistent issues
// are surfaced.
var issueOrder = []string{
	IssuePoorBalance,
	IssuePoorPosture,
	IssueAsymmetry,
	IssueHighEnergy,
	IssueLowEnergy,
	IssueLowConfidence,
	IssueFrustration,
}

// HeuristicCoach is the lighter coaching path over continuous metrics.
// It applies the same persistence-then-cooldown pattern as the main
// engine: an issue must recur for several consecutive frames before it
// surfaces, and after one surfaces the coach stays quiet for a stretch
// of frames.
type HeuristicCoach struct {
	consecutive map[string]int

	lastFeedbackFrame int
	surfaced          bool

	frames     int
	avgBalance float64
	avgEnergy  float64
}

// NewHeuristicCoach creates a coach with default thresholds.
func NewHeuristicCoach() *HeuristicCoach {
	return &HeuristicCoach{consecutive: make(map[string]int)}
}

// Observe folds one frame summary into the coach. It returns the issue
// to surface and true when a persistent issue cleared the cooldown, or
// ("", false) to stay silent.
func (c *HeuristicCoach) Observe(s FrameSummary) (string, bool) {
	c.updateAverages(s)

	if c.surfaced && s.FrameNum-c.lastFeedbackFrame < heuristicCooldownFrames {
		return "", false
	}

	if !c.qualityOK(s) {
		return "", false
	}

	issues := c.detect(s)
	c.updatePersistence(issues)

	for _, issue := range issueOrder {
		if c.consecutive[issue] >= heuristicPersistence {
			// Zero the counter so the identical nudge cannot
			// re-trigger the moment the cooldown clears.
			c.consecutive[issue] = 0
			c.lastFeedbackFrame = s.FrameNum
			c.surfaced = true
			return issue, true
		}
	}
	return "", false
}

// AvgBalance returns the session's running balance average.
func (c *HeuristicCoach) AvgBalance() float64 { return c.avgBalance }

// AvgEnergy returns the session's running energy average.
func (c *HeuristicCoach) AvgEnergy() float64 { return c.avgEnergy }

// Reset clears all counters and running averages.
func (c *HeuristicCoach) Reset() {
	c.consecutive = make(map[string]int)
	c.lastFeedbackFrame = 0
	c.surfaced = false
	c.frames = 0
	c.avgBalance = 0
	c.avgEnergy = 0
}

func (c *HeuristicCoach) updateAverages(s FrameSummary) {
	c.frames++
	if c.frames == 1 {
		c.avgBalance = s.BalanceScore
		c.avgEnergy = s.EnergyScore
		return
	}
	c.avgBalance = c.avgBalance*0.9 + s.BalanceScore*0.1
	c.avgEnergy = c.avgEnergy*0.9 + s.EnergyScore*0.1
}

// qualityOK filters frames too noisy to coach on.
func (c *HeuristicCoach) qualityOK(s FrameSummary) bool {
	if s.ValidKeypoints < minValidKeypoints {
		return false
	}
	if s.Emotion != "" && s.Emotion != "No Face" && s.EmotionConfidence < minEmotionConfidence {
		return false
	}
	return true
}

func (c *HeuristicCoach) detect(s FrameSummary) []string {
	var issues []string

	if s.BalanceScore < poorBalanceThreshold {
		issues = append(issues, IssuePoorBalance)
	}

	angle := s.PostureAngle
	if angle < 0 {
		angle = -angle
	}
	if angle > poorPostureAngle {
		issues = append(issues, IssuePoorPosture)
	}

	if s.ArmSymmetry > highAsymmetryThreshold || s.LegSymmetry > highAsymmetryThreshold {
		issues = append(issues, IssueAsymmetry)
	}

	switch s.EnergyClass {
	case EnergyVeryHigh:
		issues = append(issues, IssueHighEnergy)
	case EnergyLow:
		if c.avgEnergy > lowEnergySessionThreshold {
			issues = append(issues, IssueLowEnergy)
		}
	}

	if s.EmotionConfidence > minEmotionConfidence {
		emotion := strings.ToLower(s.Emotion)
		switch {
		case strings.Contains(emotion, "sad") || strings.Contains(emotion, "down"):
			issues = append(issues, IssueLowConfidence)
		case strings.Contains(emotion, "angry") || strings.Contains(emotion, "frustrated"):
			issues = append(issues, IssueFrustration)
		}
	}

	return issues
}

func (c *HeuristicCoach) updatePersistence(issues []string) {
	present := make(map[string]bool, len(issues))
	for _, issue := range issues {
		present[issue] = true
		c.consecutive[issue]++
	}
	for issue := range c.consecutive {
		if !present[issue] {
			delete(c.consecutive, issue)
		}
	}
}
