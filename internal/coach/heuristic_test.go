package coach

import (
	"math"
	"testing"
)

// goodSummary returns a frame summary that trips no heuristic.
func goodSummary(frame int) FrameSummary {
	return FrameSummary{
		FrameNum:          frame,
		BalanceScore:      80,
		PostureAngle:      5,
		ArmSymmetry:       5,
		LegSymmetry:       5,
		EnergyClass:       EnergyModerate,
		EnergyScore:       50,
		Emotion:           "Happy",
		EmotionConfidence: 90,
		ValidKeypoints:    14,
	}
}

func TestHeuristic_CleanFramesStaySilent(t *testing.T) {
	c := NewHeuristicCoach()

	for i := 1; i <= 100; i++ {
		if issue, ok := c.Observe(goodSummary(i)); ok {
			t.Fatalf("frame %d: surfaced %q on a clean session", i, issue)
		}
	}
}

func TestHeuristic_PoorBalancePersistsThenSurfaces(t *testing.T) {
	c := NewHeuristicCoach()

	for i := 1; i <= 4; i++ {
		s := goodSummary(i)
		s.BalanceScore = 20
		if issue, ok := c.Observe(s); ok {
			t.Fatalf("frame %d: surfaced %q before persistence", i, issue)
		}
	}

	s := goodSummary(5)
	s.BalanceScore = 20
	issue, ok := c.Observe(s)
	if !ok {
		t.Fatal("no issue surfaced on the 5th consecutive frame")
	}
	if issue != IssuePoorBalance {
		t.Errorf("issue = %q, want %q", issue, IssuePoorBalance)
	}
}

func TestHeuristic_CleanFrameResetsStreak(t *testing.T) {
	c := NewHeuristicCoach()

	for i := 1; i <= 4; i++ {
		s := goodSummary(i)
		s.BalanceScore = 20
		c.Observe(s)
	}
	c.Observe(goodSummary(5))

	// The streak starts over; four more bad frames stay silent.
	for i := 6; i <= 9; i++ {
		s := goodSummary(i)
		s.BalanceScore = 20
		if issue, ok := c.Observe(s); ok {
			t.Fatalf("frame %d: surfaced %q after streak reset", i, issue)
		}
	}
}

func TestHeuristic_CooldownThenRefires(t *testing.T) {
	c := NewHeuristicCoach()

	surfaceAt := func(from, to int) []int {
		var frames []int
		for i := from; i <= to; i++ {
			s := goodSummary(i)
			s.BalanceScore = 20
			if _, ok := c.Observe(s); ok {
				frames = append(frames, i)
			}
		}
		return frames
	}

	frames := surfaceAt(1, 120)
	if len(frames) != 2 {
		t.Fatalf("surfaced at frames %v, want exactly 2 surfacings in 120 frames", frames)
	}
	if frames[0] != 5 {
		t.Errorf("first surfacing at frame %d, want 5", frames[0])
	}
	if gap := frames[1] - frames[0]; gap < heuristicCooldownFrames {
		t.Errorf("refire gap = %d frames, want >= %d", gap, heuristicCooldownFrames)
	}
}

func TestHeuristic_IssuePriorityOrder(t *testing.T) {
	c := NewHeuristicCoach()

	// Balance and posture both bad; balance outranks posture.
	for i := 1; i <= 5; i++ {
		s := goodSummary(i)
		s.BalanceScore = 20
		s.PostureAngle = -55
		issue, ok := c.Observe(s)
		if i < 5 && ok {
			t.Fatalf("frame %d: surfaced early", i)
		}
		if i == 5 {
			if !ok {
				t.Fatal("nothing surfaced at persistence")
			}
			if issue != IssuePoorBalance {
				t.Errorf("issue = %q, want %q", issue, IssuePoorBalance)
			}
		}
	}
}

func TestHeuristic_QualityGateKeypoints(t *testing.T) {
	c := NewHeuristicCoach()

	// Too few keypoints: frames are ignored no matter how bad.
	for i := 1; i <= 20; i++ {
		s := goodSummary(i)
		s.BalanceScore = 10
		s.ValidKeypoints = 6
		if issue, ok := c.Observe(s); ok {
			t.Fatalf("frame %d: surfaced %q from a low-quality frame", i, issue)
		}
	}
}

func TestHeuristic_QualityGateEmotionConfidence(t *testing.T) {
	c := NewHeuristicCoach()

	// A face with a low-confidence emotion read makes the whole frame
	// untrusted.
	for i := 1; i <= 20; i++ {
		s := goodSummary(i)
		s.BalanceScore = 10
		s.Emotion = "Sad"
		s.EmotionConfidence = 30
		if issue, ok := c.Observe(s); ok {
			t.Fatalf("frame %d: surfaced %q despite low emotion confidence", i, issue)
		}
	}

	// No face at all is fine; the balance issue surfaces normally.
	for i := 21; i <= 25; i++ {
		s := goodSummary(i)
		s.BalanceScore = 10
		s.Emotion = "No Face"
		s.EmotionConfidence = 0
		issue, ok := c.Observe(s)
		if i < 25 && ok {
			t.Fatalf("frame %d: surfaced early", i)
		}
		if i == 25 && (!ok || issue != IssuePoorBalance) {
			t.Errorf("frame 25: issue = %q ok = %v, want poor_balance", issue, ok)
		}
	}
}

func TestHeuristic_FrustrationFromEmotion(t *testing.T) {
	c := NewHeuristicCoach()

	for i := 1; i <= 5; i++ {
		s := goodSummary(i)
		s.Emotion = "Angry"
		s.EmotionConfidence = 80
		issue, ok := c.Observe(s)
		if i == 5 {
			if !ok || issue != IssueFrustration {
				t.Errorf("issue = %q ok = %v, want frustration", issue, ok)
			}
		} else if ok {
			t.Fatalf("frame %d: surfaced early", i)
		}
	}
}

func TestHeuristic_LowEnergyNeedsActiveSession(t *testing.T) {
	c := NewHeuristicCoach()

	// Low energy from the start of a session is not a drop-off; no
	// issue fires.
	for i := 1; i <= 20; i++ {
		s := goodSummary(i)
		s.EnergyClass = EnergyLow
		s.EnergyScore = 5
		if issue, ok := c.Observe(s); ok {
			t.Fatalf("frame %d: surfaced %q in an all-low session", i, issue)
		}
	}
}

func TestHeuristic_LowEnergyAfterActiveStretch(t *testing.T) {
	c := NewHeuristicCoach()

	// Build up a high running energy average.
	for i := 1; i <= 60; i++ {
		s := goodSummary(i)
		s.EnergyScore = 70
		c.Observe(s)
	}

	surfaced := false
	for i := 61; i <= 70; i++ {
		s := goodSummary(i)
		s.EnergyClass = EnergyLow
		s.EnergyScore = 5
		if issue, ok := c.Observe(s); ok {
			if issue != IssueLowEnergy {
				t.Fatalf("issue = %q, want %q", issue, IssueLowEnergy)
			}
			surfaced = true
			break
		}
	}
	if !surfaced {
		t.Error("low_energy never surfaced after an active stretch")
	}
}

func TestHeuristic_RunningAverages(t *testing.T) {
	c := NewHeuristicCoach()

	s := goodSummary(1)
	s.BalanceScore = 80
	s.EnergyScore = 50
	c.Observe(s)

	// First frame seeds the averages directly.
	if c.AvgBalance() != 80 || c.AvgEnergy() != 50 {
		t.Fatalf("averages after first frame = %v/%v, want 80/50", c.AvgBalance(), c.AvgEnergy())
	}

	s = goodSummary(2)
	s.BalanceScore = 60
	s.EnergyScore = 70
	c.Observe(s)

	if got := c.AvgBalance(); math.Abs(got-78) > 1e-9 {
		t.Errorf("AvgBalance = %v, want 78", got)
	}
	if got := c.AvgEnergy(); math.Abs(got-52) > 1e-9 {
		t.Errorf("AvgEnergy = %v, want 52", got)
	}
}

func TestHeuristic_Reset(t *testing.T) {
	c := NewHeuristicCoach()

	for i := 1; i <= 5; i++ {
		s := goodSummary(i)
		s.BalanceScore = 20
		c.Observe(s)
	}
	c.Reset()

	if c.AvgBalance() != 0 || c.AvgEnergy() != 0 {
		t.Error("averages retained across Reset")
	}

	// Persistence starts over after Reset.
	for i := 1; i <= 4; i++ {
		s := goodSummary(i)
		s.BalanceScore = 20
		if issue, ok := c.Observe(s); ok {
			t.Fatalf("frame %d: surfaced %q right after Reset", i, issue)
		}
	}
}
