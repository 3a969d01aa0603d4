// Package session manages live coaching sessions: one engine and one
// heuristic coach per session, running metrics, and asynchronous
// persistence of delivered feedback.
package session

import (
	"sync"
	"time"

	"github.com/ayusman/drishti/internal/coach"
	"github.com/ayusman/drishti/internal/pose"
)

// Session is one user's coaching session. All engine state is
// session-local; frames for a session must be processed serially, which
// the mutex enforces for callers arriving from different goroutines.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	engine    *coach.Engine
	heuristic *coach.HeuristicCoach

	totalFrames int
	record      func(sessionID string, rec coach.FeedbackRecord)
}

// SetAsana selects the pose this session is coached on. Returns false
// when the id is unknown; the previous pose stays active.
func (s *Session) SetAsana(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SetAsana(id)
}

// Update processes one frame and returns the coaching decision.
// Delivered decisions are handed off for persistence after the decision
// is made; the frame path itself never blocks on storage.
func (s *Session) Update(frame pose.Frame) coach.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalFrames++
	decision := s.engine.Update(frame)

	if decision.ShouldCoach && s.record != nil {
		s.record(s.ID, coach.FeedbackRecord{
			Frame:     frame.FrameNum,
			Timestamp: frame.Timestamp,
			ErrorCode: decision.ErrorCode,
			Severity:  decision.Severity,
		})
	}

	return decision
}

// Observe feeds one frame summary to the heuristic coach and returns a
// surfaced wellness issue, if any.
func (s *Session) Observe(summary coach.FrameSummary) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heuristic.Observe(summary)
}

// Stats returns a snapshot of this session's activity.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	engineStats := s.engine.Stats()
	return Stats{
		Engine:      engineStats,
		TotalFrames: s.totalFrames,
		AvgBalance:  s.heuristic.AvgBalance(),
		AvgEnergy:   s.heuristic.AvgEnergy(),
		Duration:    time.Since(s.CreatedAt).Seconds(),
	}
}

// Reset returns the session's engine and heuristic coach to their
// initial state, keeping the selected asana.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reset()
	s.heuristic.Reset()
	s.totalFrames = 0
}

// Stats is the reporting view of one session.
type Stats struct {
	Engine      coach.Stats `json:"engine"`
	TotalFrames int         `json:"total_frames"`
	AvgBalance  float64     `json:"avg_balance"`
	AvgEnergy   float64     `json:"avg_energy"`
	Duration    float64     `json:"duration_seconds"`
}
