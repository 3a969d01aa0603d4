package coach

import (
	"log"
	"strings"

	"github.com/ayusman/drishti/internal/asana"
	"github.com/ayusman/drishti/internal/motion"
	"github.com/ayusman/drishti/internal/pose"
)

// Cooldown defaults. Both guards must clear before feedback repeats, so
// neither a stalled clock nor a frame-rate anomaly can let decisions
// through early.
const (
	// DefaultMinSecondsBetween is the wall-clock cooldown between
	// delivered decisions.
	DefaultMinSecondsBetween = 2.0
	// DefaultMinFramesBetween is the frame-count cooldown between
	// delivered decisions (~2s at 30fps).
	DefaultMinFramesBetween = 60
)

// maxFeedbackHistory bounds the retained feedback records.
const maxFeedbackHistory = 50

// Config holds the engine's tunable parameters. Zero values fall back
// to defaults in NewEngine.
type Config struct {
	Machine motion.Params

	MinSecondsBetween float64
	MinFramesBetween  int

	PersistenceFrames int
	TrackerCapacity   int
}

// DefaultConfig returns the engine defaults tuned for 30fps input.
func DefaultConfig() Config {
	return Config{
		Machine:           motion.DefaultParams(),
		MinSecondsBetween: DefaultMinSecondsBetween,
		MinFramesBetween:  DefaultMinFramesBetween,
		PersistenceFrames: DefaultPersistenceFrames,
		TrackerCapacity:   DefaultTrackerCapacity,
	}
}

// Stats is a snapshot of one engine's activity.
type Stats struct {
	SessionID     string           `json:"session_id"`
	Asana         string           `json:"asana,omitempty"`
	CurrentFrame  int              `json:"current_frame"`
	FeedbackCount int              `json:"feedback_count"`
	State         motion.State     `json:"current_state"`
	TimeInState   float64          `json:"time_in_state"`
	Recent        []FeedbackRecord `json:"recent_feedback,omitempty"`
}

// Engine is the per-session coaching coordinator. One engine owns one
// state machine, one persistence tracker, and one feedback gate;
// sessions never share engines, so Update needs no locking as long as a
// session's frames are processed serially.
type Engine struct {
	sessionID string
	catalog   *asana.Catalog
	config    Config

	def     *asana.Definition
	asanaID string

	machine *motion.StateMachine
	tracker *Tracker

	currentFrame      int
	lastFeedbackTime  float64
	lastFeedbackFrame int
	delivered         bool

	// feedbackTotal counts every delivery; history keeps only the most
	// recent maxFeedbackHistory records.
	feedbackTotal int
	history       []FeedbackRecord
}

// NewEngine creates an engine for one coaching session backed by the
// shared pose catalog.
func NewEngine(sessionID string, catalog *asana.Catalog, config Config) *Engine {
	if config.Machine.BufferCapacity == 0 {
		config.Machine = motion.DefaultParams()
	}
	if config.MinSecondsBetween <= 0 {
		config.MinSecondsBetween = DefaultMinSecondsBetween
	}
	if config.MinFramesBetween <= 0 {
		config.MinFramesBetween = DefaultMinFramesBetween
	}

	return &Engine{
		sessionID: sessionID,
		catalog:   catalog,
		config:    config,
		machine:   motion.NewStateMachine(config.Machine),
		tracker:   NewTracker(config.TrackerCapacity, config.PersistenceFrames),
	}
}

// SetAsana selects the pose to coach. Returns false and leaves the
// engine untouched when id is unknown; the previous pose, if any, stays
// active.
func (e *Engine) SetAsana(id string) bool {
	def, ok := e.catalog.Get(id)
	if !ok {
		log.Printf("unknown asana: %s", id)
		return false
	}
	e.def = def
	e.asanaID = strings.ToLower(id)
	return true
}

// Asana returns the id of the currently coached pose, or "".
func (e *Engine) Asana() string { return e.asanaID }

// Update is the per-frame entry point. It advances the state machine
// and, when the subject is holding the pose and the cooldown has
// cleared, evaluates alignment, updates error persistence, and emits at
// most one coaching decision.
func (e *Engine) Update(frame pose.Frame) Decision {
	if frame.FrameNum > 0 {
		e.currentFrame = frame.FrameNum
	} else {
		e.currentFrame++
	}

	if e.def == nil {
		return Decision{
			ShouldCoach: false,
			Reason:      ReasonNoAsana,
			State:       motion.StateInit,
		}
	}

	state := e.machine.Update(frame.Joints, frame.Timestamp)
	info := e.machine.Snapshot()

	if !e.machine.ShouldEvaluateAlignment() {
		return Decision{
			ShouldCoach: false,
			Reason:      stateReason(state),
			Asana:       e.asanaID,
			AsanaName:   e.def.Name,
			State:       state,
			StateInfo:   info,
		}
	}

	if !e.cooldownExpired(frame.Timestamp) {
		return Decision{
			ShouldCoach: false,
			Reason:      ReasonCooldown,
			Asana:       e.asanaID,
			AsanaName:   e.def.Name,
			State:       state,
			StateInfo:   info,
		}
	}

	errs := e.def.Evaluate(frame.Joints, frame.Keypoints)

	present := make(map[string]bool, len(errs))
	for _, err := range errs {
		present[err.Code] = true
	}
	e.tracker.Update(present)

	selected, ok := e.selectPersistent(errs)
	if !ok {
		return Decision{
			ShouldCoach: false,
			Reason:      ReasonNoErrors,
			Asana:       e.asanaID,
			AsanaName:   e.def.Name,
			State:       state,
			StateInfo:   info,
		}
	}

	e.recordFeedback(selected, frame.Timestamp)

	d := Decision{
		ShouldCoach: true,
		Asana:       e.asanaID,
		AsanaName:   e.def.Name,
		State:       state,
		ErrorCode:   selected.Code,
		Severity:    selected.Severity,
		Priority:    selected.Priority,
		Message:     selected.Message,
		Joint:       selected.Joint,
		StateInfo:   info,
	}
	if selected.HasAngles {
		current, ideal := selected.CurrentAngle, selected.IdealAngle
		d.CurrentAngle = &current
		d.IdealAngle = &ideal
	}
	return d
}

// selectPersistent picks the error to deliver: the first entry of the
// priority/severity-sorted error list whose code has met the
// persistence threshold. The persistent set is ranked by the same order
// as raw detection, so the most important persistent issue wins, not
// merely the first one tracked.
func (e *Engine) selectPersistent(errs []asana.Error) (asana.Error, bool) {
	for _, err := range errs {
		if e.tracker.IsPersistent(err.Code) {
			return err, true
		}
	}
	return asana.Error{}, false
}

// cooldownExpired reports whether both the wall-clock and frame-count
// cooldowns have cleared. No cooldown applies before the first
// delivery.
func (e *Engine) cooldownExpired(timestamp float64) bool {
	if !e.delivered {
		return true
	}
	timeSince := timestamp - e.lastFeedbackTime
	framesSince := e.currentFrame - e.lastFeedbackFrame
	return timeSince >= e.config.MinSecondsBetween &&
		framesSince >= e.config.MinFramesBetween
}

func (e *Engine) recordFeedback(err asana.Error, timestamp float64) {
	e.delivered = true
	e.lastFeedbackTime = timestamp
	e.lastFeedbackFrame = e.currentFrame
	e.feedbackTotal++

	e.history = append(e.history, FeedbackRecord{
		Frame:     e.currentFrame,
		Timestamp: timestamp,
		ErrorCode: err.Code,
		Severity:  err.Severity,
	})
	if len(e.history) > maxFeedbackHistory {
		e.history = e.history[len(e.history)-maxFeedbackHistory:]
	}

	e.tracker.MarkDelivered(err.Code)
}

// StateInfo returns the current machine snapshot for UI reporting.
func (e *Engine) StateInfo() motion.Info { return e.machine.Snapshot() }

// Stats returns a snapshot of this engine's activity.
func (e *Engine) Stats() Stats {
	recent := e.history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	out := make([]FeedbackRecord, len(recent))
	copy(out, recent)

	return Stats{
		SessionID:     e.sessionID,
		Asana:         e.asanaID,
		CurrentFrame:  e.currentFrame,
		FeedbackCount: e.feedbackTotal,
		State:         e.machine.State(),
		TimeInState:   e.machine.TimeInState(),
		Recent:        out,
	}
}

// Reset returns the engine to INIT: motion buffer, hysteresis counters,
// persistence counters, cooldown state, and feedback history are all
// cleared. The selected asana is kept.
func (e *Engine) Reset() {
	e.machine.Reset()
	e.tracker.Reset()
	e.currentFrame = 0
	e.lastFeedbackTime = 0
	e.lastFeedbackFrame = 0
	e.delivered = false
	e.feedbackTotal = 0
	e.history = nil
}

func stateReason(s motion.State) string {
	return "state_" + strings.ToLower(string(s))
}
