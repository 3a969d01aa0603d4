package motion

import "sort"

// State is the pose phase the subject is currently in.
type State string

const (
	// StateInit is the resting state before any pose attempt.
	StateInit State = "INIT"
	// StateEntering means the subject is moving into a pose.
	StateEntering State = "ENTERING_POSE"
	// StateHold means the subject is holding a stable pose. This is
	// the only state in which alignment is evaluated.
	StateHold State = "POSE_HOLD"
	// StateTransition means the subject is moving between poses.
	StateTransition State = "TRANSITION"
	// StateExit means the subject is leaving the current pose.
	StateExit State = "EXIT"
)

// Params holds the tunable thresholds of the state machine. The zero
// value is unusable; start from DefaultParams.
type Params struct {
	// BufferCapacity is the motion buffer size in frames.
	BufferCapacity int
	// StabilityWindow is how many buffered samples feed the stability
	// score.
	StabilityWindow int

	// StabilityThreshold is the minimum stability for a frame to count
	// as stable.
	StabilityThreshold float64
	// InitMotionThreshold: below this stability INIT treats the
	// subject as starting to move.
	InitMotionThreshold float64
	// ExitStability: below this stability a held pose may be exited.
	ExitStability float64
	// EnteringUnstableStability: below this stability ENTERING_POSE
	// falls back to TRANSITION once EnteringUnstableAfter has passed.
	EnteringUnstableStability float64

	// MinEnteringDuration is the minimum seconds in ENTERING_POSE
	// before POSE_HOLD is reachable.
	MinEnteringDuration float64
	// MinHoldDuration is the minimum seconds in POSE_HOLD before EXIT
	// is reachable.
	MinHoldDuration float64
	// EnteringUnstableAfter is the seconds of sustained instability
	// before ENTERING_POSE gives up.
	EnteringUnstableAfter float64
	// TransitionTimeout is the maximum seconds in TRANSITION before
	// forcing EXIT.
	TransitionTimeout float64
	// ExitSettleDuration is the pause in EXIT before returning to INIT.
	ExitSettleDuration float64

	// Hysteresis frame counts. Requiring several consecutive frames
	// prevents single-frame flicker from driving transitions.
	EnterStableFrames  int
	HoldMovingFrames   int
	ExitMovingFrames   int
	RegainStableFrames int
}

// DefaultParams returns the thresholds tuned for 30fps input.
func DefaultParams() Params {
	return Params{
		BufferCapacity:  DefaultCapacity,
		StabilityWindow: 30,

		StabilityThreshold:        0.75,
		InitMotionThreshold:       0.9,
		ExitStability:             0.5,
		EnteringUnstableStability: 0.3,

		MinEnteringDuration:   0.5,
		MinHoldDuration:       1.0,
		EnteringUnstableAfter: 1.0,
		TransitionTimeout:     3.0,
		ExitSettleDuration:    0.5,

		EnterStableFrames:  15, // ~0.5s at 30fps
		HoldMovingFrames:   10, // ~0.33s
		ExitMovingFrames:   20, // ~0.67s
		RegainStableFrames: 10,
	}
}

// Transition records one state change.
type Transition struct {
	From      State   `json:"from"`
	To        State   `json:"to"`
	Timestamp float64 `json:"timestamp"`
}

// maxHistory bounds the retained transition history.
const maxHistory = 50

// Info is a snapshot of the machine for reporting.
type Info struct {
	State       State   `json:"state"`
	TimeInState float64 `json:"time_in_state"`
	Stability   float64 `json:"stability"`
	CanEvaluate bool    `json:"can_evaluate"`
}

// StateMachine tracks the pose phase across frames. It is a pure
// function of the (angles, timestamp) sequence fed to Update: no wall
// clock, no I/O, so replaying the same input reproduces the same states.
type StateMachine struct {
	params Params
	buffer *Buffer

	state      State
	stateEntry float64
	started    bool
	lastTime   float64
	lastStable float64

	consecutiveStable int
	consecutiveMoving int

	history []Transition
}

// NewStateMachine creates a machine in INIT with the given parameters.
func NewStateMachine(params Params) *StateMachine {
	return &StateMachine{
		params: params,
		buffer: NewBuffer(params.BufferCapacity),
		state:  StateInit,
	}
}

// Update feeds one frame of joint angles into the machine and returns
// the state after any transition.
func (m *StateMachine) Update(joints map[string]float64, timestamp float64) State {
	m.buffer.AddFrame(joints, timestamp)

	if !m.started {
		m.started = true
		m.stateEntry = timestamp
	}
	m.lastTime = timestamp

	current := make([]string, 0, len(joints))
	for j := range joints {
		current = append(current, j)
	}
	sort.Strings(current)

	stability := m.buffer.StabilityScore(current, m.params.StabilityWindow)
	m.lastStable = stability

	m.advance(stability, timestamp)
	return m.state
}

// advance applies the hysteresis counters and the transition table for
// one frame of the given stability score.
func (m *StateMachine) advance(stability, timestamp float64) {
	if stability >= m.params.StabilityThreshold {
		m.consecutiveStable++
		m.consecutiveMoving = 0
	} else {
		m.consecutiveMoving++
		m.consecutiveStable = 0
	}

	next := m.nextState(stability, timestamp-m.stateEntry)
	if next != m.state {
		m.transitionTo(next, timestamp)
	}
}

func (m *StateMachine) nextState(stability, timeInState float64) State {
	p := m.params

	switch m.state {
	case StateInit:
		if stability < p.InitMotionThreshold {
			return StateEntering
		}
		return StateInit

	case StateEntering:
		if stability >= p.StabilityThreshold &&
			timeInState >= p.MinEnteringDuration &&
			m.consecutiveStable >= p.EnterStableFrames {
			return StateHold
		}
		if stability < p.EnteringUnstableStability && timeInState > p.EnteringUnstableAfter {
			return StateTransition
		}
		return StateEntering

	case StateHold:
		if timeInState >= p.MinHoldDuration &&
			stability < p.ExitStability &&
			m.consecutiveMoving >= p.ExitMovingFrames {
			return StateExit
		}
		if stability < p.StabilityThreshold && m.consecutiveMoving >= p.HoldMovingFrames {
			return StateTransition
		}
		return StateHold

	case StateTransition:
		if stability >= p.StabilityThreshold && m.consecutiveStable >= p.RegainStableFrames {
			return StateEntering
		}
		if timeInState >= p.TransitionTimeout {
			return StateExit
		}
		return StateTransition

	case StateExit:
		if timeInState >= p.ExitSettleDuration {
			return StateInit
		}
		return StateExit
	}

	return m.state
}

func (m *StateMachine) transitionTo(next State, timestamp float64) {
	m.history = append(m.history, Transition{
		From:      m.state,
		To:        next,
		Timestamp: timestamp,
	})
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}

	m.state = next
	m.stateEntry = timestamp
	m.consecutiveStable = 0
	m.consecutiveMoving = 0
}

// State returns the current state.
func (m *StateMachine) State() State { return m.state }

// ShouldEvaluateAlignment reports whether alignment may be evaluated
// right now. True only in POSE_HOLD; this is the sole gate against
// coaching a subject who is still moving.
func (m *StateMachine) ShouldEvaluateAlignment() bool {
	return m.state == StateHold
}

// TimeInState returns seconds spent in the current state, measured in
// frame time.
func (m *StateMachine) TimeInState() float64 {
	if !m.started {
		return 0
	}
	return m.lastTime - m.stateEntry
}

// Stability returns the stability score computed for the last frame.
func (m *StateMachine) Stability() float64 { return m.lastStable }

// History returns the recorded transitions, oldest first.
func (m *StateMachine) History() []Transition {
	out := make([]Transition, len(m.history))
	copy(out, m.history)
	return out
}

// Snapshot returns the reporting view of the machine.
func (m *StateMachine) Snapshot() Info {
	return Info{
		State:       m.state,
		TimeInState: m.TimeInState(),
		Stability:   m.lastStable,
		CanEvaluate: m.ShouldEvaluateAlignment(),
	}
}

// Reset returns the machine to INIT and clears the motion buffer, the
// hysteresis counters, and the transition history.
func (m *StateMachine) Reset() {
	m.state = StateInit
	m.started = false
	m.stateEntry = 0
	m.lastTime = 0
	m.lastStable = 0
	m.consecutiveStable = 0
	m.consecutiveMoving = 0
	m.history = nil
	m.buffer.Clear()
}
