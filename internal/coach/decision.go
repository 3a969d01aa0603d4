// Package coach turns per-frame pose measurements into rate-limited
// coaching decisions. The engine combines the pose state machine, the
// per-asana alignment evaluator, error persistence tracking, and a dual
// time/frame cooldown gate.
package coach

import (
	"github.com/ayusman/drishti/internal/asana"
	"github.com/ayusman/drishti/internal/motion"
)

// Suppression reasons carried on decisions with ShouldCoach == false.
const (
	ReasonNoAsana  = "no_asana_set"
	ReasonCooldown = "cooldown"
	ReasonNoErrors = "no_errors"
)

// Decision is the single structured output of one engine update. It is
// the hand-off boundary to downstream consumers: anything slow (text
// generation, speech) runs after and outside the frame loop. Message is
// always a static template keyed by ErrorCode, never free text.
type Decision struct {
	ShouldCoach bool   `json:"should_coach"`
	Reason      string `json:"reason,omitempty"`

	Asana     string       `json:"asana,omitempty"`
	AsanaName string       `json:"asana_display,omitempty"`
	State     motion.State `json:"state"`

	ErrorCode string         `json:"error_code,omitempty"`
	Severity  float64        `json:"severity,omitempty"`
	Priority  asana.Priority `json:"priority,omitempty"`
	Message   string         `json:"message,omitempty"`

	Joint        string   `json:"joint,omitempty"`
	CurrentAngle *float64 `json:"current_angle,omitempty"`
	IdealAngle   *float64 `json:"ideal_angle,omitempty"`

	StateInfo motion.Info `json:"state_info"`
}

// FeedbackRecord is one delivered coaching decision, kept in the
// engine's bounded history.
type FeedbackRecord struct {
	Frame     int     `json:"frame"`
	Timestamp float64 `json:"timestamp"`
	ErrorCode string  `json:"error_code"`
	Severity  float64 `json:"severity"`
}
