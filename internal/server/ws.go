package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ayusman/drishti/internal/coach"
	"github.com/ayusman/drishti/internal/pose"
	"github.com/ayusman/drishti/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// frameMessage is the wire format clients stream over the live socket.
// Either a frame (joints + keypoints) or a summary for the heuristic
// coach, or both.
type frameMessage struct {
	Timestamp float64                  `json:"timestamp"`
	FrameNum  int                      `json:"frame_num"`
	Joints    map[string]float64       `json:"joints,omitempty"`
	Keypoints map[string]pose.Keypoint `json:"keypoints,omitempty"`
	Summary   *coach.FrameSummary      `json:"summary,omitempty"`
}

// liveResponse wraps one frame's outputs. Decision is present for every
// frame carrying joints; Wellness only when the heuristic coach
// surfaced an issue.
type liveResponse struct {
	Type     string          `json:"type"`
	Decision *coach.Decision `json:"decision,omitempty"`
	Wellness string          `json:"wellness,omitempty"`
	FrameNum int             `json:"frame_num"`
}

// LiveHandler upgrades /api/sessions/{id}/live to a websocket and
// processes the session's frame stream. One connection drives one
// session, so frames are handled serially on the read loop; that loop
// is the back-pressure point when frames arrive faster than they can be
// processed.
type LiveHandler struct {
	sessions *session.Manager
}

// NewLiveHandler creates a LiveHandler backed by the session manager.
func NewLiveHandler(m *session.Manager) *LiveHandler {
	return &LiveHandler{sessions: m}
}

// ServeHTTP handles the WebSocket upgrade and frame loop.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/sessions/"), "/live")
	sess, ok := h.sessions.Get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for {
		var msg frameMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s websocket read: %v", id, err)
			}
			return
		}

		resp := liveResponse{Type: "decision", FrameNum: msg.FrameNum}

		if msg.Joints != nil || msg.Keypoints != nil {
			decision := sess.Update(pose.Frame{
				Timestamp: msg.Timestamp,
				FrameNum:  msg.FrameNum,
				Joints:    msg.Joints,
				Keypoints: msg.Keypoints,
			})
			resp.Decision = &decision
		}

		if msg.Summary != nil {
			if issue, ok := sess.Observe(*msg.Summary); ok {
				resp.Wellness = issue
			}
		}

		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("session %s websocket write: %v", id, err)
			return
		}
	}
}
