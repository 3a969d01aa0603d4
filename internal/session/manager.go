package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/drishti/internal/asana"
	"github.com/ayusman/drishti/internal/coach"
	"github.com/ayusman/drishti/internal/store"
)

// recordQueueSize bounds the feedback persistence queue. When the queue
// is full, events are dropped with a log line rather than stalling the
// frame path.
const recordQueueSize = 128

type feedbackEvent struct {
	sessionID string
	rec       coach.FeedbackRecord
}

// Manager owns all live sessions. The pose catalog is shared by
// reference across sessions; each session gets its own engine.
type Manager struct {
	catalog *asana.Catalog
	store   *store.Store
	config  coach.Config

	mu       sync.RWMutex
	sessions map[string]*Session

	events chan feedbackEvent
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewManager creates a session manager. The store may be nil, in which
// case nothing is persisted.
func NewManager(catalog *asana.Catalog, st *store.Store, config coach.Config) *Manager {
	m := &Manager{
		catalog:  catalog,
		store:    st,
		config:   config,
		sessions: make(map[string]*Session),
		events:   make(chan feedbackEvent, recordQueueSize),
		done:     make(chan struct{}),
	}

	if st != nil {
		m.wg.Add(1)
		go m.recordLoop()
	}

	return m
}

// Create starts a new session and returns it.
func (m *Manager) Create() (*Session, error) {
	id := uuid.NewString()

	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		engine:    coach.NewEngine(id, m.catalog, m.config),
		heuristic: coach.NewHeuristicCoach(),
		record:    m.enqueue,
	}

	if m.store != nil {
		if err := m.store.Sessions().Create(&store.Session{ID: id}); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	log.Printf("session created: %s", id)
	return s, nil
}

// Get returns the live session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// List returns the ids of all live sessions.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Close tears down a session: its final stats are persisted and its
// engine state released.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return false
	}

	if m.store != nil {
		stats := s.Stats()
		if err := m.store.Sessions().UpdateStats(id, stats.Engine.Asana,
			stats.TotalFrames, stats.Engine.FeedbackCount,
			stats.AvgBalance, stats.AvgEnergy); err != nil {
			log.Printf("persist session stats %s: %v", id, err)
		}
		if err := m.store.Sessions().Close(id); err != nil {
			log.Printf("close session %s: %v", id, err)
		}
	}

	log.Printf("session closed: %s", id)
	return true
}

// Shutdown closes all sessions and stops the persistence worker.
func (m *Manager) Shutdown() {
	for _, id := range m.List() {
		m.Close(id)
	}

	close(m.done)
	m.wg.Wait()
}

// enqueue hands a delivered decision to the persistence worker without
// blocking the frame path.
func (m *Manager) enqueue(sessionID string, rec coach.FeedbackRecord) {
	if m.store == nil {
		return
	}
	select {
	case m.events <- feedbackEvent{sessionID: sessionID, rec: rec}:
	default:
		log.Printf("feedback queue full, dropping event for session %s", sessionID)
	}
}

func (m *Manager) recordLoop() {
	defer m.wg.Done()
	for {
		select {
		case ev := <-m.events:
			m.persist(ev)
		case <-m.done:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case ev := <-m.events:
					m.persist(ev)
				default:
					return
				}
			}
		}
	}
}

func (m *Manager) persist(ev feedbackEvent) {
	err := m.store.Feedback().Record(&store.FeedbackEvent{
		SessionID: ev.sessionID,
		Frame:     ev.rec.Frame,
		Timestamp: ev.rec.Timestamp,
		ErrorCode: ev.rec.ErrorCode,
		Severity:  ev.rec.Severity,
	})
	if err != nil {
		log.Printf("record feedback for session %s: %v", ev.sessionID, err)
	}
}
